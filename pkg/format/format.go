// Package format renders decoded backend JSON as text for the calling
// runtime. Rendering is presentation-only: malformed or unexpected
// payloads degrade to a structural dump, never an error.
package format

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxListed is how many list entries are rendered before truncation.
const maxListed = 10

// Result renders the payload of a successful tool call. The tool name
// selects the category rendering; its suffix distinguishes create, update
// and delete confirmations.
func Result(toolName string, data interface{}) string {
	switch v := data.(type) {
	case []interface{}:
		return formatList(toolName, v)
	case map[string]interface{}:
		return formatObject(toolName, v)
	case nil:
		if strings.HasSuffix(toolName, "_delete") {
			return "Deleted successfully."
		}
		return "Done."
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatList(toolName string, items []interface{}) string {
	if len(items) == 0 {
		return "No results found."
	}

	var render func(map[string]interface{}) string
	var noun string

	switch category(toolName) {
	case "contacts":
		noun = "contact"
		render = func(m map[string]interface{}) string {
			name := strings.TrimSpace(str(m, "firstName") + " " + str(m, "lastName"))
			if name == "" {
				name = "Unnamed"
			}
			line := name
			if email := str(m, "email"); email != "" {
				line += ", " + email
			}
			if phone := str(m, "phone"); phone != "" {
				line += ", " + phone
			}
			return line + idSuffix(m)
		}
	case "deals":
		noun = "deal"
		render = func(m map[string]interface{}) string {
			line := orElse(str(m, "title"), "Untitled")
			if value, ok := num(m, "value"); ok {
				line += fmt.Sprintf(", $%.2f", value)
			}
			if stage := str(m, "stageName"); stage != "" {
				line += ", stage: " + stage
			}
			return line + idSuffix(m)
		}
	case "leads":
		noun = "lead"
		render = func(m map[string]interface{}) string {
			line := orElse(str(m, "title"), "Untitled")
			if status := str(m, "status"); status != "" {
				line += " [" + status + "]"
			}
			if source := str(m, "source"); source != "" {
				line += ", source: " + source
			}
			return line + idSuffix(m)
		}
	case "tickets", "portal":
		noun = "ticket"
		if strings.Contains(toolName, "customers") {
			noun = "customer"
		}
		render = func(m map[string]interface{}) string {
			line := orElse(str(m, "title"), orElse(str(m, "name"), "Untitled"))
			if priority := str(m, "priority"); priority != "" {
				line += " [" + priority + "]"
			}
			if status := str(m, "status"); status != "" {
				line += " (" + status + ")"
			}
			return line + idSuffix(m)
		}
	case "users":
		noun = "user"
		render = func(m map[string]interface{}) string {
			line := orElse(str(m, "email"), "unknown")
			if role := str(m, "role"); role != "" {
				line += " (" + role + ")"
			}
			return line + idSuffix(m)
		}
	case "pipelines", "stages":
		noun = strings.TrimSuffix(category(toolName), "s")
		render = func(m map[string]interface{}) string {
			return orElse(str(m, "name"), "Unnamed") + idSuffix(m)
		}
	default:
		return fmt.Sprintf("Found %d items.", len(items))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s:\n", len(items), plural(noun, len(items)))
	for i, item := range items {
		if i == maxListed {
			fmt.Fprintf(&b, "... and %d more", len(items)-maxListed)
			break
		}
		m, ok := item.(map[string]interface{})
		if !ok {
			fmt.Fprintf(&b, "- %v\n", item)
			continue
		}
		fmt.Fprintf(&b, "- %s\n", render(m))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatObject(toolName string, m map[string]interface{}) string {
	if strings.HasSuffix(toolName, "_delete") || strings.HasSuffix(toolName, "_deactivate") {
		return "Deleted successfully."
	}

	verb := ""
	switch {
	case strings.HasSuffix(toolName, "_create") || strings.HasSuffix(toolName, "_invite"):
		verb = "Created"
	case strings.HasSuffix(toolName, "_update") || strings.HasSuffix(toolName, "_move") ||
		strings.HasSuffix(toolName, "_assign") || strings.HasSuffix(toolName, "_update_role"):
		verb = "Updated"
	case strings.HasSuffix(toolName, "_convert") || strings.HasSuffix(toolName, "_comment"):
		verb = "Created"
	}

	// Contact-shaped object
	if _, ok := m["firstName"]; ok {
		name := strings.TrimSpace(str(m, "firstName") + " " + str(m, "lastName"))
		if verb != "" {
			return fmt.Sprintf("%s contact: %s%s", verb, name, idSuffix(m))
		}
		return fmt.Sprintf("Contact: %s, email: %s%s", name, orElse(str(m, "email"), "N/A"), idSuffix(m))
	}

	// Deal-shaped object
	if _, hasTitle := m["title"]; hasTitle {
		if value, hasValue := num(m, "value"); hasValue {
			if verb != "" {
				return fmt.Sprintf("%s deal: %s ($%.2f)%s", verb, str(m, "title"), value, idSuffix(m))
			}
			return fmt.Sprintf("Deal: %s, value: $%.2f%s", str(m, "title"), value, idSuffix(m))
		}
		if verb != "" {
			return fmt.Sprintf("%s: %s%s", verb, str(m, "title"), idSuffix(m))
		}
	}

	if verb != "" {
		if name := orElse(str(m, "name"), str(m, "email")); name != "" {
			return fmt.Sprintf("%s: %s%s", verb, name, idSuffix(m))
		}
		return fmt.Sprintf("%s successfully.", verb)
	}

	return dump(m)
}

// Dump pretty-prints any payload; the fallback for shapes no category
// rendering recognizes.
func Dump(data interface{}) string {
	return dump(data)
}

func dump(data interface{}) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(out)
}

// category maps a tool name to its resource prefix.
func category(toolName string) string {
	if i := strings.Index(toolName, "_"); i > 0 {
		return toolName[:i]
	}
	return toolName
}

func str(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func num(m map[string]interface{}, key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}

func idSuffix(m map[string]interface{}) string {
	if id := str(m, "id"); id != "" {
		return " (ID: " + id + ")"
	}
	return ""
}

func orElse(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
