// Package catalog declares the fixed set of CRM tools the bridge exposes:
// each tool's input schema and the backend endpoint it forwards to.
package catalog

import (
	"fmt"
	"regexp"
)

// Property describes a single schema field.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Format      string   `json:"format,omitempty"`
}

// InputSchema is a JSON-schema-shaped argument declaration. Validation is
// documentation-grade: the backend remains the authority on required
// fields.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Tool is one named operation: its schema and the backend call it maps to.
// Auth primitives (login, logout, whoami) carry no endpoint; the
// dispatcher handles them locally.
type Tool struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	InputSchema  InputSchema `json:"input_schema"`
	Method       string      `json:"-"`
	PathTemplate string      `json:"-"`
}

// Catalog is the immutable tool set, built once at process start.
type Catalog struct {
	tools []Tool
	byName map[string]*Tool
}

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9]*)\}`)

// New builds the default catalog and verifies its internal invariants:
// unique names, and every path placeholder backed by a declared schema
// property.
func New() (*Catalog, error) {
	tools := defaultTools()

	c := &Catalog{
		tools:  tools,
		byName: make(map[string]*Tool, len(tools)),
	}
	for i := range tools {
		tool := &tools[i]
		if _, dup := c.byName[tool.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", tool.Name)
		}
		c.byName[tool.Name] = tool

		for _, m := range placeholderRe.FindAllStringSubmatch(tool.PathTemplate, -1) {
			param := m[1]
			if _, ok := tool.InputSchema.Properties[param]; !ok {
				return nil, fmt.Errorf("tool %q: path placeholder {%s} has no schema property", tool.Name, param)
			}
		}
	}
	return c, nil
}

// Get returns the tool with the given name.
func (c *Catalog) Get(name string) (*Tool, bool) {
	tool, ok := c.byName[name]
	return tool, ok
}

// List returns all tools in declaration order.
func (c *Catalog) List() []Tool {
	return c.tools
}

// Names returns the set of all tool names.
func (c *Catalog) Names() map[string]bool {
	names := make(map[string]bool, len(c.byName))
	for name := range c.byName {
		names[name] = true
	}
	return names
}

// Len returns the number of tools.
func (c *Catalog) Len() int {
	return len(c.tools)
}

// IsAuthTool reports whether name is an auth primitive the dispatcher
// handles without a catalog endpoint.
func IsAuthTool(name string) bool {
	return name == "login" || name == "logout" || name == "whoami"
}

// Placeholders returns the placeholder names in a tool's path template.
func (t *Tool) Placeholders() []string {
	matches := placeholderRe.FindAllStringSubmatch(t.PathTemplate, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
