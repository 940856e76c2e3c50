// Package rbac holds the static role-to-tool permission table.
//
// The backend performs its own authorization on every request; this table
// is an additional enforcement point in front of it, so a denied caller
// gets a clear reason instead of a backend 403.
package rbac

import (
	"fmt"
	"sort"
	"strings"
)

// Role is the closed role enumeration, matching the backend's UserRole.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

// ParseRole maps a role string from a session or backend response to a
// Role. Unknown strings are rejected, never coerced.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(s)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleMember:
		return RoleMember, nil
	}
	return "", fmt.Errorf("invalid role: %s", s)
}

// memberAllowed is the base permission set: read plus the non-destructive
// write operations.
var memberAllowed = toolSet(
	"login", "logout", "whoami",

	"contacts_list", "contacts_get", "contacts_search",
	"contacts_create", "contacts_update",

	"deals_list", "deals_get", "deals_create",
	"deals_update", "deals_move",

	"leads_list", "leads_create",
	"leads_update", "leads_convert",

	"tickets_list", "tickets_get", "tickets_create",
	"tickets_update", "tickets_comment", "tickets_assign",

	"pipelines_list", "stages_list",

	"analytics_dashboard", "analytics_revenue",

	"portal_customers_list", "portal_tickets_list", "portal_tickets_create",
)

// managerExtras is what MANAGER gets on top of MEMBER: record deletion
// and read-only user access. The extras are enumerated rather than
// derived so the partial order MEMBER < MANAGER < ADMIN stays visible.
var managerExtras = toolSet(
	"contacts_delete", "deals_delete", "leads_delete", "tickets_delete",
	"users_list", "users_get",
)

// adminOnly covers user management and pipeline/stage configuration.
// Record deletion also appears here so a MEMBER denial can name the
// roles that do hold the permission.
var adminOnly = toolSet(
	"contacts_delete", "deals_delete", "leads_delete", "tickets_delete",

	"users_list", "users_get", "users_invite",
	"users_update_role", "users_deactivate",

	"pipelines_create", "pipelines_update", "pipelines_delete",
	"stages_create", "stages_update",
)

func toolSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Checker answers allow/deny queries for a role and tool name. It holds
// no mutable state; Check is pure.
type Checker struct{}

// NewChecker creates a permission checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check reports whether roleName may invoke toolName, with a
// human-readable reason on denial. Allowed results carry an empty reason.
func (c *Checker) Check(roleName, toolName string) (bool, string) {
	role, err := ParseRole(roleName)
	if err != nil {
		return false, err.Error()
	}

	switch role {
	case RoleAdmin:
		return true, ""

	case RoleManager:
		if memberAllowed[toolName] || managerExtras[toolName] {
			return true, ""
		}
		if adminOnly[toolName] {
			return false, fmt.Sprintf("only ADMINs can use %q; contact your workspace admin", toolName)
		}
		return false, fmt.Sprintf("%q is not available to the MANAGER role", toolName)

	case RoleMember:
		if memberAllowed[toolName] {
			return true, ""
		}
		if adminOnly[toolName] {
			return false, fmt.Sprintf("%q requires the ADMIN role (or MANAGER for record deletion); contact your manager or admin", toolName)
		}
		return false, fmt.Sprintf("%q is not available to the MEMBER role", toolName)
	}

	return false, fmt.Sprintf("role %q cannot access %q", roleName, toolName)
}

// ManagerAllowed reports whether MANAGER may invoke toolName. Exposed for
// the set-inclusion invariant checks in tests.
func ManagerAllowed(toolName string) bool {
	return memberAllowed[toolName] || managerExtras[toolName]
}

// MemberAllowed reports whether MEMBER may invoke toolName.
func MemberAllowed(toolName string) bool {
	return memberAllowed[toolName]
}

// ValidateCatalog asserts that every tool name referenced by a permission
// set exists in the given catalog name set. Run at startup to catch drift
// between the table and the catalog.
func ValidateCatalog(catalogNames map[string]bool) error {
	var missing []string
	for _, set := range []map[string]bool{memberAllowed, managerExtras, adminOnly} {
		for name := range set {
			if !catalogNames[name] {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("permission table references tools missing from the catalog: %s", strings.Join(missing, ", "))
	}
	return nil
}
