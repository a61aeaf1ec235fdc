// Package nav holds the role-gated navigation table. The filtering is a
// pure function over the viewer's role so it can be reused by any surface
// that renders a menu.
package nav

import "github.com/hhsksonu/kpcli/internal/client/models"

// RoleAll marks an item visible to every authenticated user regardless of
// role. It never matches an actual user role.
const RoleAll models.Role = "ALL"

// Item is one navigation entry. Roles lists who may see it; visibility is
// a UI concern only, the server authorizes every underlying request.
type Item struct {
	Name  string
	Path  string
	Roles []models.Role
}

// allowed reports whether a user with the given role may see the item.
func (i Item) allowed(role models.Role) bool {
	for _, r := range i.Roles {
		if r == RoleAll || r == role {
			return true
		}
	}
	return false
}

// Items is the full navigation table in display order.
var Items = []Item{
	{Name: "Dashboard", Path: "/dashboard", Roles: []models.Role{RoleAll}},
	{Name: "Documents", Path: "/documents", Roles: []models.Role{RoleAll}},
	{Name: "Upload Document", Path: "/documents/upload", Roles: []models.Role{models.RoleAdmin, models.RoleContentOwner}},
	{Name: "Ask Question", Path: "/query", Roles: []models.Role{RoleAll}},
	{Name: "Query History", Path: "/query/history", Roles: []models.Role{RoleAll}},
	{Name: "Analytics", Path: "/analytics", Roles: []models.Role{models.RoleAdmin, models.RoleReviewer}},
	{Name: "Audit Logs", Path: "/audit", Roles: []models.Role{models.RoleAdmin}},
	{Name: "Profile", Path: "/profile", Roles: []models.Role{RoleAll}},
}

// Visible filters items down to what a user with the given role may see,
// preserving order. An empty role (logged out) sees only RoleAll entries.
func Visible(items []Item, role models.Role) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.allowed(role) {
			out = append(out, item)
		}
	}
	return out
}
