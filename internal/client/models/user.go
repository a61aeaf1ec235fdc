// Package models defines the client-side views of Knowledge Platform API
// resources: users, documents, queries, feedback, analytics and audit logs.
package models

import "strings"

// Role classifies what a user may do. Role checks on the client gate UI
// only; the server enforces permissions on every endpoint.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleContentOwner Role = "CONTENT_OWNER"
	RoleReviewer     Role = "REVIEWER"
	RoleEmployee     Role = "EMPLOYEE"
)

// User is the cached profile snapshot returned by /auth/profile and
// /auth/register.
type User struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Role            Role   `json:"role"`
	DailyQueryCount int    `json:"daily_query_count"`
	TotalTokensUsed int64  `json:"total_tokens_used"`
	IsActive        bool   `json:"is_active"`
	DateJoined      string `json:"date_joined"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserPatch carries the profile fields a user may change. Nil fields are
// left untouched when merged into a cached User.
type UserPatch struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *Role   `json:"role,omitempty"`
}

// Merge applies the non-nil fields of p onto u.
func (u *User) Merge(p UserPatch) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}
