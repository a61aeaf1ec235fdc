package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestUser_FullName(t *testing.T) {
	u := User{FirstName: "Alice", LastName: "Smith"}
	assert.Equal(t, "Alice Smith", u.FullName())

	u = User{FirstName: "Alice"}
	assert.Equal(t, "Alice", u.FullName())

	u = User{}
	assert.Equal(t, "", u.FullName())
}

func TestUser_Merge_OnlySetFields(t *testing.T) {
	u := User{
		ID:        7,
		Username:  "alice",
		Email:     "old@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Role:      RoleEmployee,
	}

	u.Merge(UserPatch{Email: strptr("x@y.com")})

	assert.Equal(t, "x@y.com", u.Email)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "Alice", u.FirstName)
	assert.Equal(t, "Smith", u.LastName)
	assert.Equal(t, RoleEmployee, u.Role)
}

func TestUser_Merge_AllFields(t *testing.T) {
	u := User{}
	role := RoleReviewer
	u.Merge(UserPatch{
		Email:     strptr("a@b.c"),
		FirstName: strptr("A"),
		LastName:  strptr("B"),
		Role:      &role,
	})

	assert.Equal(t, "a@b.c", u.Email)
	assert.Equal(t, "A", u.FirstName)
	assert.Equal(t, "B", u.LastName)
	assert.Equal(t, RoleReviewer, u.Role)
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleContentOwner}).IsAdmin())
}
