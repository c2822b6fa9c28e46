package model

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordLen is the longest input bcrypt reads in full.
const maxPasswordLen = 72

// User represents a shop employee who can log in
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash, hidden from JSON
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash.
// bcrypt ignores bytes past 72 and stops at NUL, so such inputs are rejected outright
// to keep the match exact.
func (u *User) CheckPassword(password string) bool {
	if len(password) == 0 || len(password) > maxPasswordLen || strings.ContainsRune(password, 0) {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Principal is the public projection of a logged-in user.
type Principal struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ToPrincipal converts User to Principal
func (u *User) ToPrincipal() Principal {
	return Principal{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// SeedUser is a user as configured before its password is hashed.
type SeedUser struct {
	ID       int
	Email    string
	Password string
	Role     string
	Name     string
}

// DefaultUsers are the three shop accounts.
var DefaultUsers = []SeedUser{
	{ID: 1, Email: "clerk@recordshop.com", Password: "password", Role: RoleClerk, Name: "Chris Clerk"},
	{ID: 2, Email: "manager@recordshop.com", Password: "password", Role: RoleManager, Name: "Mandy Manager"},
	{ID: 3, Email: "admin@recordshop.com", Password: "password", Role: RoleAdmin, Name: "Alex Admin"},
}
