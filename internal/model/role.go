package model

import "slices"

// Role codes as constants
const (
	RoleClerk   = "clerk"   // Sales Clerk: view + add
	RoleManager = "manager" // Store Manager: view + add + update
	RoleAdmin   = "admin"   // System Admin: full CRUD
)

// Role represents user roles in the system
type Role struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Privileges  []string `json:"privileges"`
}

// DefaultRoles defines the roles in the system and what each one may do
var DefaultRoles = []Role{
	{
		Code:        RoleClerk,
		Name:        "Sales Clerk",
		Description: "Can view and add records",
		Privileges:  []string{PrivRecordView, PrivRecordCreate},
	},
	{
		Code:        RoleManager,
		Name:        "Store Manager",
		Description: "Can view, add and update records",
		Privileges:  []string{PrivRecordView, PrivRecordCreate, PrivRecordUpdate},
	},
	{
		Code:        RoleAdmin,
		Name:        "System Admin",
		Description: "Full access to records",
		Privileges:  []string{PrivRecordView, PrivRecordCreate, PrivRecordUpdate, PrivRecordDelete},
	},
}

// FindRole returns the role with the given code.
func FindRole(code string) (Role, bool) {
	for _, r := range DefaultRoles {
		if r.Code == code {
			return r, true
		}
	}
	return Role{}, false
}

// PrivilegesFor returns the privilege codes granted to a role code, nil for unknown roles.
func PrivilegesFor(code string) []string {
	r, ok := FindRole(code)
	if !ok {
		return nil
	}
	return slices.Clone(r.Privileges)
}

// IsValidRole reports whether code names a known role.
func IsValidRole(code string) bool {
	_, ok := FindRole(code)
	return ok
}
