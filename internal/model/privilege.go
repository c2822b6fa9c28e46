package model

// Privilege represents a permission that can be granted to a role
type Privilege struct {
	Code string `json:"code"` // e.g., "record:create"
	Name string `json:"name"` // e.g., "Create Record"
}

// Privilege codes
const (
	PrivRecordView   = "record:view"
	PrivRecordCreate = "record:create"
	PrivRecordUpdate = "record:update"
	PrivRecordDelete = "record:delete"
)

// DefaultPrivileges for the system
var DefaultPrivileges = []Privilege{
	{Code: PrivRecordView, Name: "View Record"},
	{Code: PrivRecordCreate, Name: "Create Record"},
	{Code: PrivRecordUpdate, Name: "Update Record"},
	{Code: PrivRecordDelete, Name: "Delete Record"},
}
