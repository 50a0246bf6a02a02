package user

import "time"

// Role is the closed set of application roles.
type Role string

const (
	// RoleKaryawan is a regular employee: checks in and sees own records.
	RoleKaryawan Role = "karyawan"
	// RoleKepala is a department head: sees all records.
	RoleKepala Role = "kepala"
	// RoleAdmin administers settings and sees all records.
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleKaryawan, RoleKepala, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
