package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Manages users and office settings
	RoleManager Role = "manager" // Can approve leave/attendance and run payroll
	RoleStaff   Role = "staff"   // Regular employee
)

// Roles lists every assignable role.
var Roles = []string{string(RoleAdmin), string(RoleManager), string(RoleStaff)}

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	FullName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role.IsManager()
}

// CanApprove checks if user can approve requests
func (u *User) CanApprove() bool {
	return u.IsManager()
}

// IsManager reports whether the role may review attendance, leave and payroll.
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleAdmin
}
