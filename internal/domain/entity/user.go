package entity

import (
	"slices"
	"time"
)

// Roles válidos para User.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// ManagementRoles pueden modificar catálogo, ver analítica y administrar usuarios.
var ManagementRoles = []string{RoleOwner, RoleManager, RoleAdmin}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleManager, RoleAdmin, RoleCashier:
		return true
	}
	return false
}

// User representa un usuario de la tienda.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManagementRole indica si role está en ManagementRoles.
func IsManagementRole(role string) bool {
	return slices.Contains(ManagementRoles, role)
}
