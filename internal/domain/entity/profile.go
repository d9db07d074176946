package entity

import "time"

// Roles válidos para Profile.
const (
	RoleAdmin    = "administrador"
	RoleManager  = "gerente"
	RoleEmployee = "empleado"
	RoleSeller   = "vendedor"
	RoleCustomer = "cliente"
)

// ValidRoles lista los roles aceptados, en el orden en que se presentan.
var ValidRoles = []string{RoleAdmin, RoleManager, RoleEmployee, RoleSeller, RoleCustomer}

// IsValidRole informa si role es uno de ValidRoles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Profile extiende a User (uno a uno) con rol, departamento y estado.
type Profile struct {
	ID         string
	UserID     string
	Role       string
	Department string
	Active     bool
	HireDate   time.Time

	// Campos de lectura (JOIN); no se persisten.
	Username string
	Email    string
}
