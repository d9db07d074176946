package entity

import "time"

// User representa la identidad de autenticación (credenciales y datos básicos).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Email        string
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
}
