package dto

import "time"

// CustomerRequest entrada para crear o editar un cliente.
type CustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,notblank,max=20"`
	Address   string `json:"address"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	RegisteredAt time.Time `json:"registered_at"`
	UserID       string    `json:"user_id,omitempty"`
}
