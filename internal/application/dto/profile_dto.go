package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserForm datos básicos editables de la propia cuenta.
type UserForm struct {
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
}

// CustomerProfileForm datos de cliente editables por el propio cliente (el correo no se edita aquí).
type CustomerProfileForm struct {
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=100"`
	Phone     string `json:"phone" validate:"required,notblank,max=20"`
	Address   string `json:"address"`
}

// MyProfileResponse pantalla "mi perfil".
type MyProfileResponse struct {
	User     UserForm             `json:"user"`
	Customer *CustomerProfileView `json:"customer"`
	Message  string               `json:"message,omitempty"`
}

// CustomerProfileView sub-formulario de cliente con el nombre completo de solo lectura.
type CustomerProfileView struct {
	FullName string `json:"full_name"`
	CustomerProfileForm
}

// UpdateMyProfileRequest ambos sub-formularios; Customer se ignora si la cuenta no tiene cliente.
type UpdateMyProfileRequest struct {
	User     UserForm             `json:"user"`
	Customer *CustomerProfileForm `json:"customer"`
}

// PurchasesResponse compras del cliente asociado a la cuenta.
type PurchasesResponse struct {
	Sales   []SaleResponse  `json:"sales"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Message string          `json:"message,omitempty"`
}

// ProfileFilterRequest filtros del listado administrativo de perfiles.
type ProfileFilterRequest struct {
	Role       string `query:"role" validate:"omitempty,oneof=administrador gerente empleado vendedor cliente"`
	Active     string `query:"active" validate:"omitempty,oneof=true false"`
	Department string `query:"department"`
	Q          string `query:"q"`
}

// UpdateProfileRequest campos editables de un perfil desde la administración.
type UpdateProfileRequest struct {
	Role   *string `json:"role" validate:"omitempty,oneof=administrador gerente empleado vendedor cliente"`
	Active *bool   `json:"active"`
}

// ProfileResponse salida de un perfil.
type ProfileResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Active     bool      `json:"active"`
	HireDate   time.Time `json:"hire_date"`
}
