package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de una identidad (sin hash).
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
	Role        string `json:"role,omitempty"`
}

// LoginResponse token de sesión y usuario autenticado.
type LoginResponse struct {
	Token    string       `json:"token"`
	User     UserResponse `json:"user"`
	Message  string       `json:"message"`
	Redirect string       `json:"redirect"`
}
