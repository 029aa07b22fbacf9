package dto

import "time"

// SignupRequest alta de usuario (password en texto, se hashea en el caso de uso).
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=owner cashier manager admin"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest cambios de rol o contraseña; al menos uno.
type UpdateUserRequest struct {
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=owner cashier manager admin"`
}

// UserListQuery filtro opcional por rol.
type UserListQuery struct {
	Role string `query:"role" validate:"omitempty,oneof=owner cashier manager admin"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse token JWT más el usuario autenticado.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
