package dto

import "time"

// RegisterRequest corps de POST /api/auth/register.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password"`
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	Language        string `json:"preferred_language"`
}

// LoginRequest corps de POST /api/auth/login. Identifier accepte
// username, email ou numéro de téléphone.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UserResponse représentation publique d'un utilisateur.
type UserResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phone_number"`
	Role              string    `json:"role"`
	BusinessName      string    `json:"business_name"`
	BusinessAddress   string    `json:"business_address"`
	PreferredLanguage string    `json:"preferred_language"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LoginResponse token + utilisateur.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest corps de PUT /api/auth/profile.
type UpdateProfileRequest struct {
	BusinessName    *string `json:"business_name"`
	BusinessAddress *string `json:"business_address"`
	Language        *string `json:"preferred_language"`
}
