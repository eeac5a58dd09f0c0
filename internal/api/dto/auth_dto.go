package dto

import "comichub/internal/api/models"

type SignupRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=32"`
	Password     string `json:"password" binding:"required,min=6,max=72"`
	Email        string `json:"email" binding:"required,email"`
	Nickname     string `json:"nickname"`
	Introduction string `json:"introduction"`
}

type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RevokeTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type RevokeTokenResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public projection of a user. No password field, ever.
type UserResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	Introduction string `json:"introduction"`
}

type ProfileResponse struct {
	UserResponse
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type UpdateProfileRequest struct {
	Nickname     *string `json:"nickname,omitempty"`
	Introduction *string `json:"introduction,omitempty"`
}

func FromUser(u models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Nickname:     u.Nickname,
		Introduction: u.Introduction,
	}
}
