package usecase

import (
	authdomain "teamboard-backend/internal/auth/domain"
	authdto "teamboard-backend/internal/auth/dto"
)

// AuthUsecase defines the authentication operations exposed to delivery
// and to the socket handler (ValidateToken).
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(token string) (*authdomain.User, error)
	GetUserByID(id string) (*authdomain.User, error)
}
