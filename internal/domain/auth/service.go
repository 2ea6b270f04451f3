package auth

import "context"

// AuthService defines business logic for admin authentication
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
