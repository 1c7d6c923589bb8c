package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Authenticator interface {
	GenerateToken(id Identity, ttl time.Duration) (string, error)
	ValidateAccessToken(token string) (*jwt.Token, error)
}
