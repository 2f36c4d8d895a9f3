package token

import (
	"time"

	"github.com/google/uuid"
)

type JWTType string

const (
	AccessTokenExpirationTime          = time.Minute * 15
	RefreshTokenExpirationTime         = time.Hour * 24 * 7
	RefreshTokenExpirationTimeForAdmin = time.Hour * 24 * 14

	JWTTypeMember JWTType = "member"
	JWTTypeAdmin  JWTType = "admin"
)

type CreateTokenParams struct {
	ID       uuid.UUID
	Email    string
	Roles    []string
	JwtType  JWTType
	Duration time.Duration
}

type TokenPairParams struct {
	ID      uuid.UUID
	Email   string
	Roles   []string
	JwtType JWTType
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
