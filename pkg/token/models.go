package token

import (
	"time"

	"github.com/google/uuid"
)

const (
	AccessTokenExpirationTime  = time.Minute * 15
	RefreshTokenExpirationTime = time.Hour * 24 * 7

	RefreshTokenName = "refresh_token"
	AccessTokenName  = "access_token"
)

type CreateTokenParams struct {
	ID       uuid.UUID
	Email    string
	Role     string
	MemberID *uuid.UUID
	Duration time.Duration
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type TokenPairParams struct {
	ID       uuid.UUID
	Email    string
	Role     string
	MemberID *uuid.UUID
}
