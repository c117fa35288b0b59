package users

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/kwadwoankamah/duesflow/internal/config"
	"github.com/kwadwoankamah/duesflow/internal/dto"
	"github.com/kwadwoankamah/duesflow/internal/repository"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
	"github.com/kwadwoankamah/duesflow/pkg/token"
)

var (
	_ UserRepository = (*repository.UserRepository)(nil)
	_ TokenService   = (*token.Jwt)(nil)
)

type UserRepository interface {
	Get(ctx context.Context, filter repository.UserRepositoryFilter) (*repository.User, error)
}

type TokenService interface {
	GenerateTokenPair(params *token.TokenPairParams) (*token.TokenPair, error)
	ValidateToken(tokenString string) (*token.UserClaims, error)
}

type User struct {
	Config       *config.Config
	TokenService TokenService
	UserRepo     UserRepository
}

func New(cfg *config.Config, tokenService TokenService, userRepo UserRepository) *User {
	return &User{
		Config:       cfg,
		TokenService: tokenService,
		UserRepo:     userRepo,
	}
}

func invalidCredentials() *svc.APIError {
	// Generic on purpose so the response does not reveal whether the
	// account exists.
	return &svc.APIError{
		Status:  http.StatusUnauthorized,
		Message: "invalid email or password",
	}
}

// Login verifies credentials against the seeded account store and issues a
// role-stamped token pair.
func (u *User) Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := u.UserRepo.Get(ctx, repository.UserRepositoryFilter{
		Email: &input.Email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, invalidCredentials()
	}

	return u.authResponse(user)
}

// Refresh rotates a valid refresh token into a fresh pair.
func (u *User) Refresh(ctx context.Context, input *dto.RefreshInput) (*dto.AuthResponse, error) {
	claims, err := u.TokenService.ValidateToken(input.RefreshToken)
	if err != nil {
		return nil, &svc.APIError{
			Status:  http.StatusUnauthorized,
			Message: "invalid or expired refresh token",
		}
	}

	user, err := u.UserRepo.Get(ctx, repository.UserRepositoryFilter{ID: &claims.ID})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &svc.APIError{
				Status:  http.StatusUnauthorized,
				Message: "invalid or expired refresh token",
			}
		}
		return nil, err
	}

	return u.authResponse(user)
}

func (u *User) authResponse(user *repository.User) (*dto.AuthResponse, error) {
	tokenPair, err := u.TokenService.GenerateTokenPair(&token.TokenPairParams{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		MemberID: user.MemberID,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: &dto.AuthUser{
			ID:       user.ID,
			Email:    user.Email,
			Role:     user.Role,
			MemberID: user.MemberID,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(token.AccessTokenExpirationTime.Seconds()),
	}, nil
}
