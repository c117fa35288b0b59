package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/kwadwoankamah/duesflow/internal/constants"
)

type contextKey struct{}

// UserContextValue is the authenticated caller as seen by handlers and
// middleware.
type UserContextValue struct {
	ID       uuid.UUID
	Email    string
	Role     string
	MemberID *uuid.UUID
}

func (u *UserContextValue) IsAdmin() bool {
	return u.Role == string(constants.RoleAdmin)
}

func NewContextWithUser(ctx context.Context, user *UserContextValue) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func FromContext(ctx context.Context) (*UserContextValue, bool) {
	user, ok := ctx.Value(contextKey{}).(*UserContextValue)
	return user, ok
}
