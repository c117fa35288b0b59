package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UserRepository holds login accounts in memory.
type UserRepository struct {
	mu    sync.RWMutex
	users []*User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

type UserRepositoryFilter struct {
	ID       *uuid.UUID
	Email    *string
	MemberID *uuid.UUID
}

func (ur *UserRepository) match(user *User, filter UserRepositoryFilter) bool {
	if filter.ID != nil && user.ID != *filter.ID {
		return false
	}
	if filter.Email != nil && !strings.EqualFold(user.Email, *filter.Email) {
		return false
	}
	if filter.MemberID != nil && (user.MemberID == nil || *user.MemberID != *filter.MemberID) {
		return false
	}
	return true
}

func (ur *UserRepository) Get(ctx context.Context, filter UserRepositoryFilter) (*User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	for _, user := range ur.users {
		if ur.match(user, filter) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (ur *UserRepository) Exists(ctx context.Context, filter UserRepositoryFilter) (bool, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	for _, user := range ur.users {
		if ur.match(user, filter) {
			return true, nil
		}
	}
	return false, nil
}

func (ur *UserRepository) Create(ctx context.Context, user *User) (*User, error) {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	stored := *user
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	ur.users = append(ur.users, &stored)

	clone := stored
	return &clone, nil
}
