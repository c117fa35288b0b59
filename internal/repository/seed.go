package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

//go:embed data/members.json
var membersJSON []byte

//go:embed data/users.json
var usersJSON []byte

type seedPayment struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
	Method string          `json:"method"`
}

type seedMember struct {
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Region      string        `json:"region"`
	Occupation  string        `json:"occupation"`
	Status      string        `json:"status"`
	DuesPaid    bool          `json:"dues_paid"`
	MemberSince string        `json:"member_since"`
	Payments    []seedPayment `json:"payments"`
}

type seedUser struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	MemberEmail string `json:"member_email"`
}

// Seed loads the embedded fixture members and login accounts into the
// in-memory stores. It runs once at startup; fixture passwords are
// development-only.
func Seed(ctx context.Context, memberRepo *MemberRepository, userRepo *UserRepository) error {
	var seedMembers []seedMember
	if err := json.Unmarshal(membersJSON, &seedMembers); err != nil {
		return fmt.Errorf("unmarshal seed members: %w", err)
	}

	memberIDsByEmail := make(map[string]uuid.UUID, len(seedMembers))
	for _, sm := range seedMembers {
		memberSince, err := time.Parse("2006-01-02", sm.MemberSince)
		if err != nil {
			return fmt.Errorf("parse member_since for %s: %w", sm.Email, err)
		}

		payments := make([]Payment, 0, len(sm.Payments))
		for _, sp := range sm.Payments {
			date, err := time.Parse("2006-01-02", sp.Date)
			if err != nil {
				return fmt.Errorf("parse payment date for %s: %w", sm.Email, err)
			}
			payments = append(payments, Payment{
				ID:     uuid.New(),
				Date:   date,
				Amount: sp.Amount,
				Status: sp.Status,
				Method: sp.Method,
			})
		}

		created, err := memberRepo.Create(ctx, &Member{
			Name:        sm.Name,
			Email:       sm.Email,
			Phone:       sm.Phone,
			Region:      sm.Region,
			Occupation:  sm.Occupation,
			Status:      sm.Status,
			DuesPaid:    sm.DuesPaid,
			MemberSince: memberSince,
			Payments:    payments,
		})
		if err != nil {
			return fmt.Errorf("seed member %s: %w", sm.Email, err)
		}
		memberIDsByEmail[sm.Email] = created.ID
	}

	var seedUsers []seedUser
	if err := json.Unmarshal(usersJSON, &seedUsers); err != nil {
		return fmt.Errorf("unmarshal seed users: %w", err)
	}

	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.Email, err)
		}

		user := &User{
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
		}
		if su.MemberEmail != "" {
			if memberID, ok := memberIDsByEmail[su.MemberEmail]; ok {
				user.MemberID = &memberID
			}
		}

		if _, err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", su.Email, err)
		}
	}

	return nil
}
