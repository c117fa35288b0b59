package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is immutable once recorded. Insertion order in Member.Payments is
// the order payments were recorded, not necessarily date order.
type Payment struct {
	ID        uuid.UUID
	Date      time.Time
	Amount    decimal.Decimal
	Status    string
	Reference string
	Method    string
}

type Member struct {
	ID               uuid.UUID
	Name             string
	Email            string
	Phone            string
	Region           string
	Occupation       string
	Status           string
	DuesPaid         bool
	MemberSince      time.Time
	ProfilePictureID *uuid.UUID
	Payments         []Payment
	CreatedAt        time.Time
	DeletedAt        *time.Time
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	MemberID     *uuid.UUID
	CreatedAt    time.Time
}
