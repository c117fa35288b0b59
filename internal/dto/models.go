package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MemberStatus string
type PaymentStatus string
type PaymentStep string

const (
	MemberStatusActive   MemberStatus = "Active"
	MemberStatusInactive MemberStatus = "Inactive"

	PaymentStatusPaid   PaymentStatus = "Paid"
	PaymentStatusUnpaid PaymentStatus = "Unpaid"

	PaymentStepCollecting PaymentStep = "COLLECTING"
	PaymentStepConfirming PaymentStep = "CONFIRMING"
	PaymentStepSucceeded  PaymentStep = "SUCCEEDED"
)

// MemberDraft is the create-member form. ProfilePictureSize is filled in by
// the handler from the uploaded image so the size rule lives with the rest of
// the field rules.
type MemberDraft struct {
	Name               string     `json:"name" validate:"required"`
	Email              string     `json:"email" validate:"required,email"`
	Phone              string     `json:"phone" validate:"required"`
	Region             string     `json:"region" validate:"required,region"`
	Occupation         string     `json:"occupation"`
	Status             string     `json:"status,omitempty"`
	ProfilePictureID   *uuid.UUID `json:"profile_picture_id,omitempty"`
	ProfilePictureSize int64      `json:"-" validate:"lte=5242880"`
}

type UpdateMemberInput struct {
	Name             *string    `json:"name,omitempty"`
	Email            *string    `json:"email,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Region           *string    `json:"region,omitempty"`
	Occupation       *string    `json:"occupation,omitempty"`
	Status           *string    `json:"status,omitempty"`
	ProfilePictureID *uuid.UUID `json:"profile_picture_id,omitempty"`
}

// PaymentDraft is the mobile-money collection form.
type PaymentDraft struct {
	PhoneNumber string `json:"phone_number" validate:"required,momo"`
}

type Payment struct {
	ID        uuid.UUID       `json:"id"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
	Reference string          `json:"reference,omitempty"`
	Method    string          `json:"method"`
}

type Member struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone"`
	Region            string       `json:"region"`
	Occupation        string       `json:"occupation,omitempty"`
	Status            MemberStatus `json:"status"`
	DuesPaid          bool         `json:"dues_paid"`
	MemberSince       time.Time    `json:"member_since"`
	ProfilePictureURL string       `json:"profile_picture_url,omitempty"`
	Payments          []Payment    `json:"payments"`
}

// MemberFilters drives the directory's filtered view.
type MemberFilters struct {
	Region string `json:"region,omitempty"`
	Search string `json:"search,omitempty"`
}

type MemberStats struct {
	TotalMembers       int             `json:"total_members"`
	DuesPaidCount      int             `json:"dues_paid_count"`
	ActiveRegions      int             `json:"active_regions"`
	CollectedThisMonth decimal.Decimal `json:"collected_this_month"`
}

// PaymentSession is the recorder's state as seen by the client.
type PaymentSession struct {
	ID          uuid.UUID       `json:"id"`
	MemberID    uuid.UUID       `json:"member_id"`
	Step        PaymentStep     `json:"step"`
	Amount      decimal.Decimal `json:"amount"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	Payment     *Payment        `json:"payment,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthUser struct {
	ID       uuid.UUID  `json:"id"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	MemberID *uuid.UUID `json:"member_id,omitempty"`
}

type AuthResponse struct {
	User         *AuthUser `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type ImageUploadResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}
