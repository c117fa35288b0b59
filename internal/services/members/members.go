package members

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/kwadwoankamah/duesflow/internal/config"
	"github.com/kwadwoankamah/duesflow/internal/dto"
	"github.com/kwadwoankamah/duesflow/internal/repository"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
	"github.com/kwadwoankamah/duesflow/internal/validation"
	"github.com/kwadwoankamah/duesflow/pkg/imagestore"
	"github.com/kwadwoankamah/duesflow/pkg/logger"
)

var _ MemberRepository = (*repository.MemberRepository)(nil)

type MemberRepository interface {
	Get(ctx context.Context, filter repository.MemberRepositoryFilter) (*repository.Member, error)
	Exists(ctx context.Context, filter repository.MemberRepositoryFilter) (bool, error)
	Create(ctx context.Context, member *repository.Member) (*repository.Member, error)
	Update(ctx context.Context, member *repository.Member) (*repository.Member, error)
	List(ctx context.Context, filter repository.MemberListFilter) ([]*repository.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ResetDues(ctx context.Context) error
}

type ImageStore interface {
	Size(id uuid.UUID) int64
}

type Member struct {
	Config           *config.Config
	MemberRepository MemberRepository
	Validator        *validation.Validator
	Images           ImageStore
	Logger           *logger.Logger
}

var _ ImageStore = (*imagestore.Store)(nil)

func New(cfg *config.Config, memberRepo MemberRepository, v *validation.Validator, images ImageStore, log *logger.Logger) *Member {
	return &Member{
		Config:           cfg,
		MemberRepository: memberRepo,
		Validator:        v,
		Images:           images,
		Logger:           log,
	}
}

func validationError(fieldErrors map[string]string) *svc.APIError {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return &svc.APIError{
		Status:  http.StatusBadRequest,
		Message: "Input validation failed",
		Errors: lo.Map(fields, func(field string, _ int) svc.FieldError {
			return svc.FieldError{Field: field, Message: fieldErrors[field]}
		}),
	}
}

func (m *Member) Create(ctx context.Context, input dto.MemberDraft) (*dto.Member, error) {
	if input.ProfilePictureID != nil {
		input.ProfilePictureSize = m.Images.Size(*input.ProfilePictureID)
	}

	if fieldErrors := m.Validator.ValidateMember(input); len(fieldErrors) > 0 {
		return nil, validationError(fieldErrors)
	}

	status := dto.MemberStatusActive
	if input.Status != "" {
		if input.Status != string(dto.MemberStatusActive) && input.Status != string(dto.MemberStatusInactive) {
			return nil, &svc.APIError{
				Status:  http.StatusBadRequest,
				Message: fmt.Sprintf("invalid member status %q", input.Status),
			}
		}
		status = dto.MemberStatus(input.Status)
	}

	emailExists, err := m.MemberRepository.Exists(ctx, repository.MemberRepositoryFilter{
		Email: &input.Email,
	})
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, &svc.APIError{
			Status:  http.StatusConflict,
			Message: "Email already exists",
		}
	}

	phoneExists, err := m.MemberRepository.Exists(ctx, repository.MemberRepositoryFilter{
		Phone: &input.Phone,
	})
	if err != nil {
		return nil, err
	}
	if phoneExists {
		return nil, &svc.APIError{
			Status:  http.StatusConflict,
			Message: "Phone number already exists",
		}
	}

	member, err := m.MemberRepository.Create(ctx, &repository.Member{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Region:           input.Region,
		Occupation:       input.Occupation,
		Status:           string(status),
		DuesPaid:         false,
		MemberSince:      time.Now(),
		ProfilePictureID: input.ProfilePictureID,
		Payments:         []repository.Payment{},
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info().
		Str("member_id", member.ID.String()).
		Str("region", member.Region).
		Msg("member_created")

	return m.mapRepositoryToDTO(member), nil
}

// Update applies a partial patch to an existing member. Only supplied fields
// change; the merged record is re-validated before it is written back.
func (m *Member) Update(ctx context.Context, id uuid.UUID, input dto.UpdateMemberInput) (*dto.Member, error) {
	member, err := m.MemberRepository.Get(ctx, repository.MemberRepositoryFilter{ID: &id})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Message: "Member not found",
			}
		}
		return nil, err
	}

	// The store matches emails case-insensitively, so the guard has to as
	// well or a member re-casing their own email conflicts with themselves.
	if input.Email != nil && !strings.EqualFold(*input.Email, member.Email) {
		exists, err := m.MemberRepository.Exists(ctx, repository.MemberRepositoryFilter{Email: input.Email})
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &svc.APIError{
				Status:  http.StatusConflict,
				Message: "Email already exists",
			}
		}
	}
	if input.Phone != nil && *input.Phone != member.Phone {
		exists, err := m.MemberRepository.Exists(ctx, repository.MemberRepositoryFilter{Phone: input.Phone})
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &svc.APIError{
				Status:  http.StatusConflict,
				Message: "Phone number already exists",
			}
		}
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Region != nil {
		member.Region = *input.Region
	}
	if input.Occupation != nil {
		member.Occupation = *input.Occupation
	}
	if input.Status != nil {
		if *input.Status != string(dto.MemberStatusActive) && *input.Status != string(dto.MemberStatusInactive) {
			return nil, &svc.APIError{
				Status:  http.StatusBadRequest,
				Message: fmt.Sprintf("invalid member status %q", *input.Status),
			}
		}
		member.Status = *input.Status
	}
	if input.ProfilePictureID != nil {
		member.ProfilePictureID = input.ProfilePictureID
	}

	draft := dto.MemberDraft{
		Name:             member.Name,
		Email:            member.Email,
		Phone:            member.Phone,
		Region:           member.Region,
		Occupation:       member.Occupation,
		ProfilePictureID: member.ProfilePictureID,
	}
	if member.ProfilePictureID != nil {
		draft.ProfilePictureSize = m.Images.Size(*member.ProfilePictureID)
	}
	if fieldErrors := m.Validator.ValidateMember(draft); len(fieldErrors) > 0 {
		return nil, validationError(fieldErrors)
	}

	updated, err := m.MemberRepository.Update(ctx, member)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Message: "Member not found",
			}
		}
		return nil, err
	}

	return m.mapRepositoryToDTO(updated), nil
}

func (m *Member) Get(ctx context.Context, id uuid.UUID) (*dto.Member, error) {
	member, err := m.MemberRepository.Get(ctx, repository.MemberRepositoryFilter{ID: &id})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Message: "Member not found",
			}
		}
		return nil, err
	}
	return m.mapRepositoryToDTO(member), nil
}

// List returns the directory's filtered view in insertion order.
func (m *Member) List(ctx context.Context, filters dto.MemberFilters) ([]dto.Member, error) {
	members, err := m.MemberRepository.List(ctx, repository.MemberListFilter{
		Region: filters.Region,
		Search: filters.Search,
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(members, func(member *repository.Member, _ int) dto.Member {
		return *m.mapRepositoryToDTO(member)
	}), nil
}

func (m *Member) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.MemberRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &svc.APIError{
				Status:  http.StatusNotFound,
				Message: "Member not found",
			}
		}
		return err
	}

	m.Logger.Info().Str("member_id", id.String()).Msg("member_deleted")
	return nil
}

// Stats backs the admin dashboard cards.
func (m *Member) Stats(ctx context.Context) (*dto.MemberStats, error) {
	members, err := m.MemberRepository.List(ctx, repository.MemberListFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	regions := map[string]struct{}{}
	duesPaid := 0
	collected := decimal.Zero

	for _, member := range members {
		regions[member.Region] = struct{}{}
		if member.DuesPaid {
			duesPaid++
		}
		for _, payment := range member.Payments {
			if payment.Status != string(dto.PaymentStatusPaid) {
				continue
			}
			if payment.Date.Year() == now.Year() && payment.Date.Month() == now.Month() {
				collected = collected.Add(payment.Amount)
			}
		}
	}

	return &dto.MemberStats{
		TotalMembers:       len(members),
		DuesPaidCount:      duesPaid,
		ActiveRegions:      len(regions),
		CollectedThisMonth: collected,
	}, nil
}

// ResetDues flips every member back to unpaid at the start of a billing
// period.
func (m *Member) ResetDues(ctx context.Context) error {
	if err := m.MemberRepository.ResetDues(ctx); err != nil {
		return err
	}
	m.Logger.Info().Msg("dues_reset_for_new_period")
	return nil
}

func (m *Member) mapRepositoryToDTO(member *repository.Member) *dto.Member {
	out := &dto.Member{
		ID:          member.ID,
		Name:        member.Name,
		Email:       member.Email,
		Phone:       member.Phone,
		Region:      member.Region,
		Occupation:  member.Occupation,
		Status:      dto.MemberStatus(member.Status),
		DuesPaid:    member.DuesPaid,
		MemberSince: member.MemberSince,
		Payments: lo.Map(member.Payments, func(payment repository.Payment, _ int) dto.Payment {
			return dto.Payment{
				ID:        payment.ID,
				Date:      payment.Date,
				Amount:    payment.Amount,
				Status:    dto.PaymentStatus(payment.Status),
				Reference: payment.Reference,
				Method:    payment.Method,
			}
		}),
	}
	if member.ProfilePictureID != nil {
		out.ProfilePictureURL = fmt.Sprintf("/api/v1/images/%s", member.ProfilePictureID)
	}
	return out
}
