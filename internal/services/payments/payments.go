package payments

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kwadwoankamah/duesflow/internal/config"
	"github.com/kwadwoankamah/duesflow/internal/dto"
	"github.com/kwadwoankamah/duesflow/internal/repository"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
	"github.com/kwadwoankamah/duesflow/internal/validation"
	"github.com/kwadwoankamah/duesflow/pkg/logger"
	"github.com/kwadwoankamah/duesflow/pkg/momo"
)

const paymentMethod = "MTN Mobile Money"

var _ MemberRepository = (*repository.MemberRepository)(nil)

type MemberRepository interface {
	Get(ctx context.Context, filter repository.MemberRepositoryFilter) (*repository.Member, error)
	AppendPayment(ctx context.Context, memberID uuid.UUID, payment repository.Payment) (*repository.Member, error)
}

// session is one open payment flow. Collecting and Confirming are the two
// interactive steps; a failed gateway call keeps the session on its current
// step so the operator can resubmit.
type session struct {
	ID          uuid.UUID
	MemberID    uuid.UUID
	Step        dto.PaymentStep
	Amount      decimal.Decimal
	PhoneNumber string
	Reference   string
	// processing guards the step's submit/confirm control while a gateway
	// call is in flight.
	processing bool
}

// Recorder drives the collect -> confirm -> success dues-payment flow. At
// most one session may be open per member at a time.
type Recorder struct {
	Config           *config.Config
	Gateway          momo.Gateway
	MemberRepository MemberRepository
	Validator        *validation.Validator
	Logger           *logger.Logger

	mu           sync.Mutex
	sessions     map[uuid.UUID]*session
	openByMember map[uuid.UUID]uuid.UUID
}

func New(cfg *config.Config, gateway momo.Gateway, memberRepo MemberRepository, v *validation.Validator, log *logger.Logger) *Recorder {
	return &Recorder{
		Config:           cfg,
		Gateway:          gateway,
		MemberRepository: memberRepo,
		Validator:        v,
		Logger:           log,
		sessions:         make(map[uuid.UUID]*session),
		openByMember:     make(map[uuid.UUID]uuid.UUID),
	}
}

// Start opens a payment session for a member with the draft defaulted to the
// monthly due.
func (r *Recorder) Start(ctx context.Context, memberID uuid.UUID) (*dto.PaymentSession, error) {
	if _, err := r.MemberRepository.Get(ctx, repository.MemberRepositoryFilter{ID: &memberID}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Message: "Member not found",
			}
		}
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, open := r.openByMember[memberID]; open {
		return nil, &svc.APIError{
			Status:  http.StatusConflict,
			Message: "A payment is already in progress for this member",
		}
	}

	s := &session{
		ID:       uuid.New(),
		MemberID: memberID,
		Step:     dto.PaymentStepCollecting,
		Amount:   r.Config.Dues.MonthlyAmount,
	}
	r.sessions[s.ID] = s
	r.openByMember[memberID] = s.ID

	return r.mapSession(s, nil), nil
}

// Submit validates the collection form and initiates the mobile-money
// charge. On gateway failure the session stays in Collecting and the caller
// may resubmit.
func (r *Recorder) Submit(ctx context.Context, sessionID uuid.UUID, input dto.PaymentDraft) (*dto.PaymentSession, error) {
	s, err := r.beginStep(sessionID, dto.PaymentStepCollecting)
	if err != nil {
		return nil, err
	}

	if fieldErrors := r.Validator.ValidatePayment(input); len(fieldErrors) > 0 {
		r.endStep(sessionID)
		return nil, &svc.APIError{
			Status:  http.StatusBadRequest,
			Message: "Input validation failed",
			Errors: []svc.FieldError{
				{Field: "phoneNumber", Message: fieldErrors["phoneNumber"]},
			},
		}
	}

	reference, gatewayErr := r.Gateway.Initiate(ctx, input.PhoneNumber, s.Amount)

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, sessionClosedError()
	}
	s.processing = false

	if gatewayErr != nil {
		r.Logger.Warn().Err(gatewayErr).Str("session_id", sessionID.String()).Msg("payment_initiate_failed")
		return nil, &svc.APIError{
			Status:  http.StatusBadGateway,
			Message: "Payment processing failed. Please try again.",
		}
	}

	s.PhoneNumber = input.PhoneNumber
	s.Reference = reference
	s.Step = dto.PaymentStepConfirming

	return r.mapSession(s, nil), nil
}

// Confirm settles the initiated charge and records the immutable payment
// against the member. On gateway failure the session stays in Confirming.
func (r *Recorder) Confirm(ctx context.Context, sessionID uuid.UUID) (*dto.PaymentSession, error) {
	s, err := r.beginStep(sessionID, dto.PaymentStepConfirming)
	if err != nil {
		return nil, err
	}

	gatewayErr := r.Gateway.Confirm(ctx, s.Reference)

	r.mu.Lock()
	s, ok := r.sessions[sessionID]
	if !ok {
		r.mu.Unlock()
		return nil, sessionClosedError()
	}
	s.processing = false

	if gatewayErr != nil {
		r.mu.Unlock()
		r.Logger.Warn().Err(gatewayErr).Str("session_id", sessionID.String()).Msg("payment_confirm_failed")
		return nil, &svc.APIError{
			Status:  http.StatusBadGateway,
			Message: "Could not confirm payment. Please try again.",
		}
	}

	payment := repository.Payment{
		ID:        uuid.New(),
		Date:      time.Now(),
		Amount:    s.Amount,
		Status:    string(dto.PaymentStatusPaid),
		Reference: s.Reference,
		Method:    paymentMethod,
	}
	memberID := s.MemberID
	s.Step = dto.PaymentStepSucceeded
	final := *s
	delete(r.sessions, sessionID)
	delete(r.openByMember, memberID)
	r.mu.Unlock()

	if _, err := r.MemberRepository.AppendPayment(ctx, memberID, payment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Message: "Member not found",
			}
		}
		return nil, err
	}

	r.Logger.Info().
		Str("member_id", memberID.String()).
		Str("reference", payment.Reference).
		Str("amount", payment.Amount.String()).
		Msg("payment_recorded")

	return r.mapSession(&final, &payment), nil
}

// Cancel closes an open session without recording anything.
func (r *Recorder) Cancel(ctx context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return &svc.APIError{
			Status:  http.StatusNotFound,
			Message: "Payment session not found",
		}
	}

	delete(r.sessions, sessionID)
	delete(r.openByMember, s.MemberID)
	return nil
}

// Get reports the current state of an open session.
func (r *Recorder) Get(ctx context.Context, sessionID uuid.UUID) (*dto.PaymentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, &svc.APIError{
			Status:  http.StatusNotFound,
			Message: "Payment session not found",
		}
	}
	return r.mapSession(s, nil), nil
}

// MemberForSession resolves which member an open session belongs to.
func (r *Recorder) MemberForSession(sessionID uuid.UUID) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return uuid.Nil, false
	}
	return s.MemberID, true
}

// beginStep checks the session is on the expected step and marks it busy for
// the duration of the gateway call.
func (r *Recorder) beginStep(sessionID uuid.UUID, expected dto.PaymentStep) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, &svc.APIError{
			Status:  http.StatusNotFound,
			Message: "Payment session not found",
		}
	}
	if s.processing {
		return nil, &svc.APIError{
			Status:  http.StatusConflict,
			Message: "Payment is already being processed",
		}
	}
	if s.Step != expected {
		return nil, &svc.APIError{
			Status:  http.StatusConflict,
			Message: "Payment session is not in the expected step",
		}
	}

	s.processing = true
	snapshot := *s
	return &snapshot, nil
}

func (r *Recorder) endStep(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		s.processing = false
	}
}

func sessionClosedError() *svc.APIError {
	return &svc.APIError{
		Status:  http.StatusConflict,
		Message: "Payment session was closed",
	}
}

func (r *Recorder) mapSession(s *session, payment *repository.Payment) *dto.PaymentSession {
	out := &dto.PaymentSession{
		ID:          s.ID,
		MemberID:    s.MemberID,
		Step:        s.Step,
		Amount:      s.Amount,
		PhoneNumber: s.PhoneNumber,
		Method:      paymentMethod,
		Reference:   s.Reference,
	}
	if payment != nil {
		out.Payment = &dto.Payment{
			ID:        payment.ID,
			Date:      payment.Date,
			Amount:    payment.Amount,
			Status:    dto.PaymentStatus(payment.Status),
			Reference: payment.Reference,
			Method:    payment.Method,
		}
	}
	return out
}
