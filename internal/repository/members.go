package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kwadwoankamah/duesflow/internal/constants"
)

// MemberRepository is the in-memory member directory. Records live for the
// lifetime of the process; insertion order is preserved and is the order the
// directory lists members in.
type MemberRepository struct {
	mu      sync.RWMutex
	ordered []*Member
	byID    map[uuid.UUID]*Member
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{
		byID: make(map[uuid.UUID]*Member),
	}
}

type MemberRepositoryFilter struct {
	ID    *uuid.UUID
	Email *string
	Phone *string
}

// MemberListFilter drives the directory's filtered view. Region may be the
// "All Regions" sentinel or empty, both of which disable the region
// constraint. Search is a case-insensitive substring match on name, email
// and phone.
type MemberListFilter struct {
	Region string
	Search string
}

func (mr *MemberRepository) match(member *Member, filter MemberRepositoryFilter) bool {
	if member.DeletedAt != nil {
		return false
	}
	if filter.ID != nil && member.ID != *filter.ID {
		return false
	}
	if filter.Email != nil && !strings.EqualFold(member.Email, *filter.Email) {
		return false
	}
	if filter.Phone != nil && member.Phone != *filter.Phone {
		return false
	}
	return true
}

func (mr *MemberRepository) Get(ctx context.Context, filter MemberRepositoryFilter) (*Member, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	for _, member := range mr.ordered {
		if mr.match(member, filter) {
			return cloneMember(member), nil
		}
	}
	return nil, ErrNotFound
}

func (mr *MemberRepository) Exists(ctx context.Context, filter MemberRepositoryFilter) (bool, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	for _, member := range mr.ordered {
		if mr.match(member, filter) {
			return true, nil
		}
	}
	return false, nil
}

func (mr *MemberRepository) Create(ctx context.Context, member *Member) (*Member, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	stored := cloneMember(member)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	if stored.MemberSince.IsZero() {
		stored.MemberSince = stored.CreatedAt
	}
	if stored.Payments == nil {
		stored.Payments = []Payment{}
	}

	mr.ordered = append(mr.ordered, stored)
	mr.byID[stored.ID] = stored

	return cloneMember(stored), nil
}

// Update replaces the profile fields of the stored record for member.ID,
// keeping its position in the directory. Callers read the current record,
// merge their patch, and write it back. Payment history and the dues flag are
// owned by AppendPayment and ResetDues; they are carried over from the stored
// record under the lock so a payment recorded between the caller's read and
// this write-back is never lost.
func (mr *MemberRepository) Update(ctx context.Context, member *Member) (*Member, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	stored, ok := mr.byID[member.ID]
	if !ok || stored.DeletedAt != nil {
		return nil, ErrNotFound
	}

	updated := cloneMember(member)
	updated.CreatedAt = stored.CreatedAt
	updated.Payments = stored.Payments
	updated.DuesPaid = stored.DuesPaid
	*stored = *updated

	return cloneMember(stored), nil
}

// AppendPayment records an immutable payment against a member and marks their
// dues paid, atomically under the directory lock.
func (mr *MemberRepository) AppendPayment(ctx context.Context, memberID uuid.UUID, payment Payment) (*Member, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	stored, ok := mr.byID[memberID]
	if !ok || stored.DeletedAt != nil {
		return nil, ErrNotFound
	}

	stored.Payments = append(stored.Payments, payment)
	stored.DuesPaid = true

	return cloneMember(stored), nil
}

// List returns the filtered view of the directory in insertion order. The
// view is recomputed on every call; nothing is cached.
func (mr *MemberRepository) List(ctx context.Context, filter MemberListFilter) ([]*Member, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	regionConstrained := filter.Region != "" && filter.Region != constants.AllRegions

	var members []*Member
	for _, member := range mr.ordered {
		if member.DeletedAt != nil {
			continue
		}
		if regionConstrained && member.Region != filter.Region {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(member.Name), search) &&
			!strings.Contains(strings.ToLower(member.Email), search) &&
			!strings.Contains(strings.ToLower(member.Phone), search) {
			continue
		}
		members = append(members, cloneMember(member))
	}
	return members, nil
}

// Delete soft-deletes a member; the record keeps its id but drops out of
// every read path.
func (mr *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	stored, ok := mr.byID[id]
	if !ok || stored.DeletedAt != nil {
		return ErrNotFound
	}

	now := time.Now()
	stored.DeletedAt = &now
	return nil
}

// ResetDues clears the dues flag on every member at the start of a new
// billing period.
func (mr *MemberRepository) ResetDues(ctx context.Context) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	for _, member := range mr.ordered {
		member.DuesPaid = false
	}
	return nil
}

func cloneMember(member *Member) *Member {
	clone := *member
	clone.Payments = make([]Payment, len(member.Payments))
	copy(clone.Payments, member.Payments)
	if member.ProfilePictureID != nil {
		id := *member.ProfilePictureID
		clone.ProfilePictureID = &id
	}
	if member.DeletedAt != nil {
		t := *member.DeletedAt
		clone.DeletedAt = &t
	}
	return &clone
}
