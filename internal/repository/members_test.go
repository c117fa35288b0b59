package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *MemberRepository {
	t.Helper()
	return NewMemberRepository()
}

func mustCreate(t *testing.T, repo *MemberRepository, name, email, phone, region string) *Member {
	t.Helper()
	member, err := repo.Create(context.Background(), &Member{
		Name:   name,
		Email:  email,
		Phone:  phone,
		Region: region,
		Status: "Active",
	})
	require.NoError(t, err)
	return member
}

func TestMemberRepository_CreateAssignsDistinctIDs(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "Kwame Mensah", "kwame@example.com", "0241234567", "Greater Accra")
	second := mustCreate(t, repo, "Kwame Mensah", "kwame2@example.com", "0241234568", "Greater Accra")

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	members, err := repo.List(ctx, MemberListFilter{})
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestMemberRepository_ListPreservesInsertionOrder(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	names := []string{"Kwame Mensah", "Ama Osei", "Kwesi Appiah", "Akosua Boateng"}
	for i, name := range names {
		mustCreate(t, repo, name, name+"@example.com", "024123456"+string(rune('0'+i)), "Volta")
	}

	members, err := repo.List(ctx, MemberListFilter{Region: "All Regions"})
	require.NoError(t, err)

	got := lo.Map(members, func(m *Member, _ int) string { return m.Name })
	assert.Equal(t, names, got)
}

func TestMemberRepository_FilteredView(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	mustCreate(t, repo, "Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra")
	mustCreate(t, repo, "Ama Osei", "ama@example.com", "0242222222", "Ashanti")

	tests := []struct {
		name   string
		filter MemberListFilter
		want   []string
	}{
		{
			name:   "all regions empty search returns everything",
			filter: MemberListFilter{Region: "All Regions"},
			want:   []string{"Kwame Mensah", "Ama Osei"},
		},
		{
			name:   "region and search combine",
			filter: MemberListFilter{Region: "Ashanti", Search: "ama"},
			want:   []string{"Ama Osei"},
		},
		{
			name:   "search is case-insensitive",
			filter: MemberListFilter{Region: "All Regions", Search: "KWAME"},
			want:   []string{"Kwame Mensah"},
		},
		{
			name:   "search matches phone",
			filter: MemberListFilter{Search: "0242222"},
			want:   []string{"Ama Osei"},
		},
		{
			name:   "search matches email",
			filter: MemberListFilter{Search: "kwame@"},
			want:   []string{"Kwame Mensah"},
		},
		{
			name:   "no match",
			filter: MemberListFilter{Region: "Ashanti", Search: "kwame"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			got := lo.Map(members, func(m *Member, _ int) string { return m.Name })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemberRepository_UpdateUnknownID(t *testing.T) {
	repo := newTestDirectory(t)

	_, err := repo.Update(context.Background(), &Member{ID: uuid.New(), Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemberRepository_UpdateKeepsPosition(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra")
	mustCreate(t, repo, "Ama Osei", "ama@example.com", "0242222222", "Ashanti")

	first.Occupation = "Headmaster"
	updated, err := repo.Update(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Headmaster", updated.Occupation)

	members, err := repo.List(ctx, MemberListFilter{})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, first.ID, members[0].ID)
}

func TestMemberRepository_UpdateKeepsPaymentsRecordedAfterRead(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	member := mustCreate(t, repo, "Ama Osei", "ama@example.com", "0242222222", "Ashanti")

	// A profile patch reads the record, then a payment lands before the
	// write-back.
	snapshot, err := repo.Get(ctx, MemberRepositoryFilter{ID: &member.ID})
	require.NoError(t, err)

	_, err = repo.AppendPayment(ctx, member.ID, Payment{
		ID:        uuid.New(),
		Amount:    decimal.NewFromFloat(50.00),
		Status:    "Paid",
		Reference: "MOM12345678",
		Method:    "MTN Mobile Money",
	})
	require.NoError(t, err)

	snapshot.Occupation = "Midwife"
	after, err := repo.Update(ctx, snapshot)
	require.NoError(t, err)

	assert.Equal(t, "Midwife", after.Occupation)
	require.Len(t, after.Payments, 1)
	assert.True(t, after.DuesPaid)
}

func TestMemberRepository_AppendPayment(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	member := mustCreate(t, repo, "Ama Osei", "ama@example.com", "0242222222", "Ashanti")
	require.False(t, member.DuesPaid)

	payment := Payment{
		ID:        uuid.New(),
		Amount:    decimal.NewFromFloat(50.00),
		Status:    "Paid",
		Reference: "MOM12345678",
		Method:    "MTN Mobile Money",
	}

	updated, err := repo.AppendPayment(ctx, member.ID, payment)
	require.NoError(t, err)
	assert.True(t, updated.DuesPaid)
	require.Len(t, updated.Payments, 1)
	assert.Equal(t, payment.Reference, updated.Payments[0].Reference)

	_, err = repo.AppendPayment(ctx, uuid.New(), payment)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemberRepository_DeleteHidesMember(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	member := mustCreate(t, repo, "Kwesi Appiah", "kwesi@example.com", "0243333333", "Northern")

	require.NoError(t, repo.Delete(ctx, member.ID))

	_, err := repo.Get(ctx, MemberRepositoryFilter{ID: &member.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	members, err := repo.List(ctx, MemberListFilter{})
	require.NoError(t, err)
	assert.Empty(t, members)

	assert.ErrorIs(t, repo.Delete(ctx, member.ID), ErrNotFound)
}

func TestMemberRepository_ResetDues(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	member := mustCreate(t, repo, "Akosua Boateng", "akosua@example.com", "0244444444", "Volta")
	_, err := repo.AppendPayment(ctx, member.ID, Payment{ID: uuid.New(), Status: "Paid"})
	require.NoError(t, err)

	require.NoError(t, repo.ResetDues(ctx))

	got, err := repo.Get(ctx, MemberRepositoryFilter{ID: &member.ID})
	require.NoError(t, err)
	assert.False(t, got.DuesPaid)
	// payment history survives the rollover
	assert.Len(t, got.Payments, 1)
}

func TestMemberRepository_GetByEmailAndPhone(t *testing.T) {
	repo := newTestDirectory(t)
	ctx := context.Background()

	mustCreate(t, repo, "Kofi Mensah", "kofi@example.com", "0245555555", "Eastern")

	email := "KOFI@example.com"
	byEmail, err := repo.Get(ctx, MemberRepositoryFilter{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Kofi Mensah", byEmail.Name)

	phone := "0245555555"
	exists, err := repo.Exists(ctx, MemberRepositoryFilter{Phone: &phone})
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSeedLoadsFixtures(t *testing.T) {
	memberRepo := NewMemberRepository()
	userRepo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, Seed(ctx, memberRepo, userRepo))

	members, err := memberRepo.List(ctx, MemberListFilter{})
	require.NoError(t, err)
	assert.Len(t, members, 5)
	assert.Equal(t, "Kwame Mensah", members[0].Name)
	require.Len(t, members[0].Payments, 3)
	assert.True(t, members[0].DuesPaid)
	for _, payment := range members[0].Payments {
		assert.Equal(t, "Mobile Money", payment.Method)
	}

	email := "admin@example.com"
	admin, err := userRepo.Get(ctx, UserRepositoryFilter{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
	assert.NotEmpty(t, admin.PasswordHash)
}
