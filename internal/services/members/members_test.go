package members

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwadwoankamah/duesflow/internal/config"
	"github.com/kwadwoankamah/duesflow/internal/dto"
	"github.com/kwadwoankamah/duesflow/internal/repository"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
	"github.com/kwadwoankamah/duesflow/internal/validation"
	"github.com/kwadwoankamah/duesflow/pkg/logger"
)

type fakeImageStore struct {
	sizes map[uuid.UUID]int64
}

func (f *fakeImageStore) Size(id uuid.UUID) int64 {
	return f.sizes[id]
}

func newService(t *testing.T) (*Member, *fakeImageStore) {
	t.Helper()

	v, err := validation.New()
	require.NoError(t, err)

	cfg := &config.Config{}
	images := &fakeImageStore{sizes: map[uuid.UUID]int64{}}
	return New(cfg, repository.NewMemberRepository(), v, images, logger.New(cfg)), images
}

func draft(name, email, phone, region string) dto.MemberDraft {
	return dto.MemberDraft{
		Name:   name,
		Email:  email,
		Phone:  phone,
		Region: region,
	}
}

func apiStatus(t *testing.T, err error) *svc.APIError {
	t.Helper()
	var apiErr *svc.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr
}

func TestMemberService_Create(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	member, err := service.Create(ctx, draft("Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, member.ID)
	assert.Equal(t, dto.MemberStatusActive, member.Status)
	assert.False(t, member.DuesPaid)
	assert.Empty(t, member.Payments)
	assert.False(t, member.MemberSince.IsZero())
}

func TestMemberService_CreateValidation(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Create(context.Background(), draft("", "bad-email", "", "All Regions"))
	apiErr := apiStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	fields := lo.Map(apiErr.Errors, func(fe svc.FieldError, _ int) string { return fe.Field })
	assert.ElementsMatch(t, []string{"name", "email", "phone", "region"}, fields)
}

func TestMemberService_CreateDuplicates(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, draft("Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra"))
	require.NoError(t, err)

	_, err = service.Create(ctx, draft("Someone Else", "kwame@example.com", "0249999999", "Volta"))
	apiErr := apiStatus(t, err)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Email already exists", apiErr.Message)

	_, err = service.Create(ctx, draft("Someone Else", "else@example.com", "0241111111", "Volta"))
	apiErr = apiStatus(t, err)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Phone number already exists", apiErr.Message)
}

func TestMemberService_CreateDistinctIDsForIdenticalLookingDrafts(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, draft("Ama Osei", "ama1@example.com", "0242222221", "Ashanti"))
	require.NoError(t, err)
	second, err := service.Create(ctx, draft("Ama Osei", "ama2@example.com", "0242222222", "Ashanti"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	members, err := service.List(ctx, dto.MemberFilters{})
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestMemberService_CreateRejectsOversizeProfilePicture(t *testing.T) {
	service, images := newService(t)

	pictureID := uuid.New()
	images.sizes[pictureID] = 6 * 1024 * 1024

	input := draft("Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra")
	input.ProfilePictureID = &pictureID

	_, err := service.Create(context.Background(), input)
	apiErr := apiStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "profilePicture", apiErr.Errors[0].Field)
}

func TestMemberService_UpdatePatch(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	member, err := service.Create(ctx, draft("Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra"))
	require.NoError(t, err)

	updated, err := service.Update(ctx, member.ID, dto.UpdateMemberInput{
		Occupation: lo.ToPtr("Teacher"),
		Region:     lo.ToPtr("Volta"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Teacher", updated.Occupation)
	assert.Equal(t, "Volta", updated.Region)
	// untouched fields survive the patch
	assert.Equal(t, "kwame@example.com", updated.Email)
	assert.Equal(t, "Kwame Mensah", updated.Name)
}

func TestMemberService_UpdateRecasingOwnEmailIsNotAConflict(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	member, err := service.Create(ctx, draft("Kofi Mensah", "kofi@example.com", "0245555555", "Eastern"))
	require.NoError(t, err)

	updated, err := service.Update(ctx, member.ID, dto.UpdateMemberInput{
		Email: lo.ToPtr("Kofi@Example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kofi@Example.com", updated.Email)

	// another member's email is still a conflict regardless of case
	_, err = service.Create(ctx, draft("Ama Osei", "ama@example.com", "0242222222", "Ashanti"))
	require.NoError(t, err)

	_, err = service.Update(ctx, member.ID, dto.UpdateMemberInput{
		Email: lo.ToPtr("AMA@example.com"),
	})
	apiErr := apiStatus(t, err)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Email already exists", apiErr.Message)
}

func TestMemberService_UpdateNotFound(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Update(context.Background(), uuid.New(), dto.UpdateMemberInput{
		Name: lo.ToPtr("Ghost"),
	})
	apiErr := apiStatus(t, err)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestMemberService_UpdateRejectsInvalidPatch(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	member, err := service.Create(ctx, draft("Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra"))
	require.NoError(t, err)

	_, err = service.Update(ctx, member.ID, dto.UpdateMemberInput{
		Region: lo.ToPtr("All Regions"),
	})
	apiErr := apiStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = service.Update(ctx, member.ID, dto.UpdateMemberInput{
		Status: lo.ToPtr("Suspended"),
	})
	apiErr = apiStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	// failed updates leave the member unchanged
	got, err := service.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Greater Accra", got.Region)
	assert.Equal(t, dto.MemberStatusActive, got.Status)
}

func TestMemberService_ListFiltered(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, draft("Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra"))
	require.NoError(t, err)
	_, err = service.Create(ctx, draft("Ama Osei", "ama@example.com", "0242222222", "Ashanti"))
	require.NoError(t, err)

	members, err := service.List(ctx, dto.MemberFilters{Region: "Ashanti", Search: "ama"})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ama Osei", members[0].Name)
}

func TestMemberService_Stats(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, draft("Kwame Mensah", "kwame@example.com", "0241111111", "Greater Accra"))
	require.NoError(t, err)
	_, err = service.Create(ctx, draft("Ama Osei", "ama@example.com", "0242222222", "Ashanti"))
	require.NoError(t, err)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMembers)
	assert.Equal(t, 0, stats.DuesPaidCount)
	assert.Equal(t, 2, stats.ActiveRegions)
	assert.True(t, stats.CollectedThisMonth.IsZero())
}

func TestMemberService_Delete(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	member, err := service.Create(ctx, draft("Kwesi Appiah", "kwesi@example.com", "0243333333", "Northern"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, member.ID))

	_, err = service.Get(ctx, member.ID)
	apiErr := apiStatus(t, err)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
