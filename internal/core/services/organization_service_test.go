package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/core/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrganizationService_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOrganizationRepository)
	svc := services.NewOrganizationService(repo, services.WithClock(fixedClock))

	company := gofakeit.Company()
	employees := 42
	repo.On("UpsertOrganization", ctx, mock.MatchedBy(func(o domain.Organization) bool {
		return o.UserID == "u1" && o.Name == company && o.Website == "https://acme.test" && *o.Employees == 42
	})).Return(&domain.Organization{OrganizationID: "o1", UserID: "u1", Name: company, UpdatedAt: testNow}, nil).Once()

	org, err := svc.UpsertOrganization(ctx, "u1", dto.UpsertOrganizationRequest{
		Name:      "  " + company + " ",
		Website:   "https://acme.test",
		Employees: &employees,
	})

	require.NoError(t, err)
	assert.Equal(t, company, org.Name)
	assert.Equal(t, testNow, org.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestOrganizationService_GetMissing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOrganizationRepository)
	repo.On("FindOrganizationByUserID", ctx, "u1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := services.NewOrganizationService(repo).GetOrganization(ctx, "u1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrganizationService_BlankName(t *testing.T) {
	repo := new(MockOrganizationRepository)

	_, err := services.NewOrganizationService(repo).UpsertOrganization(context.Background(), "u1", dto.UpsertOrganizationRequest{Name: "   "})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpsertOrganization", mock.Anything, mock.Anything)
}
