package memberships

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenyagreatparty/kgp-backend/internal/dto"
	"github.com/kenyagreatparty/kgp-backend/internal/repository"
	svc "github.com/kenyagreatparty/kgp-backend/internal/services"
)

func approvedApplication(id uuid.UUID, number string, expiry time.Time) *repository.MembershipApplication {
	application := pendingApplication(id)
	application.Status = string(dto.ApplicationStatusApproved)
	application.MembershipNumber = sql.NullString{String: number, Valid: true}
	application.ExpiryDate = sql.NullTime{Time: expiry, Valid: true}
	return application
}

func TestCheckStatusTrimsLookupFields(t *testing.T) {
	f := newServiceFixture(t)

	f.applications.getFn = func(filter repository.MembershipRepositoryFilter) (*repository.MembershipApplication, error) {
		require.NotNil(t, filter.IDNumber)
		require.NotNil(t, filter.Phone)
		assert.Equal(t, "12345678", *filter.IDNumber)
		assert.Equal(t, "+254712345678", *filter.Phone)
		return approvedApplication(uuid.New(), "KGP000007", time.Now().AddDate(0, 6, 0)), nil
	}

	summary, err := f.service.CheckStatus(context.Background(), dto.CheckStatusInput{
		IDNumber: "  12345678  ",
		Phone:    " +254712345678 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina Odhiambo", summary.Name)
	assert.Equal(t, "KGP000007", summary.MembershipID)
	assert.Equal(t, dto.MemberStatusActive, summary.Status)
}

func TestCheckStatusFallsBackToJoinDateForLastPayment(t *testing.T) {
	f := newServiceFixture(t)

	application := approvedApplication(uuid.New(), "KGP000007", time.Now().AddDate(0, 6, 0))
	f.applications.getFn = func(filter repository.MembershipRepositoryFilter) (*repository.MembershipApplication, error) {
		return application, nil
	}

	summary, err := f.service.CheckStatus(context.Background(), dto.CheckStatusInput{
		IDNumber: "12345678",
		Phone:    "+254712345678",
	})
	require.NoError(t, err)
	require.NotNil(t, summary.LastPayment)
	assert.Equal(t, application.CreatedAt, *summary.LastPayment)
}

func TestCheckStatusNotFound(t *testing.T) {
	f := newServiceFixture(t)

	f.applications.getFn = func(filter repository.MembershipRepositoryFilter) (*repository.MembershipApplication, error) {
		return nil, sql.ErrNoRows
	}

	_, err := f.service.CheckStatus(context.Background(), dto.CheckStatusInput{
		IDNumber: "12345678",
		Phone:    "+254712345678",
	})

	var apiErr *svc.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestCheckStatusByEmail(t *testing.T) {
	f := newServiceFixture(t)

	application := pendingApplication(uuid.New())
	f.applications.getFn = func(filter repository.MembershipRepositoryFilter) (*repository.MembershipApplication, error) {
		require.NotNil(t, filter.Email)
		assert.Equal(t, "amina@example.com", *filter.Email)
		return application, nil
	}

	summary, err := f.service.CheckStatusByEmail(context.Background(), "amina@example.com")
	require.NoError(t, err)
	assert.Equal(t, dto.ApplicationStatusPending, summary.Status)
	assert.Empty(t, summary.MembershipNumber)
	assert.Nil(t, summary.ReviewedAt)
}

func TestDeriveStatus(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		status string
		expiry sql.NullTime
		want   dto.MemberStatus
	}{
		{name: "pending stays pending", status: "pending", want: dto.MemberStatusPending},
		{name: "rejected stays rejected", status: "rejected", want: dto.MemberStatusRejected},
		{name: "suspended stays suspended", status: "suspended", want: dto.MemberStatusSuspended},
		{
			name:   "approved with future expiry is active",
			status: "approved",
			expiry: sql.NullTime{Time: now.AddDate(0, 1, 0), Valid: true},
			want:   dto.MemberStatusActive,
		},
		{
			name:   "approved past expiry is expired",
			status: "approved",
			expiry: sql.NullTime{Time: now.AddDate(0, -1, 0), Valid: true},
			want:   dto.MemberStatusExpired,
		},
		{
			name:   "approved without expiry is active",
			status: "approved",
			want:   dto.MemberStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			application := &repository.MembershipApplication{
				Status:     tt.status,
				ExpiryDate: tt.expiry,
			}
			assert.Equal(t, tt.want, deriveStatus(application, now))
		})
	}
}

func TestRenewExtendsExpiry(t *testing.T) {
	f := newServiceFixture(t)

	application := approvedApplication(uuid.New(), "KGP000007", time.Now().AddDate(0, 0, 10))
	f.applications.getFn = func(filter repository.MembershipRepositoryFilter) (*repository.MembershipApplication, error) {
		require.NotNil(t, filter.MembershipNumber)
		assert.Equal(t, "KGP000007", *filter.MembershipNumber)
		return application, nil
	}
	f.applications.updateFn = func(updated *repository.MembershipApplication, fromStatus string) (*repository.MembershipApplication, error) {
		assert.Equal(t, string(dto.ApplicationStatusApproved), fromStatus)
		assert.True(t, updated.LastPaymentAt.Valid)
		return updated, nil
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	result, err := f.service.Renew(context.Background(), dto.RenewMembershipInput{
		MembershipNumber: "KGP000007",
		PaymentMethod:    "mpesa",
		Amount:           200,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.TransactionID, "TXN-"))
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 365), result.NewExpiryDate, time.Minute)

	require.Len(t, f.renewals.created, 1)
	renewal := f.renewals.created[0]
	assert.Equal(t, application.ID, renewal.MembershipID)
	assert.Equal(t, "mpesa", renewal.PaymentMethod)
	assert.Equal(t, int64(200), renewal.Amount)
	assert.Equal(t, result.TransactionID, renewal.Reference)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRenewRequiresApprovedMembership(t *testing.T) {
	f := newServiceFixture(t)

	application := pendingApplication(uuid.New())
	f.applications.getFn = func(filter repository.MembershipRepositoryFilter) (*repository.MembershipApplication, error) {
		return application, nil
	}

	_, err := f.service.Renew(context.Background(), dto.RenewMembershipInput{
		MembershipNumber: "KGP000007",
		PaymentMethod:    "mpesa",
		Amount:           200,
	})

	var apiErr *svc.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, svc.CodeInvalidTransition, apiErr.Code)
	assert.Empty(t, f.renewals.created)
}

func TestRenewUnknownMembershipNumber(t *testing.T) {
	f := newServiceFixture(t)

	f.applications.getFn = func(filter repository.MembershipRepositoryFilter) (*repository.MembershipApplication, error) {
		return nil, sql.ErrNoRows
	}

	_, err := f.service.Renew(context.Background(), dto.RenewMembershipInput{
		MembershipNumber: "KGP999999",
		PaymentMethod:    "mpesa",
		Amount:           200,
	})

	var apiErr *svc.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestResignRecordsRequest(t *testing.T) {
	f := newServiceFixture(t)

	result, err := f.service.Resign(context.Background(), dto.ResignInput{
		Reason:  "relocating",
		Details: "moving out of the country",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.ResignationID, "RES-"))

	require.Len(t, f.resignations.created, 1)
	resignation := f.resignations.created[0]
	assert.Equal(t, result.ResignationID, resignation.Reference)
	assert.Equal(t, "relocating", resignation.Reason)
	assert.Equal(t, "moving out of the country", resignation.Details.String)
}
