package memberships

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/kenyagreatparty/kgp-backend/internal/dto"
	"github.com/kenyagreatparty/kgp-backend/internal/repository"
	svc "github.com/kenyagreatparty/kgp-backend/internal/services"
)

// CheckStatus is the public lookup by national ID and phone. The returned
// status is derived at read time: stored lifecycle state first, then an
// expiry comparison for approved memberships.
func (m *Membership) CheckStatus(ctx context.Context, input dto.CheckStatusInput) (*dto.MemberSummary, error) {
	idNumber := strings.TrimSpace(input.IDNumber)
	phone := strings.TrimSpace(input.Phone)

	application, err := m.ApplicationRepo.Get(ctx, repository.MembershipRepositoryFilter{
		IDNumber: &idNumber,
		Phone:    &phone,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Code:    svc.CodeNotFound,
				Message: "No membership found with the provided details",
			}
		}
		return nil, err
	}

	summary := &dto.MemberSummary{
		Name:         application.FirstName + " " + application.LastName,
		MembershipID: application.MembershipNumber.String,
		JoinDate:     application.CreatedAt,
		County:       application.County,
		Constituency: application.Constituency.String,
		Ward:         application.Ward.String,
		Status:       deriveStatus(application, time.Now()),
	}
	if application.ExpiryDate.Valid {
		expiry := application.ExpiryDate.Time
		summary.ExpiryDate = &expiry
	}
	if application.LastPaymentAt.Valid {
		lastPayment := application.LastPaymentAt.Time
		summary.LastPayment = &lastPayment
	} else {
		joined := application.CreatedAt
		summary.LastPayment = &joined
	}

	return summary, nil
}

// CheckStatusByEmail is the lighter lookup backing the "where is my
// application" form.
func (m *Membership) CheckStatusByEmail(ctx context.Context, emailAddr string) (*dto.ApplicationStatusSummary, error) {
	application, err := m.ApplicationRepo.Get(ctx, repository.MembershipRepositoryFilter{
		Email: &emailAddr,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Code:    svc.CodeNotFound,
				Message: "No application found with this email address",
			}
		}
		return nil, err
	}

	summary := &dto.ApplicationStatusSummary{
		FirstName:        application.FirstName,
		LastName:         application.LastName,
		Status:           dto.ApplicationStatus(application.Status),
		MembershipNumber: application.MembershipNumber.String,
	}
	if application.ReviewedAt.Valid {
		reviewedAt := application.ReviewedAt.Time
		summary.ReviewedAt = &reviewedAt
	}

	return summary, nil
}

// Renew extends an approved membership by the configured validity window and
// records the payment reference. Payment authenticity is not verified here;
// the payment collaborator is upstream of this call.
func (m *Membership) Renew(ctx context.Context, input dto.RenewMembershipInput) (*dto.RenewalResult, error) {
	application, err := m.ApplicationRepo.Get(ctx, repository.MembershipRepositoryFilter{
		MembershipNumber: &input.MembershipNumber,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Code:    svc.CodeNotFound,
				Message: "No membership found with the provided membership number",
			}
		}
		return nil, err
	}

	if application.Status != string(dto.ApplicationStatusApproved) {
		return nil, &svc.APIError{
			Status:  http.StatusConflict,
			Code:    svc.CodeInvalidTransition,
			Message: "Only approved memberships can be renewed",
		}
	}

	now := time.Now()
	newExpiry := now.AddDate(0, 0, m.Config.Membership.ValidityDays)
	reference := fmt.Sprintf("TXN-%s", lo.RandomString(12, lo.AlphanumericCharset))

	tx, err := m.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := m.RenewalRepo.Create(ctx, &repository.Renewal{
		MembershipID:  application.ID,
		Reference:     reference,
		PaymentMethod: input.PaymentMethod,
		Amount:        input.Amount,
		NewExpiryDate: newExpiry,
	}, tx); err != nil {
		return nil, err
	}

	application.ExpiryDate = sql.NullTime{Time: newExpiry, Valid: true}
	application.LastPaymentAt = sql.NullTime{Time: now, Valid: true}
	if _, err := m.ApplicationRepo.Update(ctx, application, string(dto.ApplicationStatusApproved), tx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &svc.APIError{
				Status:  http.StatusConflict,
				Code:    svc.CodeInvalidTransition,
				Message: "Only approved memberships can be renewed",
			}
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &dto.RenewalResult{
		TransactionID: reference,
		NewExpiryDate: newExpiry,
	}, nil
}

// Resign records a resignation request and returns an acknowledgement
// reference. The request carries no proven identity, so the membership
// record itself is left untouched for an admin to act on.
func (m *Membership) Resign(ctx context.Context, input dto.ResignInput) (*dto.ResignationResult, error) {
	reference := fmt.Sprintf("RES-%s", lo.RandomString(12, lo.AlphanumericCharset))

	if _, err := m.ResignationRepo.Create(ctx, &repository.Resignation{
		Reference: reference,
		Reason:    input.Reason,
		Details:   repository.ToNullString(optional(input.Details)),
	}, nil); err != nil {
		return nil, err
	}

	return &dto.ResignationResult{ResignationID: reference}, nil
}

func deriveStatus(application *repository.MembershipApplication, now time.Time) dto.MemberStatus {
	switch application.Status {
	case string(dto.ApplicationStatusPending):
		return dto.MemberStatusPending
	case string(dto.ApplicationStatusRejected):
		return dto.MemberStatusRejected
	case string(dto.ApplicationStatusSuspended):
		return dto.MemberStatusSuspended
	}

	if application.ExpiryDate.Valid && application.ExpiryDate.Time.Before(now) {
		return dto.MemberStatusExpired
	}
	return dto.MemberStatusActive
}
