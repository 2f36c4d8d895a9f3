package memberships

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kenyagreatparty/kgp-backend/internal/dto"
	"github.com/kenyagreatparty/kgp-backend/internal/repository"
	svc "github.com/kenyagreatparty/kgp-backend/internal/services"
	"github.com/kenyagreatparty/kgp-backend/internal/services/actors"
)

// Review moves a pending application to approved or rejected. Approval draws
// the next membership number from the atomic sequence and stamps the expiry
// date; both outcomes stamp reviewed_by and reviewed_at together. A record
// that has already left pending is immutable: re-review fails with an
// invalid-transition error rather than overriding the earlier decision.
func (m *Membership) Review(ctx context.Context, id uuid.UUID, input dto.ReviewApplicationInput) (*dto.MembershipApplication, error) {
	actor, ok := actors.FromContext(ctx)
	if !ok {
		return nil, &svc.APIError{
			Status:  http.StatusUnauthorized,
			Code:    svc.CodeDependencyFailure,
			Message: "No reviewer identity on request",
		}
	}

	application, err := m.ApplicationRepo.Get(ctx, repository.MembershipRepositoryFilter{
		ID: &id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &svc.APIError{
				Status:  http.StatusNotFound,
				Code:    svc.CodeNotFound,
				Message: "Membership application not found",
			}
		}
		return nil, err
	}

	if application.Status != string(dto.ApplicationStatusPending) {
		return nil, &svc.APIError{
			Status:  http.StatusConflict,
			Code:    svc.CodeInvalidTransition,
			Message: fmt.Sprintf("Application has already been %s", application.Status),
		}
	}

	fromStatus := application.Status

	now := time.Now()
	application.Status = input.Decision
	application.ReviewNotes = repository.ToNullString(optional(input.Notes))
	application.ReviewedBy = repository.ToNullUUID(actor.ID)
	application.ReviewedAt = sql.NullTime{Time: now, Valid: true}

	tx, err := m.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if input.Decision == string(dto.ApplicationStatusApproved) && !application.MembershipNumber.Valid {
		next, err := m.SequenceRepo.Next(ctx, repository.SequenceMembershipNumber, tx)
		if err != nil {
			return nil, err
		}

		number := fmt.Sprintf("%s%06d", m.Config.Membership.NumberPrefix, next)
		expiry := now.AddDate(0, 0, m.Config.Membership.ValidityDays)

		application.MembershipNumber = sql.NullString{String: number, Valid: true}
		application.ExpiryDate = sql.NullTime{Time: expiry, Valid: true}
	}

	// The status predicate on the update closes the window between the
	// pending check above and the write: a review racing on a stale read
	// matches zero rows instead of overwriting the decided record.
	updated, err := m.ApplicationRepo.Update(ctx, application, fromStatus, tx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &svc.APIError{
				Status:  http.StatusConflict,
				Code:    svc.CodeInvalidTransition,
				Message: "Application has already been reviewed",
			}
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// The review outcome is committed; delivery of the decision email is
	// best-effort and must not affect the response.
	reviewed := m.mapRepositoryToDTO(updated)
	go m.notifyReviewed(context.Background(), reviewed)

	return reviewed, nil
}
