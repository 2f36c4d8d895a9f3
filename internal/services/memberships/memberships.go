package memberships

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kenyagreatparty/kgp-backend/internal/config"
	"github.com/kenyagreatparty/kgp-backend/internal/dto"
	"github.com/kenyagreatparty/kgp-backend/internal/repository"
	svc "github.com/kenyagreatparty/kgp-backend/internal/services"
	emailpkg "github.com/kenyagreatparty/kgp-backend/pkg/email"
	"github.com/kenyagreatparty/kgp-backend/pkg/logger"
)

var (
	_ ApplicationRepository = (*repository.MembershipRepository)(nil)
	_ SequenceRepository    = (*repository.SequenceRepository)(nil)
	_ RenewalRepository     = (*repository.RenewalRepository)(nil)
	_ ResignationRepository = (*repository.ResignationRepository)(nil)
)

type ApplicationRepository interface {
	Get(ctx context.Context, filter repository.MembershipRepositoryFilter) (*repository.MembershipApplication, error)
	Exists(ctx context.Context, filter repository.MembershipRepositoryFilter) (bool, error)
	List(ctx context.Context, filter repository.MembershipRepositoryFilter, opts repository.QueryOptions) (*repository.ListResult[repository.MembershipApplication], error)
	Create(ctx context.Context, application *repository.MembershipApplication, tx *sqlx.Tx) (*repository.MembershipApplication, error)
	Update(ctx context.Context, application *repository.MembershipApplication, fromStatus string, tx *sqlx.Tx) (*repository.MembershipApplication, error)
	Count(ctx context.Context, filter repository.MembershipRepositoryFilter) (int64, error)
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
	CountByCounty(ctx context.Context, limit int) ([]repository.CountyCount, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type SequenceRepository interface {
	Next(ctx context.Context, name string, tx *sqlx.Tx) (int64, error)
	Current(ctx context.Context, name string) (int64, error)
}

type RenewalRepository interface {
	Create(ctx context.Context, renewal *repository.Renewal, tx *sqlx.Tx) (*repository.Renewal, error)
}

type ResignationRepository interface {
	Create(ctx context.Context, resignation *repository.Resignation, tx *sqlx.Tx) (*repository.Resignation, error)
}

type EmailSender interface {
	SendTemplate(ctx context.Context, to, subject string, kind emailpkg.EmailTemplateType, data any) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type Membership struct {
	DB              *sqlx.DB
	Config          *config.Config
	Logger          *logger.Logger
	ApplicationRepo ApplicationRepository
	SequenceRepo    SequenceRepository
	RenewalRepo     RenewalRepository
	ResignationRepo ResignationRepository
	Email           EmailSender
	Cache           Cache
}

func New(
	db *sqlx.DB,
	cfg *config.Config,
	log *logger.Logger,
	applicationRepo ApplicationRepository,
	sequenceRepo SequenceRepository,
	renewalRepo RenewalRepository,
	resignationRepo ResignationRepository,
	email EmailSender,
	cache Cache,
) *Membership {
	return &Membership{
		DB:              db,
		Config:          cfg,
		Logger:          log,
		ApplicationRepo: applicationRepo,
		SequenceRepo:    sequenceRepo,
		RenewalRepo:     renewalRepo,
		ResignationRepo: resignationRepo,
		Email:           email,
		Cache:           cache,
	}
}

// Submit runs the public application intake: the uniqueness guard over email
// and national ID, then creation of a pending record. The unique indexes on
// both columns close the window between the check and the insert.
func (m *Membership) Submit(ctx context.Context, input dto.SubmitApplicationInput) (*dto.MembershipApplication, error) {
	emailExists, err := m.ApplicationRepo.Exists(ctx, repository.MembershipRepositoryFilter{
		Email: &input.Email,
	})
	if err != nil {
		return nil, err
	}

	idNumberExists := false
	if !emailExists {
		idNumberExists, err = m.ApplicationRepo.Exists(ctx, repository.MembershipRepositoryFilter{
			IDNumber: &input.IDNumber,
		})
		if err != nil {
			return nil, err
		}
	}

	if emailExists || idNumberExists {
		return nil, &svc.APIError{
			Status:  http.StatusBadRequest,
			Code:    svc.CodeDuplicateApplication,
			Message: "An application with this email or ID number already exists",
		}
	}

	application, err := m.ApplicationRepo.Create(ctx, &repository.MembershipApplication{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		IDNumber:     input.IDNumber,
		County:       input.County,
		Constituency: repository.ToNullString(optional(input.Constituency)),
		Ward:         repository.ToNullString(optional(input.Ward)),
		Message:      repository.ToNullString(optional(input.Message)),
		Status:       string(dto.ApplicationStatusPending),
	}, nil)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &svc.APIError{
				Status:  http.StatusBadRequest,
				Code:    svc.CodeDuplicateApplication,
				Message: "An application with this email or ID number already exists",
			}
		}
		return nil, err
	}

	created := m.mapRepositoryToDTO(application)
	go m.notifySubmitted(context.Background(), created)

	return created, nil
}

func (m *Membership) Get(ctx context.Context, id uuid.UUID) (*dto.MembershipApplication, error) {
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

	return m.mapRepositoryToDTO(application), nil
}

func (m *Membership) List(ctx context.Context, filters dto.ApplicationFilters, page, limit int) (*dto.ApplicationsPage, error) {
	result, err := m.ApplicationRepo.List(ctx, repository.MembershipRepositoryFilter{
		Status: filters.Status,
		County: filters.County,
	}, repository.QueryOptions{Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	items := make([]dto.MembershipApplication, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, *m.mapRepositoryToDTO(item))
	}

	return &dto.ApplicationsPage{
		Items: items,
		Pagination: dto.Pagination{
			Current: result.Page,
			Pages:   result.Pages,
			Total:   result.Total,
		},
	}, nil
}

func (m *Membership) mapRepositoryToDTO(application *repository.MembershipApplication) *dto.MembershipApplication {
	out := &dto.MembershipApplication{
		ID:               application.ID,
		FirstName:        application.FirstName,
		LastName:         application.LastName,
		Email:            application.Email,
		Phone:            application.Phone,
		IDNumber:         application.IDNumber,
		County:           application.County,
		Constituency:     application.Constituency.String,
		Ward:             application.Ward.String,
		Message:          application.Message.String,
		Status:           dto.ApplicationStatus(application.Status),
		ReviewNotes:      application.ReviewNotes.String,
		MembershipNumber: application.MembershipNumber.String,
		CreatedAt:        application.CreatedAt,
		UpdatedAt:        application.UpdatedAt,
	}
	if application.ReviewedBy.Valid {
		reviewedBy := application.ReviewedBy.UUID
		out.ReviewedBy = &reviewedBy
	}
	if application.ReviewedAt.Valid {
		reviewedAt := application.ReviewedAt.Time
		out.ReviewedAt = &reviewedAt
	}
	if application.ExpiryDate.Valid {
		expiry := application.ExpiryDate.Time
		out.ExpiryDate = &expiry
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
