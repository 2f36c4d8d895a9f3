package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MembershipRepository struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type MembershipRepositoryFilter struct {
	ID               *uuid.UUID
	Email            *string
	IDNumber         *string
	Phone            *string
	MembershipNumber *string
	Status           *string
	County           *string
}

func (mq *MembershipRepository) buildQuery(filter MembershipRepositoryFilter, queryType QueryType) (string, []any, error) {
	var builder sq.SelectBuilder
	switch queryType {
	case QueryTypeSelect:
		builder = mq.psql.Select("*").From("membership_applications")
	case QueryTypeCount:
		builder = mq.psql.Select("COUNT(*)").From("membership_applications")
	}

	// Only get non-deleted applications
	builder = builder.Where("deleted_at IS NULL")

	if filter.ID != nil {
		builder = builder.Where(sq.Eq{"id": *filter.ID})
	}
	if filter.Email != nil {
		builder = builder.Where(sq.Eq{"email": *filter.Email})
	}
	if filter.IDNumber != nil {
		builder = builder.Where(sq.Eq{"id_number": *filter.IDNumber})
	}
	if filter.Phone != nil {
		builder = builder.Where(sq.Eq{"phone": *filter.Phone})
	}
	if filter.MembershipNumber != nil {
		builder = builder.Where(sq.Eq{"membership_number": *filter.MembershipNumber})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.County != nil {
		builder = builder.Where(sq.Eq{"county": *filter.County})
	}

	return builder.ToSql()
}

func (mq *MembershipRepository) Get(ctx context.Context, filter MembershipRepositoryFilter) (*MembershipApplication, error) {
	query, args, err := mq.buildQuery(filter, QueryTypeSelect)
	if err != nil {
		return nil, err
	}

	var application MembershipApplication
	if err := mq.db.GetContext(ctx, &application, query, args...); err != nil {
		return nil, err
	}
	return &application, nil
}

func (mq *MembershipRepository) Exists(ctx context.Context, filter MembershipRepositoryFilter) (bool, error) {
	query, args, err := mq.buildQuery(filter, QueryTypeCount)
	if err != nil {
		return false, err
	}

	var count int
	if err := mq.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mq *MembershipRepository) Count(ctx context.Context, filter MembershipRepositoryFilter) (int64, error) {
	query, args, err := mq.buildQuery(filter, QueryTypeCount)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := mq.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (mq *MembershipRepository) List(ctx context.Context, filter MembershipRepositoryFilter, opts QueryOptions) (*ListResult[MembershipApplication], error) {
	opts = opts.normalize()

	total, err := mq.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	builder := mq.psql.Select("*").From("membership_applications").Where("deleted_at IS NULL")
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.County != nil {
		builder = builder.Where(sq.Eq{"county": *filter.County})
	}

	query, args, err := ApplyPagination(builder, opts).ToSql()
	if err != nil {
		return nil, err
	}

	var applications []*MembershipApplication
	if err := mq.db.SelectContext(ctx, &applications, query, args...); err != nil {
		return nil, err
	}

	return &ListResult[MembershipApplication]{
		Items: applications,
		Total: total,
		Page:  opts.Page,
		Pages: pageCount(total, opts.Limit),
	}, nil
}

func (mq *MembershipRepository) Create(ctx context.Context, application *MembershipApplication, tx *sqlx.Tx) (*MembershipApplication, error) {
	builder := mq.psql.Insert("membership_applications").
		Columns("first_name", "last_name", "email", "phone", "id_number", "county", "constituency", "ward", "message", "status").
		Values(application.FirstName, application.LastName, application.Email, application.Phone, application.IDNumber,
			application.County, application.Constituency, application.Ward, application.Message, application.Status).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var created MembershipApplication
	if tx != nil {
		err = tx.GetContext(ctx, &created, query, args...)
		return &created, err
	}

	err = mq.db.GetContext(ctx, &created, query, args...)
	return &created, err
}

// Update persists the mutable lifecycle fields of a record. Identity fields
// set at submission are never rewritten. The write is guarded by the status
// the caller observed when it read the record: a concurrent transition leaves
// zero rows matched and the update surfaces sql.ErrNoRows instead of
// overwriting the newer state.
func (mq *MembershipRepository) Update(ctx context.Context, application *MembershipApplication, fromStatus string, tx *sqlx.Tx) (*MembershipApplication, error) {
	builder := mq.psql.Update("membership_applications").
		Set("status", application.Status).
		Set("review_notes", application.ReviewNotes).
		Set("reviewed_by", application.ReviewedBy).
		Set("reviewed_at", application.ReviewedAt).
		Set("membership_number", application.MembershipNumber).
		Set("expiry_date", application.ExpiryDate).
		Set("last_payment_at", application.LastPaymentAt).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": application.ID}).
		Where(sq.Eq{"status": fromStatus}).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var updated MembershipApplication
	if tx != nil {
		err = tx.GetContext(ctx, &updated, query, args...)
		return &updated, err
	}

	err = mq.db.GetContext(ctx, &updated, query, args...)
	return &updated, err
}

func (mq *MembershipRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	builder := mq.psql.Select("status", "COUNT(*) AS count").
		From("membership_applications").
		Where("deleted_at IS NULL").
		GroupBy("status")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var counts []StatusCount
	if err := mq.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, err
	}
	return counts, nil
}

func (mq *MembershipRepository) CountByCounty(ctx context.Context, limit int) ([]CountyCount, error) {
	builder := mq.psql.Select("county", "COUNT(*) AS count").
		From("membership_applications").
		Where("deleted_at IS NULL").
		GroupBy("county").
		OrderBy("count DESC").
		Limit(uint64(limit))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var counts []CountyCount
	if err := mq.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, err
	}
	return counts, nil
}

func (mq *MembershipRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	builder := mq.psql.Select("COUNT(*)").
		From("membership_applications").
		Where("deleted_at IS NULL").
		Where(sq.GtOrEq{"created_at": since})

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := mq.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}
