package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type RenewalRepository struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func NewRenewalRepository(db *sqlx.DB) *RenewalRepository {
	return &RenewalRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (rq *RenewalRepository) Create(ctx context.Context, renewal *Renewal, tx *sqlx.Tx) (*Renewal, error) {
	builder := rq.psql.Insert("membership_renewals").
		Columns("membership_id", "reference", "payment_method", "amount", "new_expiry_date").
		Values(renewal.MembershipID, renewal.Reference, renewal.PaymentMethod, renewal.Amount, renewal.NewExpiryDate).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var created Renewal
	if tx != nil {
		err = tx.GetContext(ctx, &created, query, args...)
		return &created, err
	}

	err = rq.db.GetContext(ctx, &created, query, args...)
	return &created, err
}
