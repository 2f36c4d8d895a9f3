package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// SequenceMembershipNumber is the counter behind membership-number issuance.
const SequenceMembershipNumber = "membership_number"

type SequenceRepository struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func NewSequenceRepository(db *sqlx.DB) *SequenceRepository {
	return &SequenceRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Next atomically increments the named counter and returns the new value.
// Two concurrent approvals can never read the same number: the row lock on
// the UPDATE serialises them.
func (sr *SequenceRepository) Next(ctx context.Context, name string, tx *sqlx.Tx) (int64, error) {
	builder := sr.psql.Update("membership_sequences").
		Set("value", sq.Expr("value + 1")).
		Where(sq.Eq{"name": name}).
		Suffix("RETURNING value")

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var value int64
	if tx != nil {
		err = tx.GetContext(ctx, &value, query, args...)
		return value, err
	}

	err = sr.db.GetContext(ctx, &value, query, args...)
	return value, err
}

// Current reads the counter without advancing it.
func (sr *SequenceRepository) Current(ctx context.Context, name string) (int64, error) {
	builder := sr.psql.Select("value").
		From("membership_sequences").
		Where(sq.Eq{"name": name})

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var value int64
	err = sr.db.GetContext(ctx, &value, query, args...)
	return value, err
}
