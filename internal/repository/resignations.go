package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type ResignationRepository struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func NewResignationRepository(db *sqlx.DB) *ResignationRepository {
	return &ResignationRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (rq *ResignationRepository) Create(ctx context.Context, resignation *Resignation, tx *sqlx.Tx) (*Resignation, error) {
	builder := rq.psql.Insert("membership_resignations").
		Columns("reference", "reason", "details").
		Values(resignation.Reference, resignation.Reason, resignation.Details).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var created Resignation
	if tx != nil {
		err = tx.GetContext(ctx, &created, query, args...)
		return &created, err
	}

	err = rq.db.GetContext(ctx, &created, query, args...)
	return &created, err
}
