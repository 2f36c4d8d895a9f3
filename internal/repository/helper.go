package repository

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type QueryType string

const (
	QueryTypeSelect QueryType = "select"
	QueryTypeCount  QueryType = "count"

	maxPageSize     = 100
	defaultPageSize = 10
)

// QueryOptions is page-number pagination: the admin dashboard pages through
// applications newest-first with a total and page count.
type QueryOptions struct {
	Page  int
	Limit int
}

func (o QueryOptions) normalize() QueryOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = defaultPageSize
	}
	if o.Limit > maxPageSize {
		o.Limit = maxPageSize
	}
	return o
}

func ApplyPagination(builder sq.SelectBuilder, opts QueryOptions) sq.SelectBuilder {
	opts = opts.normalize()
	offset := uint64(opts.Page-1) * uint64(opts.Limit)
	return builder.
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(opts.Limit)).
		Offset(offset)
}

type ListResult[T any] struct {
	Items []*T
	Total int64
	Page  int
	Pages int
}

func pageCount(total int64, limit int) int {
	if limit < 1 {
		limit = defaultPageSize
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return pages
}

func ToNullUUID(id uuid.UUID) uuid.NullUUID {
	if id == uuid.Nil {
		return uuid.NullUUID{UUID: uuid.Nil, Valid: false}
	}

	return uuid.NullUUID{UUID: id, Valid: true}
}

func ToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}

	return sql.NullTime{Time: *t, Valid: true}
}

func ToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}

	return sql.NullString{String: *s, Valid: true}
}
