package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	db.Mapper = reflectx.NewMapper("json")
	return db, mock
}

var applicationColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "id_number", "county",
	"constituency", "ward", "message", "status", "review_notes", "reviewed_by",
	"reviewed_at", "membership_number", "expiry_date", "last_payment_at",
	"created_at", "updated_at", "deleted_at",
}

func applicationRow(id uuid.UUID, status string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(), "Amina", "Odhiambo", "amina@example.com", "+254712345678",
		"12345678", "nairobi", nil, nil, nil, status, nil, nil, nil, nil, nil,
		nil, now, now, nil,
	}
}

func TestMembershipRepositoryExists(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMembershipRepository(db)

	email := "amina@example.com"
	mock.ExpectQuery("SELECT COUNT(*) FROM membership_applications WHERE deleted_at IS NULL AND email = $1").
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), MembershipRepositoryFilter{Email: &email})
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryGetNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMembershipRepository(db)

	id := uuid.New()
	mock.ExpectQuery("SELECT * FROM membership_applications WHERE deleted_at IS NULL AND id = $1").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), MembershipRepositoryFilter{ID: &id})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryCreate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMembershipRepository(db)

	id := uuid.New()
	mock.ExpectQuery("INSERT INTO membership_applications (first_name,last_name,email,phone,id_number,county,constituency,ward,message,status) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING *").
		WithArgs("Amina", "Odhiambo", "amina@example.com", "+254712345678", "12345678",
			"nairobi", sql.NullString{}, sql.NullString{}, sql.NullString{}, "pending").
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(applicationRow(id, "pending")...))

	created, err := repo.Create(context.Background(), &MembershipApplication{
		FirstName: "Amina",
		LastName:  "Odhiambo",
		Email:     "amina@example.com",
		Phone:     "+254712345678",
		IDNumber:  "12345678",
		County:    "nairobi",
		Status:    "pending",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, "pending", created.Status)
	assert.False(t, created.MembershipNumber.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryUpdateGuardsObservedStatus(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMembershipRepository(db)

	id := uuid.New()
	reviewer := uuid.New()
	now := time.Now()
	application := &MembershipApplication{
		ID:               id,
		Status:           "approved",
		ReviewNotes:      sql.NullString{String: "karibu", Valid: true},
		ReviewedBy:       uuid.NullUUID{UUID: reviewer, Valid: true},
		ReviewedAt:       sql.NullTime{Time: now, Valid: true},
		MembershipNumber: sql.NullString{String: "KGP000001", Valid: true},
		ExpiryDate:       sql.NullTime{Time: now.AddDate(0, 0, 365), Valid: true},
	}

	updateQuery := "UPDATE membership_applications SET status = $1, review_notes = $2, reviewed_by = $3, reviewed_at = $4, membership_number = $5, expiry_date = $6, last_payment_at = $7, updated_at = $8 WHERE id = $9 AND status = $10 RETURNING *"

	mock.ExpectQuery(updateQuery).
		WithArgs(application.Status, application.ReviewNotes, application.ReviewedBy,
			application.ReviewedAt, application.MembershipNumber, application.ExpiryDate,
			application.LastPaymentAt, sqlmock.AnyArg(), id, "pending").
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(applicationRow(id, "approved")...))

	updated, err := repo.Update(context.Background(), application, "pending", nil)
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)

	// The row moved on since the caller read it, so the guard matches
	// nothing and the caller sees sql.ErrNoRows.
	mock.ExpectQuery(updateQuery).
		WithArgs(application.Status, application.ReviewNotes, application.ReviewedBy,
			application.ReviewedAt, application.MembershipNumber, application.ExpiryDate,
			application.LastPaymentAt, sqlmock.AnyArg(), id, "pending").
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	_, err = repo.Update(context.Background(), application, "pending", nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryListPaginates(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMembershipRepository(db)

	status := "pending"
	mock.ExpectQuery("SELECT COUNT(*) FROM membership_applications WHERE deleted_at IS NULL AND status = $1").
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("SELECT * FROM membership_applications WHERE deleted_at IS NULL AND status = $1 ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 10").
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows(applicationColumns).
			AddRow(applicationRow(uuid.New(), status)...).
			AddRow(applicationRow(uuid.New(), status)...))

	result, err := repo.List(context.Background(), MembershipRepositoryFilter{Status: &status}, QueryOptions{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 3, result.Pages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryCountByStatus(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectQuery("SELECT status, COUNT(*) AS count FROM membership_applications WHERE deleted_at IS NULL GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 4).
			AddRow("approved", 9))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, StatusCount{Status: "pending", Count: 4}, counts[0])
	assert.Equal(t, StatusCount{Status: "approved", Count: 9}, counts[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}
