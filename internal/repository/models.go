package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// MembershipApplication is the canonical stored record of an application.
// Review fields stay NULL until the record leaves pending; membership_number
// and expiry_date are set only on approval.
type MembershipApplication struct {
	ID               uuid.UUID      `json:"id"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	IDNumber         string         `json:"id_number"`
	County           string         `json:"county"`
	Constituency     sql.NullString `json:"constituency"`
	Ward             sql.NullString `json:"ward"`
	Message          sql.NullString `json:"message"`
	Status           string         `json:"status"`
	ReviewNotes      sql.NullString `json:"review_notes"`
	ReviewedBy       uuid.NullUUID  `json:"reviewed_by"`
	ReviewedAt       sql.NullTime   `json:"reviewed_at"`
	MembershipNumber sql.NullString `json:"membership_number"`
	ExpiryDate       sql.NullTime   `json:"expiry_date"`
	LastPaymentAt    sql.NullTime   `json:"last_payment_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        sql.NullTime   `json:"deleted_at"`
}

type Renewal struct {
	ID            uuid.UUID `json:"id"`
	MembershipID  uuid.UUID `json:"membership_id"`
	Reference     string    `json:"reference"`
	PaymentMethod string    `json:"payment_method"`
	Amount        int64     `json:"amount"`
	NewExpiryDate time.Time `json:"new_expiry_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type Resignation struct {
	ID        uuid.UUID      `json:"id"`
	Reference string         `json:"reference"`
	Reason    string         `json:"reason"`
	Details   sql.NullString `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type CountyCount struct {
	County string `json:"county"`
	Count  int64  `json:"count"`
}
