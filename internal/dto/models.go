package dto

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string
type MemberStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusSuspended ApplicationStatus = "suspended"

	// MemberStatus is the read-time status layered over the stored one:
	// an approved membership past its expiry date reads as expired.
	MemberStatusActive    MemberStatus = "active"
	MemberStatusPending   MemberStatus = "pending"
	MemberStatusRejected  MemberStatus = "rejected"
	MemberStatusSuspended MemberStatus = "suspended"
	MemberStatusExpired   MemberStatus = "expired"
)

type SubmitApplicationInput struct {
	FirstName    string `json:"first_name" validate:"required,min=2,max=50"`
	LastName     string `json:"last_name" validate:"required,min=2,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,phone"`
	IDNumber     string `json:"id_number" validate:"required,idnumber"`
	County       string `json:"county" validate:"required,county"`
	Constituency string `json:"constituency,omitempty" validate:"omitempty,max=100"`
	Ward         string `json:"ward,omitempty" validate:"omitempty,max=100"`
	Message      string `json:"message,omitempty" validate:"omitempty,max=500"`
}

type MembershipApplication struct {
	ID               uuid.UUID         `json:"id"`
	FirstName        string            `json:"first_name"`
	LastName         string            `json:"last_name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	IDNumber         string            `json:"id_number"`
	County           string            `json:"county"`
	Constituency     string            `json:"constituency,omitempty"`
	Ward             string            `json:"ward,omitempty"`
	Message          string            `json:"message,omitempty"`
	Status           ApplicationStatus `json:"status"`
	ReviewNotes      string            `json:"review_notes,omitempty"`
	ReviewedBy       *uuid.UUID        `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time        `json:"reviewed_at,omitempty"`
	MembershipNumber string            `json:"membership_number,omitempty"`
	ExpiryDate       *time.Time        `json:"expiry_date,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type ReviewApplicationInput struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type ApplicationFilters struct {
	Status *string `json:"status,omitempty"`
	County *string `json:"county,omitempty"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

type ApplicationsPage struct {
	Items      []MembershipApplication `json:"items"`
	Pagination Pagination              `json:"pagination"`
}

type CheckStatusInput struct {
	IDNumber string `json:"id_number" validate:"required,idnumber"`
	Phone    string `json:"phone" validate:"required,phone"`
}

// MemberSummary is the public status-check projection of a membership record.
type MemberSummary struct {
	Name         string       `json:"name"`
	MembershipID string       `json:"membership_id,omitempty"`
	JoinDate     time.Time    `json:"join_date"`
	ExpiryDate   *time.Time   `json:"expiry_date,omitempty"`
	County       string       `json:"county"`
	Constituency string       `json:"constituency,omitempty"`
	Ward         string       `json:"ward,omitempty"`
	LastPayment  *time.Time   `json:"last_payment,omitempty"`
	Status       MemberStatus `json:"status"`
}

type ApplicationStatusSummary struct {
	FirstName        string            `json:"first_name"`
	LastName         string            `json:"last_name"`
	Status           ApplicationStatus `json:"status"`
	MembershipNumber string            `json:"membership_number,omitempty"`
	ReviewedAt       *time.Time        `json:"reviewed_at,omitempty"`
}

type RenewMembershipInput struct {
	MembershipNumber string `json:"membership_number" validate:"required"`
	PaymentMethod    string `json:"payment_method" validate:"required"`
	Amount           int64  `json:"amount" validate:"required,gt=0"`
}

type RenewalResult struct {
	TransactionID string    `json:"transaction_id"`
	NewExpiryDate time.Time `json:"new_expiry_date"`
}

type ResignInput struct {
	Reason  string `json:"reason" validate:"required"`
	Details string `json:"details,omitempty" validate:"omitempty,max=1000"`
}

type ResignationResult struct {
	ResignationID string `json:"resignation_id"`
}

type CountyCount struct {
	County string `json:"county"`
	Count  int64  `json:"count"`
}

type StatsOverview struct {
	Total       int64                       `json:"total"`
	Approved    int64                       `json:"approved"`
	Pending     int64                       `json:"pending"`
	Rejected    int64                       `json:"rejected"`
	Today       int64                       `json:"today"`
	Issued      int64                       `json:"issued"`
	ByStatus    map[ApplicationStatus]int64 `json:"by_status"`
	TopCounties []CountyCount               `json:"top_counties"`
}
