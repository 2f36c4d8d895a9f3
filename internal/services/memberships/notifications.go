package memberships

import (
	"context"
	"fmt"

	"github.com/kenyagreatparty/kgp-backend/internal/dto"
	emailpkg "github.com/kenyagreatparty/kgp-backend/pkg/email"
)

type applicationEmailData struct {
	PartyName        string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	IDNumber         string
	County           string
	Message          string
	MembershipNumber string
	ReviewNotes      string
	DashboardURL     string
}

func (m *Membership) emailData(application *dto.MembershipApplication) applicationEmailData {
	return applicationEmailData{
		PartyName:        m.Config.Membership.PartyName,
		FirstName:        application.FirstName,
		LastName:         application.LastName,
		Email:            application.Email,
		Phone:            application.Phone,
		IDNumber:         application.IDNumber,
		County:           application.County,
		Message:          application.Message,
		MembershipNumber: application.MembershipNumber,
		ReviewNotes:      application.ReviewNotes,
		DashboardURL:     m.Config.Server.FEURL + "/admin/memberships",
	}
}

// notifySubmitted tells the admin a new application arrived and confirms
// receipt to the applicant. Both sends are best-effort: a failure is logged
// and the submission stands.
func (m *Membership) notifySubmitted(ctx context.Context, application *dto.MembershipApplication) {
	data := m.emailData(application)
	partyName := m.Config.Membership.PartyName

	if err := m.Email.SendTemplate(ctx, m.Config.Membership.AdminEmail,
		fmt.Sprintf("New %s Membership Application", partyName),
		emailpkg.EmailTemplateTypeAdminNewApplication, data); err != nil {
		m.Logger.Error().Err(err).Str("application_id", application.ID.String()).Msg("failed to notify admin of new application")
	}

	if err := m.Email.SendTemplate(ctx, application.Email,
		fmt.Sprintf("%s Membership Application Received", partyName),
		emailpkg.EmailTemplateTypeApplicationReceived, data); err != nil {
		m.Logger.Error().Err(err).Str("application_id", application.ID.String()).Msg("failed to send application receipt")
	}
}

// notifyReviewed sends the decision email. The review is already committed;
// delivery failure is logged and never surfaced.
func (m *Membership) notifyReviewed(ctx context.Context, application *dto.MembershipApplication) {
	data := m.emailData(application)
	partyName := m.Config.Membership.PartyName

	var subject string
	var kind emailpkg.EmailTemplateType
	switch application.Status {
	case dto.ApplicationStatusApproved:
		subject = fmt.Sprintf("Congratulations! Your %s Membership Application has been Approved", partyName)
		kind = emailpkg.EmailTemplateTypeApplicationApproved
	case dto.ApplicationStatusRejected:
		subject = fmt.Sprintf("%s Membership Application Update", partyName)
		kind = emailpkg.EmailTemplateTypeApplicationRejected
	default:
		return
	}

	if err := m.Email.SendTemplate(ctx, application.Email, subject, kind, data); err != nil {
		m.Logger.Error().Err(err).
			Str("application_id", application.ID.String()).
			Str("decision", string(application.Status)).
			Msg("failed to send review decision email")
	}
}
