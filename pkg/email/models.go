package email

type EmailTemplateType string

const (
	SMTPHost       = "smtp.gmail.com"
	SMTPPort       = 587
	EmailDirectory = "./email/templates"

	EmailTemplateTypeApplicationReceived EmailTemplateType = "application_received"
	EmailTemplateTypeAdminNewApplication EmailTemplateType = "admin_new_application"
	EmailTemplateTypeApplicationApproved EmailTemplateType = "application_approved"
	EmailTemplateTypeApplicationRejected EmailTemplateType = "application_rejected"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}
