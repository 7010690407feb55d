package mailer

// Template names for queued email jobs.
const (
	TemplateWelcome       = "welcome"
	TemplateResetPassword = "reset_password"
)

// EmailJob is the message published to the email queue and consumed by the
// worker process.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}
