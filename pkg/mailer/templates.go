package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`
<p>Hi {{.Email}},</p>
<p>Your account is ready. You can sign in and start recording your income and expenses right away.</p>
<p>— The FinLedger team</p>
`))

var resetHTML = template.Must(template.New("reset_password").Parse(`
<p>Someone requested a password reset for this account.</p>
<p><a href="{{.ResetURL}}">Reset your password</a></p>
<p>The link expires in {{.ExpiresIn}}. If you did not request this, ignore this email.</p>
`))

// Render turns a queued job into a ready-to-send subject, text and HTML body.
func Render(job EmailJob) (subject, text, html string, err error) {
	var buf bytes.Buffer
	switch job.Template {
	case TemplateWelcome:
		if err = welcomeHTML.Execute(&buf, job.Data); err != nil {
			return "", "", "", err
		}
		return "Welcome to FinLedger", "Your account is ready.", buf.String(), nil
	case TemplateResetPassword:
		if err = resetHTML.Execute(&buf, job.Data); err != nil {
			return "", "", "", err
		}
		link, _ := job.Data["ResetURL"].(string)
		return "Reset your FinLedger password", "Reset link: " + link, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
}
