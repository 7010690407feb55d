package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	job := EmailJob{
		To:       "alice@example.com",
		Template: TemplateWelcome,
		Data:     map[string]any{"Email": "alice@example.com"},
	}

	subject, text, html, err := Render(job)
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.NotEmpty(t, text)
	assert.Contains(t, html, "alice@example.com")
}

func TestRenderResetPassword(t *testing.T) {
	job := EmailJob{
		To:       "alice@example.com",
		Template: TemplateResetPassword,
		Data:     map[string]any{"ResetURL": "https://app.example.com/reset?token=abc", "ExpiresIn": "30 minutes"},
	}

	subject, text, html, err := Render(job)
	require.NoError(t, err)
	assert.Contains(t, subject, "Reset")
	assert.Contains(t, text, "https://app.example.com/reset?token=abc")
	assert.Contains(t, html, "30 minutes")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render(EmailJob{Template: "nonexistent"})
	assert.Error(t, err)
}
