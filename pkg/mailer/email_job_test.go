package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minbase/account-service/pkg/mailer"
)

func TestRenderWelcome(t *testing.T) {
	job := &mailer.EmailJob{
		To:       "a@b.com",
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": "Hong", "Email": "a@b.com"},
	}
	subject, text := job.Render()
	assert.Equal(t, "Welcome aboard", subject)
	assert.Contains(t, text, "Hong")
	assert.Contains(t, text, "a@b.com")
}

func TestRenderUnknownTemplateFallsBack(t *testing.T) {
	job := &mailer.EmailJob{To: "a@b.com", Subject: "Hi", Text: "plain"}
	subject, text := job.Render()
	assert.Equal(t, "Hi", subject)
	assert.Equal(t, "plain", text)
}
