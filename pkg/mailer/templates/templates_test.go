package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/promisor/config"
)

func TestRenderConfirmEmail(t *testing.T) {
	cfg := &config.Config{AppName: "Promisor", CompanyName: "Acme", SupportURL: "https://help.example"}
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	link := "http://localhost:8080/api/members/confirm?token=abc&x=1"

	data := NewConfirmEmailData(cfg, "Alice", "alice@x.com", link,
		WithTime(issued),
		WithExpiry(issued.Add(15*time.Minute), 15*time.Minute),
	)
	assert.Equal(t, ConfirmEmail, data.Type)
	assert.Equal(t, "15 minutes", data.ExpiresIn)
	assert.Equal(t, "01 May 2024, 09:15", data.ExpiresAtText)

	msg, err := RenderMessage(ConfirmEmail, data)
	require.NoError(t, err)

	assert.Equal(t, "Promisor: confirm your email", msg.Subject)
	assert.Contains(t, msg.Text, "Hi Alice,")
	assert.Contains(t, msg.Text, link)
	assert.Contains(t, msg.Text, "This link expires in 15 minutes.")
	assert.Contains(t, msg.Text, "Acme")

	assert.Contains(t, msg.HTML, "Hi Alice,")
	assert.Contains(t, msg.HTML, "token=abc&amp;x=1")
	assert.Contains(t, msg.HTML, "https://help.example")
}

func TestRenderFromMapUsesDefaults(t *testing.T) {
	msg, err := RenderMessage(ConfirmEmail, map[string]any{
		"Name":      "Bob",
		"VerifyURL": "http://x/confirm?token=t",
	})
	require.NoError(t, err)
	assert.Equal(t, "Promisor: confirm your email", msg.Subject)
	assert.Contains(t, msg.Text, "expires in 15 minutes")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := RenderMessage("nope", EmailData{})
	assert.Error(t, err)
}

func TestHumanizeMinutes(t *testing.T) {
	assert.Equal(t, "1 minute", humanizeMinutes(time.Minute))
	assert.Equal(t, "15 minutes", humanizeMinutes(15*time.Minute))
	assert.Equal(t, "60 minutes", humanizeMinutes(time.Hour))
}
