package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	date := time.Date(2025, 11, 5, 18, 30, 0, 0, time.UTC)
	msg := string(buildMessage("league@example.com", []string{"a@example.com", "b@example.com"},
		"Match reminder", "<p>hi</p>", date))

	head, body, found := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, found)
	assert.Equal(t, "<p>hi</p>\r\n", body)
	assert.Contains(t, head, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, head, "Subject: Match reminder\r\n")
	assert.Contains(t, head, "Date: Wed, 05 Nov 2025 18:30:00 +0000\r\n")
	assert.Contains(t, head, "@example.com>\r\n")
	assert.Contains(t, head, `Content-Type: text/html; charset="UTF-8"`)
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	msg := string(buildMessage("noreply", []string{"a@example.com"}, "Матч завтра", "", time.Now()))

	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.NotContains(t, msg, "Матч")
	assert.Contains(t, msg, "@localhost>")
}

func TestEmailService_NoRecipients(t *testing.T) {
	s := &EmailService{}
	assert.EqualError(t, s.SendEmail(nil, "subject", "body"), "no recipients")
}
