package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithoutSMTP(t *testing.T) {
	m := New(SMTPConfig{Host: "smtp.example.com"})
	assert.IsType(t, LogMailer{}, m)
	assert.NoError(t, m.Send("a@b.c", "hi", "body"))

	m = New(SMTPConfig{Host: "smtp.example.com", Port: "465", From: "no-reply@example.com"})
	assert.IsType(t, &SMTPMailer{}, m)
}

func TestBuildMessage(t *testing.T) {
	subject, body := VerificationEmail("Jane", "123456", 10)
	msg := buildMessage("no-reply@example.com", "jane@example.com", subject, body)

	assert.True(t, strings.HasPrefix(msg, "From: no-reply@example.com\r\nTo: jane@example.com\r\n"))
	assert.Contains(t, msg, "Subject: Verify your account\r\n")
	assert.Contains(t, msg, `Content-Type: text/html; charset="utf-8"`)
	assert.Contains(t, msg, "<b>123456</b>")

	msg = buildMessage("a@b.c", "d@e.f", "plain", "just text")
	assert.Contains(t, msg, "Content-Type: text/plain")
}
