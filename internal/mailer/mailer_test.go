package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_SendPasswordReset(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "no-reply@example.com", ResetTTL: time.Hour})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		assert.NotNil(t, a)
		return nil
	}

	to := gofakeit.Email()
	err := m.SendPasswordReset(context.Background(), to, "Ada", "http://localhost:3000/reset-password?token=abc")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@example.com", gotFrom)
	assert.Equal(t, []string{to}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Reset your password\r\n")
	assert.Contains(t, string(gotMsg), "http://localhost:3000/reset-password?token=abc")
	assert.Contains(t, string(gotMsg), "Hi Ada,")
	assert.Contains(t, string(gotMsg), "1h0m0s")
}

func TestSMTPMailer_SendError(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 25})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.SendPasswordReset(context.Background(), "a@b.c", "", "link")
	assert.ErrorContains(t, err, "connection refused")
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, (&LogMailer{}).SendPasswordReset(context.Background(), "a@b.c", "A", "link"))
}
