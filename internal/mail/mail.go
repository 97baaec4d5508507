// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mail relays plain-text messages through an SMTP provider.
package mail

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Message is a single outbound plain-text email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTP sends mail through an SMTP relay. The default settings target the
// Resend relay, which authenticates with the user "resend" and the API key
// as password.
type SMTP struct {
	dialer *gomail.Dialer
}

// SMTPConfig holds relay connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// NewSMTP returns an SMTP sender, or nil when no password is configured.
// Callers treat a nil Sender as "mail not configured".
func NewSMTP(cfg SMTPConfig) Sender {
	if cfg.Password == "" {
		return nil
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.resend.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	if cfg.Username == "" {
		cfg.Username = "resend"
	}
	return &SMTP{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

// Send dials the relay and delivers msg. gomail has no context support, so
// cancellation is only observed before dialing.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return errors.New("mail: empty recipient")
	}

	if err := s.dialer.DialAndSend(build(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}
	return nil
}

func build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	return m
}
