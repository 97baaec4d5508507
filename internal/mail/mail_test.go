// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewSMTPUnconfigured(t *testing.T) {
	if s := NewSMTP(SMTPConfig{}); s != nil {
		t.Errorf("expected nil sender without a password, got %T", s)
	}
}

func TestNewSMTPDefaults(t *testing.T) {
	s, ok := NewSMTP(SMTPConfig{Password: "re_key"}).(*SMTP)
	if !ok {
		t.Fatal("expected *SMTP")
	}
	if s.dialer.Host != "smtp.resend.com" || s.dialer.Port != 465 || s.dialer.Username != "resend" {
		t.Errorf("dialer: host=%q port=%d user=%q", s.dialer.Host, s.dialer.Port, s.dialer.Username)
	}
}

func TestSendHonoursCancelledContext(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "127.0.0.1", Port: 1, Password: "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, Message{To: "a@example.com"}); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestBuildHeaders(t *testing.T) {
	m := build(Message{
		From:    "onboarding@resend.dev",
		To:      "owner@example.com",
		ReplyTo: "customer@example.com",
		Subject: "New Event Inquiry - Pat - TBD",
		Text:    "hello",
	})

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"From: onboarding@resend.dev",
		"To: owner@example.com",
		"Reply-To: customer@example.com",
		"Subject: New Event Inquiry - Pat - TBD",
		"Content-Type: text/plain",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
