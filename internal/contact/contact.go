// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact implements the event inquiry pipeline: rate gate,
// configuration gate, recipient resolution, validation and the mail
// fan-out to every recipient.
package contact

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"chriscakes/internal/mail"
	"chriscakes/internal/models"
)

//go:embed templates/inquiry.txt
var templateFS embed.FS

// DefaultFrom is the sender address used when none is configured.
const DefaultFrom = "onboarding@resend.dev"

// Limiter admits or rejects a submission for a client key.
type Limiter interface {
	Allow(key string) bool
}

// SettingsSource reads the site settings holding the recipient list.
type SettingsSource interface {
	SiteSettings(ctx context.Context) (*models.SiteSettings, error)
}

// Config holds the mail addresses used by the pipeline.
type Config struct {
	From       string // sender address; DefaultFrom when empty
	FallbackTo string // recipient when settings list none
}

// Receipt describes a delivered inquiry.
type Receipt struct {
	Subject    string
	Recipients []string
}

// Service runs submissions through the pipeline. A single Service shares
// one Limiter across all requests for the life of the process.
type Service struct {
	limiter  Limiter
	sender   mail.Sender
	settings SettingsSource
	cfg      Config
	validate *validator.Validate
	body     *template.Template
}

// NewService wires the pipeline. A nil sender means outbound mail is not
// configured and every submission past the rate gate fails with a
// configuration error. A nil settings source skips straight to the
// fallback recipient.
func NewService(limiter Limiter, sender mail.Sender, settings SettingsSource, cfg Config) (*Service, error) {
	if cfg.From == "" {
		cfg.From = DefaultFrom
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("mailshape", func(fl validator.FieldLevel) bool {
		return mailShape.MatchString(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("registering mailshape validation: %w", err)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/inquiry.txt")
	if err != nil {
		return nil, fmt.Errorf("parsing inquiry template: %w", err)
	}

	return &Service{
		limiter:  limiter,
		sender:   sender,
		settings: settings,
		cfg:      cfg,
		validate: v,
		body:     tmpl,
	}, nil
}

// Submit processes one inquiry read from body. Every rejection is a
// *Error whose Message can be shown to the submitter. Nothing is retried.
func (s *Service) Submit(ctx context.Context, clientKey string, body io.Reader) (*Receipt, error) {
	if s.limiter != nil && !s.limiter.Allow(clientKey) {
		slog.Warn("contact submission rate limited", "client", clientKey)
		return nil, reject(KindRateLimited, MsgRateLimited, nil)
	}

	if s.sender == nil {
		slog.Error("contact form mail sender is not configured")
		return nil, reject(KindConfig, MsgMailUnconfigured, nil)
	}

	recipients := s.recipients(ctx)
	if len(recipients) == 0 {
		slog.Error("no contact form recipients configured")
		return nil, reject(KindConfig, MsgNoRecipient, nil)
	}

	q, err := s.decode(body)
	if err != nil {
		return nil, err
	}

	text, err := s.render(q)
	if err != nil {
		slog.Error("failed to format inquiry", "error", err)
		return nil, reject(KindSend, MsgSendFailed, err)
	}

	subject := q.Subject()
	if err := s.fanOut(ctx, recipients, mail.Message{
		From:    s.cfg.From,
		ReplyTo: string(q.ContactEmail),
		Subject: subject,
		Text:    text,
	}); err != nil {
		return nil, reject(KindSend, MsgSendFailed, err)
	}

	slog.Info("contact inquiry sent", "recipients", len(recipients), "client", clientKey)
	return &Receipt{Subject: subject, Recipients: recipients}, nil
}

// recipients returns the settings recipient list, or the fallback address
// when the list is empty or cannot be read.
func (s *Service) recipients(ctx context.Context) []string {
	var out []string
	if s.settings != nil {
		settings, err := s.settings.SiteSettings(ctx)
		if err != nil {
			slog.Error("failed to fetch contact form recipients", "error", err)
		} else if settings != nil {
			for _, r := range settings.ContactFormRecipients {
				if r = strings.TrimSpace(r); r != "" {
					out = append(out, r)
				}
			}
		}
	}
	if len(out) == 0 && s.cfg.FallbackTo != "" {
		out = []string{s.cfg.FallbackTo}
	}
	return out
}

// decode parses and validates the submission. A body that is not a JSON
// object is treated like an empty form.
func (s *Service) decode(body io.Reader) (*Inquiry, error) {
	var q Inquiry
	if err := json.NewDecoder(body).Decode(&q); err != nil {
		slog.Warn("malformed contact submission", "error", err)
		return nil, reject(KindValidation, MsgRequired, err)
	}

	if err := s.validate.Struct(&q); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, reject(KindValidation, MsgRequired, err)
		}
		return nil, reject(KindValidation, validationMessage(verrs), err)
	}
	return &q, nil
}

// validationMessage picks one message for all failed checks. Missing
// required fields take precedence over a malformed email.
func validationMessage(verrs validator.ValidationErrors) string {
	msg := MsgTooLong
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return MsgRequired
		case "mailshape":
			msg = MsgInvalidEmail
		}
	}
	return msg
}

func (s *Service) render(q *Inquiry) (string, error) {
	var buf bytes.Buffer
	if err := s.body.Execute(&buf, q); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fanOut sends one copy per recipient concurrently and waits for all of
// them. Any failure fails the submission even if other copies went out;
// a sibling failure does not cancel in-flight sends.
func (s *Service) fanOut(ctx context.Context, recipients []string, msg mail.Message) error {
	var g errgroup.Group
	for _, to := range recipients {
		m := msg
		m.To = to
		g.Go(func() error {
			if err := s.sender.Send(ctx, m); err != nil {
				slog.Error("failed to send inquiry", "to", to, "error", err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
