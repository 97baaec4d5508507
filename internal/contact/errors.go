// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import "net/http"

// Messages returned to the submitter.
const (
	MsgRateLimited      = "Too many requests. Please try again later or call us directly."
	MsgMailUnconfigured = "Email service is not configured. Please call us directly at the number listed."
	MsgNoRecipient      = "Email recipient is not configured. Please call us directly at the number listed."
	MsgRequired         = "Please fill in all required fields."
	MsgInvalidEmail     = "Please provide a valid email address."
	MsgTooLong          = "Some of your entries are too long. Please shorten them or call us directly."
	MsgSendFailed       = "Failed to send your inquiry. Please try again or call us directly."
	MsgSent             = "Your inquiry has been sent successfully!"
)

// Kind classifies a rejected submission.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindRateLimited
	KindConfig
	KindSend
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	case KindConfig:
		return "config"
	case KindSend:
		return "send"
	default:
		return "unknown"
	}
}

// Error is a rejected submission. Message is safe to show the submitter;
// Err carries the internal cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func reject(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
