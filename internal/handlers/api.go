// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"chriscakes/internal/cache"
	"chriscakes/internal/contact"
	"chriscakes/internal/middleware"
)

// maxInquiryBytes caps the contact request body.
const maxInquiryBytes = 64 << 10

// Submitter runs a contact submission through the inquiry pipeline.
type Submitter interface {
	Submit(ctx context.Context, clientKey string, body io.Reader) (*contact.Receipt, error)
}

// API groups the JSON endpoints.
type API struct {
	inquiries Submitter
	pageCache *cache.PageCache
	secret    string
}

// NewAPI creates the JSON endpoint group. An empty secret disables
// revalidation.
func NewAPI(inquiries Submitter, pageCache *cache.PageCache, secret string) *API {
	return &API{inquiries: inquiries, pageCache: pageCache, secret: secret}
}

// Contact accepts an event inquiry as JSON and mails it to the configured
// recipients. Every failure answers with a single non-leaking message.
func (a *API) Contact(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxInquiryBytes)

	if _, err := a.inquiries.Submit(r.Context(), middleware.ClientKey(r), body); err != nil {
		var cerr *contact.Error
		if !errors.As(err, &cerr) {
			slog.Error("contact submission failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": contact.MsgSendFailed})
			return
		}
		writeJSON(w, cerr.Status(), map[string]string{"error": cerr.Message})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": contact.MsgSent})
}

// revalidateRequest names the path to drop from the page cache. An empty
// path drops every cached page.
type revalidateRequest struct {
	Path string `json:"path"`
}

// Revalidate drops cached pages so the next request renders fresh
// content. It requires the X-Revalidate-Secret header.
func (a *API) Revalidate(w http.ResponseWriter, r *http.Request) {
	if a.secret == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Revalidation is disabled"})
		return
	}
	given := r.Header.Get("X-Revalidate-Secret")
	if subtle.ConstantTimeCompare([]byte(given), []byte(a.secret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid secret"})
		return
	}

	var req revalidateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	ctx := r.Context()
	if req.Path == "" {
		n := a.pageCache.InvalidateAll(ctx)
		slog.Info("page cache cleared", "pages", n)
		writeJSON(w, http.StatusOK, map[string]any{"revalidated": true, "pages": n})
		return
	}

	a.pageCache.Invalidate(ctx, req.Path)
	slog.Info("page cache invalidated", "path", req.Path)
	writeJSON(w, http.StatusOK, map[string]any{"revalidated": true, "path": cache.Key(req.Path)})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
