// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assets turns image asset references into public URLs.
package assets

import (
	"fmt"
	"net/url"
	"strings"

	"chriscakes/internal/models"
)

// Resolver maps an asset reference to a URL for the requested display
// width. It returns "" when the reference cannot be resolved.
type Resolver interface {
	ImageURL(ref string, width int) string
}

// URL resolves an image field, returning "" for a nil image or one
// without an asset reference. Absolute URLs are returned unchanged.
func URL(r Resolver, img *models.Image, width int) string {
	ref := img.Ref()
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if r == nil {
		return ""
	}
	return r.ImageURL(ref, width)
}

// CDN resolves content-store image references of the form
// image-<id>-<width>x<height>-<format> to the store's image CDN.
type CDN struct {
	ProjectID string
	Dataset   string
}

// ImageURL implements Resolver.
func (c CDN) ImageURL(ref string, width int) string {
	id, dims, format, ok := parseImageRef(ref)
	if !ok || c.ProjectID == "" {
		return ""
	}
	u := fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s",
		url.PathEscape(c.ProjectID), url.PathEscape(c.Dataset), id, dims, format)
	if width > 0 {
		u += fmt.Sprintf("?w=%d&auto=format", width)
	}
	return u
}

// parseImageRef splits "image-<id>-<w>x<h>-<fmt>" into its parts.
func parseImageRef(ref string) (id, dims, format string, ok bool) {
	rest, found := strings.CutPrefix(ref, "image-")
	if !found {
		return "", "", "", false
	}
	parts := strings.Split(rest, "-")
	if len(parts) < 3 {
		return "", "", "", false
	}
	format = parts[len(parts)-1]
	dims = parts[len(parts)-2]
	id = strings.Join(parts[:len(parts)-2], "-")
	if id == "" || format == "" || !strings.Contains(dims, "x") {
		return "", "", "", false
	}
	return id, dims, format, true
}

// Static serves asset references as paths under a URL prefix, such as
// the embedded /static/images directory used by file-based content.
type Static struct {
	Prefix string
}

// ImageURL implements Resolver. Width is ignored.
func (s Static) ImageURL(ref string, _ int) string {
	return strings.TrimRight(s.Prefix, "/") + "/" + strings.TrimLeft(ref, "/")
}
