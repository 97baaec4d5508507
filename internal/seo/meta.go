// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo builds page metadata and schema.org JSON-LD documents.
// Everything here is a pure function of fetched content.
package seo

import (
	"strings"

	"chriscakes/internal/models"
)

// Site carries the site-wide values used to complete page metadata.
type Site struct {
	Name        string // title suffix, e.g. "ChrisCakes"
	URL         string // canonical origin without trailing slash
	Description string
	Image       string // default Open Graph image
}

// Meta is the head metadata for one page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	Type        string
	SiteName    string
	TwitterCard string
}

// Absolute joins path onto the site origin.
func (s Site) Absolute(path string) string {
	base := strings.TrimRight(s.URL, "/")
	if path == "" || path == "/" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Meta returns metadata with the given literal title. Empty fields fall
// back to the site defaults.
func (s Site) Meta(path, title, description string) Meta {
	if title == "" {
		title = s.Name
	}
	if description == "" {
		description = s.Description
	}
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   s.Absolute(path),
		Image:       s.Image,
		Type:        "website",
		SiteName:    s.Name,
		TwitterCard: "summary_large_image",
	}
}

// Suffixed returns "<title> - <site name>".
func (s Site) Suffixed(title string) string {
	if title == "" {
		return s.Name
	}
	return title + " - " + s.Name
}

// PageMeta builds metadata for a CMS page. The page's own SEO fields win;
// otherwise the title is suffixed with the site name and the description
// falls back to the page title. image overrides the default OG image when
// non-empty.
func (s Site) PageMeta(page *models.Page, path, image string) Meta {
	if page == nil {
		return s.NotFound(path)
	}

	title := s.Suffixed(page.Title)
	description := page.Title
	if page.SEO != nil {
		if page.SEO.MetaTitle != "" {
			title = page.SEO.MetaTitle
		}
		if page.SEO.MetaDescription != "" {
			description = page.SEO.MetaDescription
		}
	}

	m := s.Meta(path, title, description)
	if image != "" {
		m.Image = image
	}
	return m
}

// NotFound is the metadata for a missing page.
func (s Site) NotFound(path string) Meta {
	return s.Meta(path, s.Suffixed("Page Not Found"), "")
}
