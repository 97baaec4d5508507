// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package social builds share-button links and filters social profiles
// from the site settings.
package social

import (
	"net/url"
	"slices"

	"chriscakes/internal/models"
)

// Page keys matched against ShareButtons.DisplayPages.
const (
	PageMenu        = "menu"
	PageServices    = "services"
	PageFundraising = "fundraising"
	PageDynamic     = "dynamicPages"
	PageAll         = "all"
)

// Native marks the device share sheet; it has no URL and is handled by
// client script.
const Native = "native"

// defaultPlatforms is used when the settings list no platforms.
var defaultPlatforms = []string{"facebook", "twitter", "pinterest", "whatsapp", Native}

// Target describes the page being shared.
type Target struct {
	URL         string
	Title       string
	Description string
	Image       string
}

// Link is one share button.
type Link struct {
	Platform string
	Label    string
	URL      string
}

type builder struct {
	label string
	build func(t Target) string
}

var builders = map[string]builder{
	"facebook": {"Facebook", func(t Target) string {
		return "https://www.facebook.com/sharer/sharer.php?" + url.Values{"u": {t.URL}, "quote": {t.Title}}.Encode()
	}},
	"twitter": {"X (Twitter)", func(t Target) string {
		return "https://twitter.com/intent/tweet?" + url.Values{"url": {t.URL}, "text": {t.Title}}.Encode()
	}},
	"whatsapp": {"WhatsApp", func(t Target) string {
		return "https://api.whatsapp.com/send?" + url.Values{"text": {t.Title + " - " + t.URL}}.Encode()
	}},
	"pinterest": {"Pinterest", func(t Target) string {
		return "https://pinterest.com/pin/create/button/?" + url.Values{
			"url": {t.URL}, "media": {t.Image}, "description": {describe(t)},
		}.Encode()
	}},
	"linkedin": {"LinkedIn", func(t Target) string {
		return "https://www.linkedin.com/sharing/share-offsite/?" + url.Values{"url": {t.URL}}.Encode()
	}},
}

func describe(t Target) string {
	if t.Description != "" {
		return t.Description
	}
	return t.Title
}

// Visible reports whether share buttons are enabled for the page key.
func Visible(cfg models.ShareButtons, page string) bool {
	if !cfg.Enabled {
		return false
	}
	return slices.Contains(cfg.DisplayPages, page) || slices.Contains(cfg.DisplayPages, PageAll)
}

// ShareLinks returns the share buttons for a page, or nil when sharing is
// not shown there. Pinterest needs an image and is skipped without one.
func ShareLinks(cfg models.ShareButtons, page string, t Target) []Link {
	if !Visible(cfg, page) {
		return nil
	}

	platforms := cfg.Platforms
	if len(platforms) == 0 {
		platforms = defaultPlatforms
	}

	var links []Link
	for _, p := range platforms {
		if p == Native {
			links = append(links, Link{Platform: Native, Label: "Share"})
			continue
		}
		b, ok := builders[p]
		if !ok {
			continue
		}
		if p == "pinterest" && t.Image == "" {
			continue
		}
		links = append(links, Link{Platform: p, Label: b.label, URL: b.build(t)})
	}
	return links
}

// Profiles returns the enabled social profiles that have a URL.
func Profiles(settings *models.SiteSettings) []models.SocialPlatform {
	if settings == nil {
		return nil
	}
	var out []models.SocialPlatform
	for _, p := range settings.SocialMedia.Platforms {
		if p.Enabled && p.URL != "" {
			out = append(out, p)
		}
	}
	return out
}
