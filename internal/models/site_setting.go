// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BusinessHours is one line of the opening-hours list.
type BusinessHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// SocialPlatform is a social profile link shown in the footer.
type SocialPlatform struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Handle   string `json:"handle,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// SocialMedia wraps the configured social profiles.
type SocialMedia struct {
	Platforms []SocialPlatform `json:"platforms,omitempty"`
}

// ShareButtons configures the page share bar. DisplayPages holds page
// keys (menu, services, fundraising, dynamicPages) or "all".
type ShareButtons struct {
	Enabled          bool     `json:"enabled"`
	Platforms        []string `json:"platforms,omitempty"`
	DisplayPages     []string `json:"displayPages,omitempty"`
	PinterestEnabled bool     `json:"pinterestEnabled,omitempty"`
}

// SiteSettings is the singleton settings document.
type SiteSettings struct {
	ID                    string          `json:"_id,omitempty"`
	Title                 string          `json:"title,omitempty"`
	Description           string          `json:"description,omitempty"`
	Phone                 string          `json:"phone,omitempty"`
	Email                 string          `json:"email,omitempty"`
	Address               string          `json:"address,omitempty"`
	Hours                 []BusinessHours `json:"hours,omitempty"`
	SocialMedia           SocialMedia     `json:"socialMedia"`
	ShareButtons          ShareButtons    `json:"shareButtons"`
	ContactFormRecipients []string        `json:"contactFormRecipients,omitempty"`
	Logo                  *Image          `json:"logo,omitempty"`
}
