// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the content shapes read from the content store.
// Field names and JSON tags follow the store's document format (_id, _key,
// _type, slug.current, asset._ref) so query results decode without mapping.
package models

// Slug is the store's slug object ({"current": "..."}).
type Slug struct {
	Current string `json:"current"`
}

// AssetRef points at an uploaded asset by its store reference.
type AssetRef struct {
	Ref string `json:"_ref"`
}

// Image is an image field with optional accessibility text and caption.
type Image struct {
	Asset   *AssetRef `json:"asset,omitempty"`
	Alt     string    `json:"alt,omitempty"`
	Caption string    `json:"caption,omitempty"`
}

// Ref returns the asset reference, or "" when the image has no asset.
func (i *Image) Ref() string {
	if i == nil || i.Asset == nil {
		return ""
	}
	return i.Asset.Ref
}

// PageSEO holds optional per-page search metadata overrides.
type PageSEO struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	OGImage         *Image `json:"ogImage,omitempty"`
}

// Page is a CMS-authored page. Slug uniquely identifies the page for
// routing; Sections are kept in display order.
type Page struct {
	ID       string   `json:"_id"`
	Title    string   `json:"title"`
	Slug     Slug     `json:"slug"`
	Sections Sections `json:"sections"`
	SEO      *PageSEO `json:"seo,omitempty"`
}

// PageRef is the lightweight listing shape returned by the all-pages query.
type PageRef struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  Slug   `json:"slug"`
}

// FAQ is a single question/answer pair. Answer is Markdown.
type FAQ struct {
	ID       string  `json:"_id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Category string  `json:"category,omitempty"`
	Order    float64 `json:"order"`
}

// Testimonial is a customer quote. Rating is 1-5; zero means unrated.
type Testimonial struct {
	ID          string  `json:"_id"`
	Quote       string  `json:"quote"`
	Author      string  `json:"author"`
	AuthorTitle string  `json:"authorTitle,omitempty"`
	Rating      int     `json:"rating,omitempty"`
	Featured    bool    `json:"featured"`
	Order       float64 `json:"order"`
}
