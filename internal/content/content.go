// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content defines the read-only query catalog that pages are
// built from, and helpers for fetching several results at once.
package content

import (
	"context"

	"chriscakes/internal/models"
)

// Source is the fixed catalog of content queries. Implementations decode
// results into the model shapes and apply the filtering and ordering each
// query names, nothing more. Single-document queries return (nil, nil)
// when the document does not exist.
type Source interface {
	// PageBySlug returns the page whose slug matches.
	PageBySlug(ctx context.Context, slug string) (*models.Page, error)
	// AllPages lists every page's id, title and slug.
	AllPages(ctx context.Context) ([]models.PageRef, error)
	// MenuCategories returns categories by ascending order.
	MenuCategories(ctx context.Context) ([]models.MenuCategory, error)
	// MenuItems returns available items by ascending order with their
	// category dereferenced.
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
	// MenuItemsByCategory is MenuItems restricted to one category slug.
	MenuItemsByCategory(ctx context.Context, categorySlug string) ([]models.MenuItem, error)
	// FeaturedMenuItems returns available, featured items by order.
	FeaturedMenuItems(ctx context.Context) ([]models.MenuItem, error)
	// FAQs returns every FAQ by order.
	FAQs(ctx context.Context) ([]models.FAQ, error)
	// FeaturedTestimonials returns featured testimonials by order.
	FeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error)
	// SiteSettings returns the settings singleton.
	SiteSettings(ctx context.Context) (*models.SiteSettings, error)
}

// Snapshot is a complete copy of the content, including unavailable menu
// items. It is the unit of import into the Postgres mirror.
type Snapshot struct {
	Pages        []models.Page
	Categories   []models.MenuCategory
	Items        []models.MenuItem
	FAQs         []models.FAQ
	Testimonials []models.Testimonial
	Settings     *models.SiteSettings
}
