// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"chriscakes/internal/content"
	"chriscakes/internal/models"
)

// ImportStats counts the rows written by Import.
type ImportStats struct {
	Pages        int
	Categories   int
	Items        int
	FAQs         int
	Testimonials int
}

// Import replaces the whole mirror with snap in one transaction.
// Documents without an id get a random UUID. Item category references
// that do not resolve to an imported category are stored as NULL.
func (s *Store) Import(ctx context.Context, snap *content.Snapshot) (ImportStats, error) {
	var stats ImportStats
	if snap == nil {
		return stats, fmt.Errorf("import: nil snapshot")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("import begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"menu_items", "menu_categories", "pages", "faqs", "testimonials"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return stats, fmt.Errorf("import clear %s: %w", table, err)
		}
	}

	for _, p := range snap.Pages {
		if err := insertPage(ctx, tx, p); err != nil {
			return stats, err
		}
		stats.Pages++
	}

	categoryIDs := map[string]string{}
	for _, c := range snap.Categories {
		id := idOr(c.ID)
		image, err := encodeJSON(c.Image)
		if err != nil {
			return stats, fmt.Errorf("encode category image: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO menu_categories (id, title, slug, description, sort_order, image)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, c.Title, c.Slug.Current, c.Description, c.Order, image,
		); err != nil {
			return stats, fmt.Errorf("import category %q: %w", c.Title, err)
		}
		categoryIDs[id] = id
		if c.ID != "" {
			categoryIDs[c.ID] = id
		}
		categoryIDs["slug:"+c.Slug.Current] = id
		stats.Categories++
	}

	for _, item := range snap.Items {
		if err := insertItem(ctx, tx, item, categoryIDs); err != nil {
			return stats, err
		}
		stats.Items++
	}

	for _, f := range snap.FAQs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO faqs (id, question, answer, category, sort_order)
			VALUES ($1, $2, $3, $4, $5)`,
			idOr(f.ID), f.Question, f.Answer, f.Category, f.Order,
		); err != nil {
			return stats, fmt.Errorf("import faq %q: %w", f.Question, err)
		}
		stats.FAQs++
	}

	for _, t := range snap.Testimonials {
		var rating sql.NullInt32
		if t.Rating != 0 {
			rating = sql.NullInt32{Int32: int32(t.Rating), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO testimonials (id, quote, author, author_title, rating, featured, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			idOr(t.ID), t.Quote, t.Author, t.AuthorTitle, rating, t.Featured, t.Order,
		); err != nil {
			return stats, fmt.Errorf("import testimonial by %q: %w", t.Author, err)
		}
		stats.Testimonials++
	}

	if err := saveSettings(ctx, tx, snap.Settings); err != nil {
		return stats, err
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("import commit: %w", err)
	}

	slog.Info("content mirror imported",
		"pages", stats.Pages,
		"categories", stats.Categories,
		"items", stats.Items,
		"faqs", stats.FAQs,
		"testimonials", stats.Testimonials,
	)
	return stats, nil
}

func insertPage(ctx context.Context, tx *sql.Tx, p models.Page) error {
	sections, err := encodeJSON(p.Sections)
	if err != nil {
		return fmt.Errorf("encode sections of %q: %w", p.Slug.Current, err)
	}
	seo, err := encodeJSON(p.SEO)
	if err != nil {
		return fmt.Errorf("encode seo of %q: %w", p.Slug.Current, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (id, title, slug, sections, seo)
		VALUES ($1, $2, $3, $4, $5)`,
		idOr(p.ID), p.Title, p.Slug.Current, sections, seo,
	); err != nil {
		return fmt.Errorf("import page %q: %w", p.Slug.Current, err)
	}
	return nil
}

func insertItem(ctx context.Context, tx *sql.Tx, item models.MenuItem, categoryIDs map[string]string) error {
	var categoryID sql.NullString
	if ref := item.Category; ref != nil {
		id, ok := categoryIDs[ref.ID]
		if !ok || ref.ID == "" {
			id, ok = categoryIDs["slug:"+ref.Slug.Current]
		}
		if ok {
			categoryID = sql.NullString{String: id, Valid: true}
		} else {
			slog.Warn("menu item category not found, importing uncategorized",
				"item", item.Name, "category", ref.Title)
		}
	}

	var price sql.NullFloat64
	if item.Price != nil {
		price = sql.NullFloat64{Float64: *item.Price, Valid: true}
	}
	image, err := encodeJSON(item.Image)
	if err != nil {
		return fmt.Errorf("encode image of %q: %w", item.Name, err)
	}
	allergens := item.Allergens
	if allergens == nil {
		allergens = []string{}
	}
	allergensJSON, err := encodeJSON(allergens)
	if err != nil {
		return fmt.Errorf("encode allergens of %q: %w", item.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, slug, description, price, image, category_id,
		                        available, featured, sort_order, allergens)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		idOr(item.ID), item.Name, item.Slug.Current, item.Description, price, image, categoryID,
		item.Available, item.Featured, item.Order, allergensJSON,
	); err != nil {
		return fmt.Errorf("import menu item %q: %w", item.Name, err)
	}
	return nil
}

func idOr(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
