// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chriscakes/internal/models"
)

// PageBySlug returns the page with the given slug, or nil if none exists.
func (s *Store) PageBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var (
		p        models.Page
		sections []byte
		seo      []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, sections, seo
		FROM pages WHERE slug = $1
	`, slug).Scan(&p.ID, &p.Title, &p.Slug.Current, &sections, &seo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}

	if err := decodeJSON(sections, &p.Sections, "page sections"); err != nil {
		return nil, err
	}
	if err := decodeJSON(seo, &p.SEO, "page seo"); err != nil {
		return nil, err
	}
	return &p, nil
}

// AllPages lists every page, ordered by slug for stable output.
func (s *Store) AllPages(ctx context.Context) ([]models.PageRef, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, slug FROM pages ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	pages := []models.PageRef{}
	for rows.Next() {
		var p models.PageRef
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug.Current); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
