// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"chriscakes/internal/models"
)

// MenuCategories returns all categories by ascending sort order.
func (s *Store) MenuCategories(ctx context.Context) ([]models.MenuCategory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, slug, description, sort_order, image
		FROM menu_categories
		ORDER BY sort_order ASC, title ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list menu categories: %w", err)
	}
	defer rows.Close()

	categories := []models.MenuCategory{}
	for rows.Next() {
		var (
			c     models.MenuCategory
			image []byte
		)
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug.Current, &c.Description, &c.Order, &image); err != nil {
			return nil, fmt.Errorf("scan menu category: %w", err)
		}
		if err := decodeJSON(image, &c.Image, "category image"); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// menuItemSelect joins each item with its category so the reference is
// returned dereferenced.
const menuItemSelect = `
	SELECT i.id, i.name, i.slug, i.description, i.price, i.image,
	       i.available, i.featured, i.sort_order, i.allergens,
	       c.id, c.title, c.slug
	FROM menu_items i
	LEFT JOIN menu_categories c ON c.id = i.category_id
`

// MenuItems returns available items by ascending sort order.
func (s *Store) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.queryItems(ctx, "list menu items",
		menuItemSelect+` WHERE i.available ORDER BY i.sort_order ASC, i.name ASC`)
}

// MenuItemsByCategory returns available items in the category with the
// given slug.
func (s *Store) MenuItemsByCategory(ctx context.Context, categorySlug string) ([]models.MenuItem, error) {
	return s.queryItems(ctx, "list menu items by category",
		menuItemSelect+` WHERE i.available AND c.slug = $1 ORDER BY i.sort_order ASC, i.name ASC`,
		categorySlug)
}

// FeaturedMenuItems returns available, featured items.
func (s *Store) FeaturedMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.queryItems(ctx, "list featured menu items",
		menuItemSelect+` WHERE i.available AND i.featured ORDER BY i.sort_order ASC, i.name ASC`)
}

func (s *Store) queryItems(ctx context.Context, what, query string, args ...any) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var (
			item                     models.MenuItem
			price                    sql.NullFloat64
			image, allergens         []byte
			catID, catTitle, catSlug sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Slug.Current, &item.Description, &price, &image,
			&item.Available, &item.Featured, &item.Order, &allergens,
			&catID, &catTitle, &catSlug,
		); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}

		if price.Valid {
			p := price.Float64
			item.Price = &p
		}
		if catID.Valid {
			item.Category = &models.CategoryRef{
				ID:    catID.String,
				Title: catTitle.String,
				Slug:  models.Slug{Current: catSlug.String},
			}
		}
		if err := decodeJSON(image, &item.Image, "menu item image"); err != nil {
			return nil, err
		}
		if err := decodeJSON(allergens, &item.Allergens, "menu item allergens"); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
