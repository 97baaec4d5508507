// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package menu holds presentation helpers for menu items: price display
// and grouping by category.
package menu

import (
	"github.com/dustin/go-humanize"

	"chriscakes/internal/models"
)

// CallForPricing is shown for items without a positive price.
const CallForPricing = "Call for pricing!"

// OtherItems titles the group of items without a known category.
const OtherItems = "Other Items"

// FormatPrice renders a price as "$12.50". A nil price, zero and
// negative values all display as CallForPricing.
func FormatPrice(price *float64) string {
	if price == nil || *price <= 0 {
		return CallForPricing
	}
	return "$" + humanize.FormatFloat("#,###.##", *price)
}

// Group is one category heading with its items.
type Group struct {
	Title       string
	Slug        string
	Description string
	Items       []models.MenuItem
}

// GroupByCategory buckets items under their categories in category order.
// Items whose category is missing or unknown go into a trailing
// OtherItems group. Empty groups are dropped.
func GroupByCategory(items []models.MenuItem, categories []models.MenuCategory) []Group {
	groups := make([]Group, len(categories))
	byID := make(map[string]int, len(categories))
	bySlug := make(map[string]int, len(categories))
	for i, c := range categories {
		groups[i] = Group{Title: c.Title, Slug: c.Slug.Current, Description: c.Description}
		if c.ID != "" {
			byID[c.ID] = i
		}
		if c.Slug.Current != "" {
			bySlug[c.Slug.Current] = i
		}
	}

	var other []models.MenuItem
	for _, item := range items {
		idx, ok := categoryIndex(item.Category, byID, bySlug)
		if !ok {
			other = append(other, item)
			continue
		}
		groups[idx].Items = append(groups[idx].Items, item)
	}

	out := make([]Group, 0, len(groups)+1)
	for _, g := range groups {
		if len(g.Items) > 0 {
			out = append(out, g)
		}
	}
	if len(other) > 0 {
		out = append(out, Group{Title: OtherItems, Items: other})
	}
	return out
}

func categoryIndex(ref *models.CategoryRef, byID, bySlug map[string]int) (int, bool) {
	if ref == nil {
		return 0, false
	}
	if i, ok := byID[ref.ID]; ok && ref.ID != "" {
		return i, true
	}
	if i, ok := bySlug[ref.Slug.Current]; ok && ref.Slug.Current != "" {
		return i, true
	}
	return 0, false
}

// Featured returns up to limit items, keeping input order. A limit of
// zero or less returns all items.
func Featured(items []models.MenuItem, limit int) []models.MenuItem {
	if limit <= 0 || len(items) <= limit {
		return items
	}
	return items[:limit]
}
