// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// MenuCategory groups menu items. Display order is ascending Order.
type MenuCategory struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Slug        Slug    `json:"slug"`
	Description string  `json:"description,omitempty"`
	Order       float64 `json:"order"`
	Image       *Image  `json:"image,omitempty"`
}

// CategoryRef is the dereferenced category embedded in a menu item.
type CategoryRef struct {
	ID    string `json:"_id,omitempty"`
	Title string `json:"title"`
	Slug  Slug   `json:"slug"`
}

// MenuItem is a single dish or package. A nil Price means "call for
// pricing" and is distinct from an explicit zero.
type MenuItem struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Slug        Slug         `json:"slug"`
	Description string       `json:"description,omitempty"`
	Price       *float64     `json:"price"`
	Image       *Image       `json:"image,omitempty"`
	Category    *CategoryRef `json:"category,omitempty"`
	Available   bool         `json:"available"`
	Featured    bool         `json:"featured"`
	Order       float64      `json:"order"`
	Allergens   []string     `json:"allergens,omitempty"`
}

// CategoryTitle returns the item's category title, or "" when uncategorized.
func (m *MenuItem) CategoryTitle() string {
	if m.Category == nil {
		return ""
	}
	return m.Category.Title
}
