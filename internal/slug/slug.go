// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug generates and validates URL path slugs for pages and menu
// categories.
package slug

import (
	"regexp"
	"strings"
)

// MaxLength bounds slugs accepted from request paths.
const MaxLength = 96

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace      = regexp.MustCompile(`\s+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	valid           = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Generate creates a slug from a title: "Menus N More!" → "menus-n-more".
// Slashes separate words so "Taco Bar/ Nacho Bar" keeps both halves.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = strings.NewReplacer("/", " ", "&", " and ", "_", " ").Replace(result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(strings.TrimSpace(result), "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is a well-formed slug: lowercase alphanumeric
// words joined by single hyphens, at most MaxLength bytes.
func Valid(s string) bool {
	return len(s) <= MaxLength && valid.MatchString(s)
}
