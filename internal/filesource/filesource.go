// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package filesource serves the content query catalog from a directory
// of YAML documents. It backs local development, the static export and
// the Postgres seed.
//
// Layout:
//
//	settings.yaml       site settings document
//	menu.yaml           {categories: [...], items: [...]}
//	faqs.yaml           list of FAQs
//	testimonials.yaml   list of testimonials
//	pages/<slug>.yaml   one page per file
//
// Documents use the same field names as the content store (_id, slug.current,
// _type, _key). Missing files yield empty results.
package filesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"chriscakes/internal/content"
	"chriscakes/internal/models"
	"chriscakes/internal/slug"
)

// Source is a content.Source over a YAML document tree. Results are
// served from an in-memory snapshot that Reload replaces atomically.
type Source struct {
	fsys fs.FS
	dir  string // on-disk root; empty for embedded trees

	mu   sync.RWMutex
	snap *content.Snapshot
}

var _ content.Source = (*Source)(nil)

// New loads the document tree rooted at fsys.
func New(fsys fs.FS) (*Source, error) {
	s := &Source{fsys: fsys}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open loads the document tree in dir. Sources opened this way can Watch.
func Open(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	s := &Source{fsys: os.DirFS(dir), dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every document. On error the previous snapshot stays
// in place.
func (s *Source) Reload() error {
	snap, err := load(s.fsys)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current content, including unavailable menu items.
// The snapshot is shared and must not be modified.
func (s *Source) Snapshot() *content.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// PageBySlug implements content.Source.
func (s *Source) PageBySlug(_ context.Context, pageSlug string) (*models.Page, error) {
	for _, p := range s.Snapshot().Pages {
		if p.Slug.Current == pageSlug {
			return &p, nil
		}
	}
	return nil, nil
}

// AllPages implements content.Source.
func (s *Source) AllPages(_ context.Context) ([]models.PageRef, error) {
	pages := s.Snapshot().Pages
	refs := make([]models.PageRef, 0, len(pages))
	for _, p := range pages {
		refs = append(refs, models.PageRef{ID: p.ID, Title: p.Title, Slug: p.Slug})
	}
	return refs, nil
}

// MenuCategories implements content.Source.
func (s *Source) MenuCategories(_ context.Context) ([]models.MenuCategory, error) {
	return slices.Clone(s.Snapshot().Categories), nil
}

// MenuItems implements content.Source.
func (s *Source) MenuItems(_ context.Context) ([]models.MenuItem, error) {
	return s.items(func(*models.MenuItem) bool { return true }), nil
}

// MenuItemsByCategory implements content.Source.
func (s *Source) MenuItemsByCategory(_ context.Context, categorySlug string) ([]models.MenuItem, error) {
	return s.items(func(m *models.MenuItem) bool {
		return m.Category != nil && m.Category.Slug.Current == categorySlug
	}), nil
}

// FeaturedMenuItems implements content.Source.
func (s *Source) FeaturedMenuItems(_ context.Context) ([]models.MenuItem, error) {
	return s.items(func(m *models.MenuItem) bool { return m.Featured }), nil
}

// items returns available items matching keep, in snapshot order.
func (s *Source) items(keep func(*models.MenuItem) bool) []models.MenuItem {
	var out []models.MenuItem
	for _, m := range s.Snapshot().Items {
		if m.Available && keep(&m) {
			out = append(out, m)
		}
	}
	return out
}

// FAQs implements content.Source.
func (s *Source) FAQs(_ context.Context) ([]models.FAQ, error) {
	return slices.Clone(s.Snapshot().FAQs), nil
}

// FeaturedTestimonials implements content.Source.
func (s *Source) FeaturedTestimonials(_ context.Context) ([]models.Testimonial, error) {
	var out []models.Testimonial
	for _, t := range s.Snapshot().Testimonials {
		if t.Featured {
			out = append(out, t)
		}
	}
	return out, nil
}

// SiteSettings implements content.Source.
func (s *Source) SiteSettings(_ context.Context) (*models.SiteSettings, error) {
	settings := s.Snapshot().Settings
	if settings == nil {
		return nil, nil
	}
	cp := *settings
	return &cp, nil
}

// menuFile is the shape of menu.yaml.
type menuFile struct {
	Categories []models.MenuCategory `json:"categories"`
	Items      []models.MenuItem     `json:"items"`
}

func load(fsys fs.FS) (*content.Snapshot, error) {
	snap := &content.Snapshot{}

	var menu menuFile
	if err := decodeFile(fsys, "menu.yaml", &menu); err != nil {
		return nil, err
	}
	snap.Categories = menu.Categories
	snap.Items = menu.Items

	if err := decodeFile(fsys, "faqs.yaml", &snap.FAQs); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "testimonials.yaml", &snap.Testimonials); err != nil {
		return nil, err
	}

	if err := decodeFile(fsys, "settings.yaml", &snap.Settings); err != nil {
		return nil, err
	}

	pages, err := loadPages(fsys)
	if err != nil {
		return nil, err
	}
	snap.Pages = pages

	normalize(snap)
	return snap, nil
}

func loadPages(fsys fs.FS) ([]models.Page, error) {
	entries, err := fs.ReadDir(fsys, "pages")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}

	var pages []models.Page
	seen := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isYAML(name) {
			continue
		}
		var p models.Page
		if err := decodeFile(fsys, path.Join("pages", name), &p); err != nil {
			return nil, err
		}
		if p.Slug.Current == "" {
			p.Slug.Current = strings.TrimSuffix(name, path.Ext(name))
		}
		if prev, dup := seen[p.Slug.Current]; dup {
			return nil, fmt.Errorf("pages/%s: slug %q already used by %s", name, p.Slug.Current, prev)
		}
		seen[p.Slug.Current] = name
		pages = append(pages, p)
	}
	return pages, nil
}

// normalize fills generated ids and slugs, sorts every list by its order
// field and dereferences item categories. Item references that match no
// category leave the item uncategorized.
func normalize(snap *content.Snapshot) {
	for i := range snap.Pages {
		p := &snap.Pages[i]
		if p.ID == "" {
			p.ID = "page-" + p.Slug.Current
		}
	}
	sort.SliceStable(snap.Pages, func(i, j int) bool {
		return snap.Pages[i].Slug.Current < snap.Pages[j].Slug.Current
	})

	byID := map[string]*models.MenuCategory{}
	bySlug := map[string]*models.MenuCategory{}
	sort.SliceStable(snap.Categories, func(i, j int) bool {
		return snap.Categories[i].Order < snap.Categories[j].Order
	})
	for i := range snap.Categories {
		c := &snap.Categories[i]
		if c.Slug.Current == "" {
			c.Slug.Current = slug.Generate(c.Title)
		}
		if c.ID == "" {
			c.ID = "category-" + c.Slug.Current
		}
		byID[c.ID] = c
		bySlug[c.Slug.Current] = c
	}

	sort.SliceStable(snap.Items, func(i, j int) bool {
		return snap.Items[i].Order < snap.Items[j].Order
	})
	for i := range snap.Items {
		m := &snap.Items[i]
		if m.Slug.Current == "" {
			m.Slug.Current = slug.Generate(m.Name)
		}
		if m.ID == "" {
			m.ID = "item-" + m.Slug.Current
		}
		if m.Category == nil {
			continue
		}
		c, ok := byID[m.Category.ID]
		if !ok {
			c, ok = bySlug[m.Category.Slug.Current]
		}
		if !ok {
			slog.Warn("menu item category not found", "item", m.Name, "ref", m.Category.ID)
			m.Category = nil
			continue
		}
		m.Category = &models.CategoryRef{ID: c.ID, Title: c.Title, Slug: c.Slug}
	}

	sort.SliceStable(snap.FAQs, func(i, j int) bool { return snap.FAQs[i].Order < snap.FAQs[j].Order })
	for i := range snap.FAQs {
		if snap.FAQs[i].ID == "" {
			snap.FAQs[i].ID = fmt.Sprintf("faq-%d", i+1)
		}
	}

	sort.SliceStable(snap.Testimonials, func(i, j int) bool {
		return snap.Testimonials[i].Order < snap.Testimonials[j].Order
	})
	for i := range snap.Testimonials {
		if snap.Testimonials[i].ID == "" {
			snap.Testimonials[i].ID = fmt.Sprintf("testimonial-%d", i+1)
		}
	}
}

// decodeFile reads a YAML document into dst through its JSON form, so the
// models' JSON tags and custom decoders apply unchanged. A missing file
// leaves dst untouched.
func decodeFile(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	if doc == nil {
		return nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

func isYAML(name string) bool {
	ext := path.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
