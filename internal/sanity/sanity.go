// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanity reads content from the hosted content store's HTTP query
// API. It implements content.Source.
package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"chriscakes/internal/models"
)

// Config selects the project and dataset to query.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string // e.g. "2024-01-01"
	Token      string // optional; sent as a bearer token
	UseCDN     bool
	BaseURL    string // overrides the derived API origin, mainly for tests
}

// Client queries the content store.
type Client struct {
	config Config
	client *http.Client
}

// New creates a Client. ProjectID is required unless BaseURL is set.
func New(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" && cfg.BaseURL == "" {
		return nil, errors.New("sanity: project id is required")
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "production"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-01-01"
	}
	if cfg.BaseURL == "" {
		host := "api.sanity.io"
		// Authenticated requests bypass the CDN.
		if cfg.UseCDN && cfg.Token == "" {
			host = "apicdn.sanity.io"
		}
		cfg.BaseURL = "https://" + cfg.ProjectID + "." + host
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// queryResponse is the API envelope.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// errorBodyLimit caps how much of an error response ends up in the error.
const errorBodyLimit = 512

// query runs a GROQ query and decodes its result into dst. Parameters are
// JSON-encoded as $name query-string values. A null result leaves dst
// untouched and reports found=false.
func (c *Client) query(ctx context.Context, groq string, params map[string]any, dst any) (found bool, err error) {
	q := url.Values{}
	q.Set("query", groq)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return false, fmt.Errorf("sanity encode param %s: %w", name, err)
		}
		q.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s",
		c.config.BaseURL, c.config.APIVersion, url.PathEscape(c.config.Dataset), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("sanity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("sanity http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return false, fmt.Errorf("sanity API error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return false, fmt.Errorf("sanity decode: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(envelope.Result, dst); err != nil {
		return false, fmt.Errorf("sanity unmarshal result: %w", err)
	}
	return true, nil
}

// list runs a query returning an array. A null result yields an empty slice.
func list[T any](ctx context.Context, c *Client, groq string, params map[string]any) ([]T, error) {
	out := []T{}
	if _, err := c.query(ctx, groq, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// one runs a query returning a single document, nil when absent.
func one[T any](ctx context.Context, c *Client, groq string, params map[string]any) (*T, error) {
	var out T
	found, err := c.query(ctx, groq, params, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PageBySlug(ctx context.Context, slug string) (*models.Page, error) {
	return one[models.Page](ctx, c, pageBySlugQuery, map[string]any{"slug": slug})
}

func (c *Client) AllPages(ctx context.Context) ([]models.PageRef, error) {
	return list[models.PageRef](ctx, c, allPagesQuery, nil)
}

func (c *Client) MenuCategories(ctx context.Context) ([]models.MenuCategory, error) {
	return list[models.MenuCategory](ctx, c, menuCategoriesQuery, nil)
}

func (c *Client) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return list[models.MenuItem](ctx, c, menuItemsQuery, nil)
}

func (c *Client) MenuItemsByCategory(ctx context.Context, categorySlug string) ([]models.MenuItem, error) {
	return list[models.MenuItem](ctx, c, menuItemsByCategoryQuery, map[string]any{"categorySlug": categorySlug})
}

func (c *Client) FeaturedMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return list[models.MenuItem](ctx, c, featuredMenuItemsQuery, nil)
}

func (c *Client) FAQs(ctx context.Context) ([]models.FAQ, error) {
	return list[models.FAQ](ctx, c, faqsQuery, nil)
}

func (c *Client) FeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return list[models.Testimonial](ctx, c, featuredTestimonialsQuery, nil)
}

func (c *Client) SiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	return one[models.SiteSettings](ctx, c, siteSettingsQuery, nil)
}
