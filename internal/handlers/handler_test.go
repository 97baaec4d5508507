// handler_test.go provides shared test infrastructure for handler tests.
// Content comes from an in-memory fake; tests that need Valkey are skipped
// when it is unavailable.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"chriscakes/internal/assets"
	"chriscakes/internal/cache"
	"chriscakes/internal/models"
	"chriscakes/internal/render"
	"chriscakes/internal/richtext"
	"chriscakes/internal/sections"
	"chriscakes/internal/seo"
)

var errUnavailable = errors.New("content store unavailable")

// fakeSource is an in-memory content.Source. Setting err makes every
// query fail; pageErr fails only PageBySlug.
type fakeSource struct {
	mu           sync.Mutex
	pages        map[string]*models.Page
	categories   []models.MenuCategory
	items        []models.MenuItem
	faqs         []models.FAQ
	testimonials []models.Testimonial
	settings     *models.SiteSettings
	err          error
	pageErr      error
	pageCalls    int
}

func (f *fakeSource) PageBySlug(_ context.Context, slug string) (*models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.pages[slug], nil
}

func (f *fakeSource) AllPages(context.Context) ([]models.PageRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	var refs []models.PageRef
	for _, p := range f.pages {
		refs = append(refs, models.PageRef{ID: p.ID, Title: p.Title, Slug: p.Slug})
	}
	return refs, nil
}

func (f *fakeSource) MenuCategories(context.Context) ([]models.MenuCategory, error) {
	return f.categories, f.err
}

func (f *fakeSource) MenuItems(context.Context) ([]models.MenuItem, error) {
	return f.items, f.err
}

func (f *fakeSource) MenuItemsByCategory(_ context.Context, categorySlug string) ([]models.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.MenuItem
	for _, it := range f.items {
		if it.Category != nil && it.Category.Slug.Current == categorySlug {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeSource) FeaturedMenuItems(context.Context) ([]models.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.MenuItem
	for _, it := range f.items {
		if it.Featured {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeSource) FAQs(context.Context) ([]models.FAQ, error) {
	return f.faqs, f.err
}

func (f *fakeSource) FeaturedTestimonials(context.Context) ([]models.Testimonial, error) {
	return f.testimonials, f.err
}

func (f *fakeSource) SiteSettings(context.Context) (*models.SiteSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

func price(v float64) *float64 { return &v }

func textContent(text string) models.RichText {
	return models.RichText{{
		Type:     models.BlockTypeText,
		Style:    "normal",
		Children: []models.Span{{Type: "span", Text: text}},
	}}
}

// newFakeSource returns a source with a small but complete site.
func newFakeSource() *fakeSource {
	breakfast := &models.CategoryRef{ID: "cat-breakfast", Title: "Breakfast", Slug: models.Slug{Current: "breakfast"}}
	fundraising := &models.CategoryRef{ID: "cat-fund", Title: "Fundraising Menus", Slug: models.Slug{Current: "fundraising-menus"}}

	return &fakeSource{
		pages: map[string]*models.Page{
			"about": {
				ID:    "page-about",
				Title: "About Us",
				Slug:  models.Slug{Current: "about"},
				Sections: models.Sections{
					&models.TextSection{Key: "a1", Title: "Our Story", Content: textContent("Flipping since 1969")},
					&models.UnknownSection{Key: "a2", Type: "carousel"},
				},
			},
			"services": {
				ID:       "page-services",
				Title:    "Services",
				Slug:     models.Slug{Current: "services"},
				Sections: models.Sections{&models.TextSection{Key: "s1", Content: textContent("Groups of 50 to 50,000")}},
			},
			"fundraising": {
				ID:       "page-fundraising",
				Title:    "Fundraising",
				Slug:     models.Slug{Current: "fundraising"},
				Sections: models.Sections{&models.TextSection{Key: "f1", Content: textContent("Raise money with pancakes")}},
				SEO:      &models.PageSEO{MetaTitle: "Pancake Fundraisers"},
			},
		},
		categories: []models.MenuCategory{
			{ID: "cat-breakfast", Title: "Breakfast", Slug: models.Slug{Current: "breakfast"}, Order: 1},
			{ID: "cat-fund", Title: "Fundraising Menus", Slug: models.Slug{Current: "fundraising-menus"}, Order: 2},
		},
		items: []models.MenuItem{
			{ID: "i1", Name: "Easy Breezy", Slug: models.Slug{Current: "easy-breezy"}, Price: price(8.5), Category: breakfast, Available: true},
			{ID: "i2", Name: "Big Chris", Slug: models.Slug{Current: "big-chris"}, Price: price(12.5), Category: breakfast, Available: true, Featured: true},
			{ID: "i3", Name: "Hot Dog Bash", Slug: models.Slug{Current: "hot-dog-bash"}, Category: fundraising, Available: true},
		},
		faqs: []models.FAQ{
			{ID: "q1", Question: "How far do you travel?", Answer: "Anywhere in **Michigan**."},
		},
		testimonials: []models.Testimonial{
			{ID: "t1", Quote: "Best pancakes we ever served", Author: "Pat", Rating: 5, Featured: true},
		},
		settings: &models.SiteSettings{
			Title:   "Chris Cakes of Michigan",
			Phone:   "989-802-0755",
			Email:   "info@chriscakesofmi.com",
			Address: "Clare, MI",
			ShareButtons: models.ShareButtons{
				Enabled:      true,
				Platforms:    []string{"facebook", "twitter"},
				DisplayPages: []string{"menu", "dynamicPages"},
			},
		},
	}
}

var testSite = seo.Site{Name: "ChrisCakes", URL: "https://chriscakes.com", Description: "Pancakes by the millions"}

// newTestPublic builds a Public handler group over src.
func newTestPublic(t *testing.T, src *fakeSource, pageCache *cache.PageCache) *Public {
	t.Helper()
	images := assets.Static{Prefix: "/static/images"}
	rn, err := render.New(images)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	secs, err := sections.New(richtext.New(images), images)
	if err != nil {
		t.Fatalf("sections.New: %v", err)
	}
	return NewPublic(src, rn, secs, images, testSite, pageCache)
}

// get routes a GET request through a chi router so URL params resolve.
func get(t *testing.T, p *Public, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/", p.Home)
	r.Get("/menu", p.Menu)
	r.Get("/contact", p.Contact)
	r.Get("/services", p.Services)
	r.Get("/fundraising", p.Fundraising)
	r.Get("/{slug}", p.Page)
	r.NotFound(p.NotFound)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func testPageCache(t *testing.T) *cache.PageCache {
	t.Helper()
	pc := cache.NewPageCache(testValkeyClient(t), time.Minute)
	pc.InvalidateAll(context.Background())
	return pc
}
