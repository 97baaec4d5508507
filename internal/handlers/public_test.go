package handlers

import (
	"net/http"
	"strings"
	"testing"

	"chriscakes/internal/models"
)

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHome(t *testing.T) {
	p := newTestPublic(t, newFakeSource(), nil)
	rec := get(t, p, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
	body := rec.Body.String()
	assertContains(t, body,
		"<title>ChrisCakes - Premier Breakfast Caterer | Michigan Pancake Catering</title>",
		"Featured Menu Items",
		"Best pancakes we ever served",
		`"@type":"Restaurant"`,
		`"@type":"AggregateRating"`,
		`"@type":"Review"`,
	)

	// The first items are shown in menu order.
	if strings.Index(body, "Easy Breezy") > strings.Index(body, "Big Chris") {
		t.Error("items should keep menu order")
	}
}

func TestHomeDegradesOnFetchError(t *testing.T) {
	src := newFakeSource()
	src.err = errUnavailable
	p := newTestPublic(t, src, nil)

	rec := get(t, p, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Featured Menu Items") {
		t.Error("featured section should be hidden when items fail to load")
	}
	assertContains(t, body, "Contact us Today!", `"@type":"Restaurant"`)
}

func TestMenu(t *testing.T) {
	p := newTestPublic(t, newFakeSource(), nil)

	t.Run("grouped", func(t *testing.T) {
		rec := get(t, p, "/menu")
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d", rec.Code)
		}
		body := rec.Body.String()
		assertContains(t, body,
			"Our Menu", "$8.50", "$12.50", "Call for pricing!",
			`"@type":"Menu"`, `"@type":"BreadcrumbList"`,
			"data-share",
		)
		if strings.Index(body, `id="breakfast"`) > strings.Index(body, `id="fundraising-menus"`) {
			t.Error("groups should follow category order")
		}
	})

	t.Run("category filter", func(t *testing.T) {
		body := get(t, p, "/menu?category=fundraising-menus").Body.String()
		assertContains(t, body, "Hot Dog Bash")
		if strings.Contains(body, "Easy Breezy") {
			t.Error("filtered menu should not list other categories")
		}
	})

	t.Run("invalid category shows everything", func(t *testing.T) {
		body := get(t, p, "/menu?category=%3Cscript%3E").Body.String()
		assertContains(t, body, "Easy Breezy", "Hot Dog Bash")
	})

	t.Run("unknown category shows everything", func(t *testing.T) {
		body := get(t, p, "/menu?category=no-such-category").Body.String()
		assertContains(t, body, "Easy Breezy", "Hot Dog Bash")
		if strings.Contains(body, "No menu items available") {
			t.Error("unknown category should not empty the menu")
		}
	})

	t.Run("empty", func(t *testing.T) {
		src := newFakeSource()
		src.items = nil
		body := get(t, newTestPublic(t, src, nil), "/menu").Body.String()
		assertContains(t, body, "No menu items available. Please check back soon!")
		if strings.Contains(body, `"@type":"Menu"`) {
			t.Error("empty menu should not emit Menu JSON-LD")
		}
	})
}

func TestContactPage(t *testing.T) {
	p := newTestPublic(t, newFakeSource(), nil)
	rec := get(t, p, "/contact")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(),
		"Contact Us - ChrisCakes | Book Your Event",
		"Get In Touch",
		`href="tel:9898020755"`,
		"Service Area",
		`<option value="Big Chris">`,
		`<option value="Word of Mouth">`,
	)
}

func TestServices(t *testing.T) {
	p := newTestPublic(t, newFakeSource(), nil)
	rec := get(t, p, "/services")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	assertContains(t, body,
		"<title>Services - ChrisCakes</title>",
		"Groups of 50 to 50,000",
		"How far do you travel?",
		"<strong>Michigan</strong>",
	)
	if strings.Contains(body, "data-share") {
		t.Error("share bar is not enabled for services")
	}
}

func TestServicesWithoutPage(t *testing.T) {
	src := newFakeSource()
	delete(src.pages, "services")
	rec := get(t, newTestPublic(t, src, nil), "/services")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), "Frequently Asked Questions")
}

func TestFundraising(t *testing.T) {
	p := newTestPublic(t, newFakeSource(), nil)
	rec := get(t, p, "/fundraising")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	assertContains(t, body,
		"<title>Pancake Fundraisers</title>",
		"Fundraising menus for schools, churches",
		"Raise money with pancakes",
		"Hot Dog Bash",
	)
	if strings.Contains(body, "Easy Breezy") {
		t.Error("only fundraising items should be listed")
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		name   string
		target string
		setup  func(src *fakeSource)
		status int
		wants  []string
	}{
		{
			name:   "found",
			target: "/about",
			status: http.StatusOK,
			wants: []string{
				"<title>About Us - ChrisCakes</title>",
				"Flipping since 1969",
				`"@type":"BreadcrumbList"`,
				"data-share",
			},
		},
		{
			name:   "missing",
			target: "/missing-page",
			status: http.StatusNotFound,
			wants:  []string{"Page Not Found - ChrisCakes"},
		},
		{
			name:   "invalid slug",
			target: "/Not_A_Slug",
			status: http.StatusNotFound,
			wants:  []string{"Page Not Found"},
		},
		{
			name:   "fetch error",
			target: "/about",
			setup:  func(src *fakeSource) { src.pageErr = errUnavailable },
			status: http.StatusInternalServerError,
			wants:  []string{"Something went wrong", `href="tel:9898020755"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			if tt.setup != nil {
				tt.setup(src)
			}
			rec := get(t, newTestPublic(t, src, nil), tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.status)
			}
			assertContains(t, rec.Body.String(), tt.wants...)
		})
	}
}

func TestPageInvalidSlugSkipsFetch(t *testing.T) {
	src := newFakeSource()
	get(t, newTestPublic(t, src, nil), "/UPPER")
	if src.pageCalls != 0 {
		t.Errorf("invalid slug should not query the store, got %d calls", src.pageCalls)
	}
}

func TestPageSEOOverride(t *testing.T) {
	src := newFakeSource()
	src.pages["about"].SEO = &models.PageSEO{
		MetaTitle:       "About Chris Cakes",
		MetaDescription: "Family owned since 1969",
		OGImage:         &models.Image{Asset: &models.AssetRef{Ref: "about.jpg"}},
	}
	body := get(t, newTestPublic(t, src, nil), "/about").Body.String()
	assertContains(t, body,
		"<title>About Chris Cakes</title>",
		`content="Family owned since 1969"`,
		`<meta property="og:image" content="/static/images/about.jpg">`,
	)
}

func TestSubtitle(t *testing.T) {
	secs := models.Sections{
		&models.CTASection{Key: "c"},
		&models.TextSection{Key: "t", Content: textContent("First lead")},
		&models.TextSection{Key: "t2", Content: textContent("Second")},
	}
	if got := subtitle(secs); got != "First lead" {
		t.Errorf("subtitle = %q", got)
	}
	if got := subtitle(nil); got != "" {
		t.Errorf("subtitle(nil) = %q", got)
	}
}

func TestPageCache(t *testing.T) {
	pc := testPageCache(t)
	src := newFakeSource()
	p := newTestPublic(t, src, pc)

	first := get(t, p, "/about").Body.String()
	src.pages["about"].Title = "Renamed"
	second := get(t, p, "/about").Body.String()
	if first != second {
		t.Error("second request should be served from the cache")
	}

	pc.Invalidate(t.Context(), "/about")
	third := get(t, p, "/about").Body.String()
	if !strings.Contains(third, "Renamed") {
		t.Error("invalidated page should render fresh content")
	}

	// Not-found pages are never cached.
	get(t, p, "/nowhere")
	if _, ok := pc.Get(t.Context(), "/nowhere"); ok {
		t.Error("404 responses must not be cached")
	}
}
