// Integration tests against PostgreSQL. They skip when the database is
// not reachable.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"chriscakes/internal/content"
	"chriscakes/internal/database"
	"chriscakes/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "chriscakes")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "chriscakes")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB connects and migrates, or skips the test when PostgreSQL is
// unavailable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func price(v float64) *float64 { return &v }

func testSnapshot() *content.Snapshot {
	return &content.Snapshot{
		Pages: []models.Page{
			{
				ID: "page-about", Title: "About", Slug: models.Slug{Current: "about"},
				Sections: models.Sections{
					&models.TextSection{Key: "s1", Title: "Since 1969"},
					&models.CTASection{Key: "s2", Heading: "Book", ButtonText: "Go", ButtonLink: "/contact"},
				},
				SEO: &models.PageSEO{MetaTitle: "About ChrisCakes"},
			},
			{ID: "page-services", Title: "Services", Slug: models.Slug{Current: "services"}},
		},
		Categories: []models.MenuCategory{
			{ID: "cat-lunch", Title: "Menus N More", Slug: models.Slug{Current: "menus-n-more"}, Order: 2},
			{ID: "cat-breakfast", Title: "Breakfast", Slug: models.Slug{Current: "breakfast"}, Order: 1},
		},
		Items: []models.MenuItem{
			{ID: "i1", Name: "Big Chris", Price: price(12.5), Available: true, Featured: true, Order: 2,
				Category: &models.CategoryRef{ID: "cat-breakfast"}},
			{ID: "i2", Name: "Easy Breezy", Available: true, Order: 1,
				Category: &models.CategoryRef{Slug: models.Slug{Current: "breakfast"}}},
			{ID: "i3", Name: "Box Lunches", Price: price(9), Available: false, Featured: true, Order: 3,
				Category: &models.CategoryRef{ID: "cat-lunch"}},
			{ID: "i4", Name: "Mystery", Available: true, Order: 4,
				Category: &models.CategoryRef{ID: "cat-missing"}, Allergens: []string{"gluten"}},
		},
		FAQs: []models.FAQ{
			{ID: "f2", Question: "Do you travel?", Answer: "Anywhere in **Michigan**.", Order: 2},
			{ID: "f1", Question: "How far ahead should I book?", Order: 1},
		},
		Testimonials: []models.Testimonial{
			{ID: "t1", Quote: "Amazing", Author: "Pat", Rating: 5, Featured: true, Order: 1},
			{ID: "t2", Quote: "Hidden", Author: "Sam", Featured: false},
			{ID: "t3", Quote: "Great", Author: "Lee", Featured: true, Order: 2},
		},
		Settings: &models.SiteSettings{
			Title:                 "Chris Cakes",
			Phone:                 "989-802-0755",
			ContactFormRecipients: []string{"owner@chriscakes.test"},
		},
	}
}

func importTestSnapshot(t *testing.T) *Store {
	t.Helper()
	s := New(testDB(t))
	stats, err := s.Import(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.Pages != 2 || stats.Items != 4 || stats.Testimonials != 3 {
		t.Errorf("stats: %+v", stats)
	}
	return s
}

func TestPages(t *testing.T) {
	s := importTestSnapshot(t)
	ctx := context.Background()

	page, err := s.PageBySlug(ctx, "about")
	if err != nil {
		t.Fatalf("PageBySlug: %v", err)
	}
	if page == nil || page.Title != "About" || page.SEO == nil || page.SEO.MetaTitle != "About ChrisCakes" {
		t.Fatalf("got %+v", page)
	}
	if len(page.Sections) != 2 || page.Sections[0].SectionKey() != "s1" || page.Sections[1].SectionType() != models.SectionCTA {
		t.Errorf("sections round trip: %+v", page.Sections)
	}

	missing, err := s.PageBySlug(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("missing page: got %+v, %v", missing, err)
	}

	refs, err := s.AllPages(ctx)
	if err != nil {
		t.Fatalf("AllPages: %v", err)
	}
	if len(refs) != 2 || refs[0].Slug.Current != "about" {
		t.Errorf("refs: %+v", refs)
	}
}

func TestMenu(t *testing.T) {
	s := importTestSnapshot(t)
	ctx := context.Background()

	cats, err := s.MenuCategories(ctx)
	if err != nil {
		t.Fatalf("MenuCategories: %v", err)
	}
	if len(cats) != 2 || cats[0].Slug.Current != "breakfast" {
		t.Errorf("categories should be ordered: %+v", cats)
	}

	items, err := s.MenuItems(ctx)
	if err != nil {
		t.Fatalf("MenuItems: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	if len(items) != 3 || names[0] != "Easy Breezy" || names[1] != "Big Chris" || names[2] != "Mystery" {
		t.Errorf("available items in order: %v", names)
	}
	if items[0].Price != nil {
		t.Error("NULL price should scan as nil")
	}
	if items[1].Price == nil || *items[1].Price != 12.5 || items[1].CategoryTitle() != "Breakfast" {
		t.Errorf("Big Chris: %+v", items[1])
	}
	if items[2].Category != nil || len(items[2].Allergens) != 1 {
		t.Errorf("unresolved category should import uncategorized: %+v", items[2])
	}

	byCat, err := s.MenuItemsByCategory(ctx, "breakfast")
	if err != nil {
		t.Fatalf("MenuItemsByCategory: %v", err)
	}
	if len(byCat) != 2 {
		t.Errorf("breakfast items: %+v", byCat)
	}
	if lunch, _ := s.MenuItemsByCategory(ctx, "menus-n-more"); len(lunch) != 0 {
		t.Errorf("unavailable items must be excluded: %+v", lunch)
	}

	featured, err := s.FeaturedMenuItems(ctx)
	if err != nil {
		t.Fatalf("FeaturedMenuItems: %v", err)
	}
	if len(featured) != 1 || featured[0].Name != "Big Chris" {
		t.Errorf("featured: %+v", featured)
	}
}

func TestFAQsAndTestimonials(t *testing.T) {
	s := importTestSnapshot(t)
	ctx := context.Background()

	faqs, err := s.FAQs(ctx)
	if err != nil {
		t.Fatalf("FAQs: %v", err)
	}
	if len(faqs) != 2 || faqs[0].ID != "f1" {
		t.Errorf("faqs: %+v", faqs)
	}

	ts, err := s.FeaturedTestimonials(ctx)
	if err != nil {
		t.Fatalf("FeaturedTestimonials: %v", err)
	}
	if len(ts) != 2 || ts[0].Rating != 5 || ts[1].Rating != 0 {
		t.Errorf("testimonials: %+v", ts)
	}
}

func TestSiteSettings(t *testing.T) {
	s := importTestSnapshot(t)
	ctx := context.Background()

	got, err := s.SiteSettings(ctx)
	if err != nil {
		t.Fatalf("SiteSettings: %v", err)
	}
	if got == nil || got.Phone != "989-802-0755" || len(got.ContactFormRecipients) != 1 {
		t.Fatalf("got %+v", got)
	}

	got.Phone = "555-0100"
	if err := s.SaveSiteSettings(ctx, got); err != nil {
		t.Fatalf("SaveSiteSettings: %v", err)
	}
	again, _ := s.SiteSettings(ctx)
	if again.Phone != "555-0100" {
		t.Errorf("upsert: %+v", again)
	}
}

func TestImportGeneratesIDs(t *testing.T) {
	s := New(testDB(t))
	ctx := context.Background()

	snap := &content.Snapshot{FAQs: []models.FAQ{{Question: "No id?"}}}
	if _, err := s.Import(ctx, snap); err != nil {
		t.Fatalf("Import: %v", err)
	}
	faqs, err := s.FAQs(ctx)
	if err != nil {
		t.Fatalf("FAQs: %v", err)
	}
	if len(faqs) != 1 || len(faqs[0].ID) != 36 {
		t.Errorf("expected a generated uuid: %+v", faqs)
	}

	settings, err := s.SiteSettings(ctx)
	if err != nil || settings != nil {
		t.Errorf("nil settings should clear the document: %+v, %v", settings, err)
	}
}
