// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"chriscakes/internal/assets"
	"chriscakes/internal/cache"
	"chriscakes/internal/contact"
	"chriscakes/internal/content"
	"chriscakes/internal/menu"
	"chriscakes/internal/models"
	"chriscakes/internal/render"
	"chriscakes/internal/sections"
	"chriscakes/internal/seo"
	"chriscakes/internal/slug"
	"chriscakes/internal/social"
)

// Fixed page slugs and the category shown on the fundraising page.
const (
	ServicesSlug        = "services"
	FundraisingSlug     = "fundraising"
	FundraisingCategory = "fundraising-menus"
	featuredLimit       = 6
	ogImageWidth        = 1200
)

const (
	homeTitle              = "ChrisCakes - Premier Breakfast Caterer | Michigan Pancake Catering"
	homeDescription        = "Michigan's premier breakfast caterer serving delicious pancakes and catering services since 1969. Featured on Food Network, served Presidents, 2x Guinness World Record holder. Groups of 50 to 50,000!"
	menuDescription        = "Premier breakfast catering and more. Browse pancake breakfasts, grill menus, box lunches and fundraising packages."
	contactTitle           = "Contact Us - ChrisCakes | Book Your Event"
	contactDescription     = "Contact ChrisCakes to book your breakfast catering event. Serving Michigan and beyond with 99.9% success rate. Groups of 50 to 50,000. Phone: 989-802-0755"
	fundraisingDescription = "Fundraising menus for schools, churches, benefits, clubs, festivals and more. Delicious options to make your fundraiser a success!"
)

// HomeView is the home page body.
type HomeView struct {
	Featured    []models.MenuItem
	Testimonial *models.Testimonial
}

// MenuView is the menu page body.
type MenuView struct {
	Groups     []menu.Group
	Categories []models.MenuCategory
	Category   string // active category filter, "" for all
}

// ContactView lists the form's selectable options.
type ContactView struct {
	FundraiserTypes []string
	BreakfastTypes  []string
	MenusNMoreTypes []string
	ReferralSources []string
}

// ServicesView is the services page body.
type ServicesView struct {
	Sections []sections.Node
	FAQs     []models.FAQ
}

// FundraisingView is the fundraising page body.
type FundraisingView struct {
	Title    string
	Subtitle string
	Sections []sections.Node
	Items    []models.MenuItem
}

// PageView is the body of a CMS page served by slug.
type PageView struct {
	Title    string
	Sections []sections.Node
}

// view is one composed response.
type view struct {
	status int
	name   string
	data   *render.PageData
	ttl    time.Duration
}

// Public groups handlers for the public site. Each page fetches its
// content concurrently, renders through the layout and is stored in the
// optional page cache.
type Public struct {
	source    content.Source
	renderer  *render.Renderer
	sections  *sections.Renderer
	images    assets.Resolver
	site      seo.Site
	pageCache *cache.PageCache
}

// NewPublic creates the public handler group. pageCache may be nil.
func NewPublic(source content.Source, renderer *render.Renderer, secs *sections.Renderer, images assets.Resolver, site seo.Site, pageCache *cache.PageCache) *Public {
	return &Public{
		source:    source,
		renderer:  renderer,
		sections:  secs,
		images:    images,
		site:      site,
		pageCache: pageCache,
	}
}

// Home renders the landing page with the first menu items and the first
// featured testimonial.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) view {
		var (
			settings     *models.SiteSettings
			items        []models.MenuItem
			testimonials []models.Testimonial
		)
		content.Load(ctx,
			content.Into(&settings, "siteSettings", p.source.SiteSettings),
			content.Into(&items, "menuItems", p.source.MenuItems),
			content.Into(&testimonials, "featuredTestimonials", p.source.FeaturedTestimonials),
		)

		body := HomeView{Featured: menu.Featured(items, featuredLimit)}
		if len(testimonials) > 0 {
			body.Testimonial = &testimonials[0]
		}

		data := p.pageData("/", p.site.Meta("/", homeTitle, homeDescription), settings, body)
		data.Schemas = append(data.Schemas, seo.JSONLD(seo.Restaurant(settings, p.site.URL)))
		if rating := seo.AggregateRating(testimonials); rating != nil {
			data.Schemas = append(data.Schemas, seo.JSONLD(rating))
		}
		if body.Testimonial != nil {
			data.Schemas = append(data.Schemas, seo.JSONLD(seo.Review(*body.Testimonial)))
		}
		return view{status: http.StatusOK, name: "home", data: data}
	})
}

// Menu renders every available item grouped by category. The category
// query parameter narrows the listing to one category; an unknown
// category shows the full menu.
func (p *Public) Menu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !slug.Valid(category) {
		category = ""
	}

	p.serve(w, r, func(ctx context.Context) view {
		var (
			settings   *models.SiteSettings
			items      []models.MenuItem
			categories []models.MenuCategory
		)
		itemsTask := content.Into(&items, "menuItems", p.source.MenuItems)
		if category != "" {
			itemsTask = content.Into(&items, "menuItemsByCategory", func(ctx context.Context) ([]models.MenuItem, error) {
				return p.source.MenuItemsByCategory(ctx, category)
			})
		}
		content.Load(ctx,
			content.Into(&settings, "siteSettings", p.source.SiteSettings),
			content.Into(&categories, "menuCategories", p.source.MenuCategories),
			itemsTask,
		)
		if category != "" && !hasCategory(categories, category) {
			category = ""
			content.Load(ctx, content.Into(&items, "menuItems", p.source.MenuItems))
		}

		body := MenuView{
			Groups:     menu.GroupByCategory(items, categories),
			Categories: categories,
			Category:   category,
		}
		data := p.pageData("/menu", p.site.Meta("/menu", p.site.Suffixed("Our Menu"), menuDescription), settings, body)
		p.share(data, settings, social.PageMenu)
		if len(items) > 0 {
			data.Schemas = append(data.Schemas, seo.JSONLD(seo.Menu(items)))
		}
		data.Schemas = append(data.Schemas, p.breadcrumbs("Menu", "/menu"))
		return view{status: http.StatusOK, name: "menu", data: data}
	})
}

func hasCategory(categories []models.MenuCategory, categorySlug string) bool {
	for _, c := range categories {
		if c.Slug.Current == categorySlug {
			return true
		}
	}
	return false
}

// Contact renders the contact details and the inquiry form.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) view {
		var settings *models.SiteSettings
		content.Load(ctx, content.Into(&settings, "siteSettings", p.source.SiteSettings))

		body := ContactView{
			FundraiserTypes: contact.FundraiserTypes,
			BreakfastTypes:  contact.BreakfastTypes,
			MenusNMoreTypes: contact.MenusNMoreTypes,
			ReferralSources: contact.ReferralSources,
		}
		data := p.pageData("/contact", p.site.Meta("/contact", contactTitle, contactDescription), settings, body)
		data.Schemas = append(data.Schemas, p.breadcrumbs("Contact", "/contact"))
		return view{status: http.StatusOK, name: "contact", data: data, ttl: cache.ContactPageTTL}
	})
}

// Services renders the services page sections followed by the FAQs.
func (p *Public) Services(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) view {
		var (
			settings *models.SiteSettings
			page     *models.Page
			faqs     []models.FAQ
		)
		content.Load(ctx,
			content.Into(&settings, "siteSettings", p.source.SiteSettings),
			content.Into(&page, "pageBySlug", p.pageBySlug(ServicesSlug)),
			content.Into(&faqs, "faqs", p.source.FAQs),
		)

		body := ServicesView{FAQs: faqs}
		if page != nil {
			body.Sections = p.sections.Render(page.Sections)
		}
		data := p.pageData("/services", p.pageMeta(page, "/services", "Services", ""), settings, body)
		p.share(data, settings, social.PageServices)
		data.Schemas = append(data.Schemas, p.breadcrumbs("Services", "/services"))
		return view{status: http.StatusOK, name: "services", data: data}
	})
}

// Fundraising renders the fundraising page sections and the items of the
// fundraising menu category.
func (p *Public) Fundraising(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) view {
		var (
			settings *models.SiteSettings
			page     *models.Page
			items    []models.MenuItem
		)
		content.Load(ctx,
			content.Into(&settings, "siteSettings", p.source.SiteSettings),
			content.Into(&page, "pageBySlug", p.pageBySlug(FundraisingSlug)),
			content.Into(&items, "menuItemsByCategory", func(ctx context.Context) ([]models.MenuItem, error) {
				return p.source.MenuItemsByCategory(ctx, FundraisingCategory)
			}),
		)

		body := FundraisingView{Title: "Fundraising", Items: items}
		if page != nil {
			body.Title = page.Title
			body.Subtitle = subtitle(page.Sections)
			body.Sections = p.sections.Render(page.Sections)
		}
		data := p.pageData("/fundraising", p.pageMeta(page, "/fundraising", "Fundraising", fundraisingDescription), settings, body)
		p.share(data, settings, social.PageFundraising)
		data.Schemas = append(data.Schemas, p.breadcrumbs(body.Title, "/fundraising"))
		return view{status: http.StatusOK, name: "fundraising", data: data}
	})
}

// Page renders a CMS page by slug. Invalid or unknown slugs get the
// not-found page; a failed fetch renders the error shell.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	pageSlug := chi.URLParam(r, "slug")
	if !slug.Valid(pageSlug) {
		p.NotFound(w, r)
		return
	}
	path := "/" + pageSlug

	p.serve(w, r, func(ctx context.Context) view {
		var (
			settings *models.SiteSettings
			page     *models.Page
			pageErr  error
		)
		content.Load(ctx,
			content.Into(&settings, "siteSettings", p.source.SiteSettings),
			content.Into(&page, "pageBySlug", func(ctx context.Context) (*models.Page, error) {
				pg, err := p.source.PageBySlug(ctx, pageSlug)
				pageErr = err
				return pg, err
			}),
		)

		if page == nil {
			if pageErr != nil {
				data := p.pageData(path, p.site.Meta(path, p.site.Suffixed("Error"), ""), settings, nil)
				return view{status: http.StatusInternalServerError, name: "error", data: data}
			}
			data := p.pageData(path, p.site.NotFound(path), settings, nil)
			return view{status: http.StatusNotFound, name: "notfound", data: data}
		}

		body := PageView{Title: page.Title, Sections: p.sections.Render(page.Sections)}
		var ogImage string
		if page.SEO != nil {
			ogImage = assets.URL(p.images, page.SEO.OGImage, ogImageWidth)
		}
		data := p.pageData(path, p.site.PageMeta(page, path, ogImage), settings, body)
		p.share(data, settings, social.PageDynamic)
		data.Schemas = append(data.Schemas, p.breadcrumbs(page.Title, path))
		return view{status: http.StatusOK, name: "page", data: data}
	})
}

// NotFound renders the not-found page inside the layout.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	var settings *models.SiteSettings
	content.Load(r.Context(), content.Into(&settings, "siteSettings", p.source.SiteSettings))
	data := p.pageData(r.URL.Path, p.site.NotFound(r.URL.Path), settings, nil)
	if body, ok := p.renderView(w, view{name: "notfound", data: data}); ok {
		writeHTML(w, http.StatusNotFound, body)
	}
}

// serve answers from the page cache when it can, otherwise composes the
// page with build, renders it and caches successful results. Requests
// with a query string are never cached.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, build func(ctx context.Context) view) {
	ctx := r.Context()
	cacheable := r.URL.RawQuery == ""

	if cacheable {
		if cached, ok := p.pageCache.Get(ctx, r.URL.Path); ok {
			writeHTML(w, http.StatusOK, cached)
			return
		}
	}

	v := build(ctx)
	body, ok := p.renderView(w, v)
	if !ok {
		return
	}

	if cacheable && v.status == http.StatusOK {
		if v.ttl > 0 {
			p.pageCache.SetWithTTL(ctx, r.URL.Path, body, v.ttl)
		} else {
			p.pageCache.Set(ctx, r.URL.Path, body)
		}
	}
	writeHTML(w, v.status, body)
}

func (p *Public) renderView(w http.ResponseWriter, v view) ([]byte, bool) {
	body, err := p.renderer.Bytes(v.name, v.data)
	if err != nil {
		slog.Error("render page failed", "template", v.name, "path", v.data.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return body, true
}

// pageData fills the layout fields shared by every page. A nil settings
// document leaves the zero value in place.
func (p *Public) pageData(path string, meta seo.Meta, settings *models.SiteSettings, body any) *render.PageData {
	data := &render.PageData{Meta: meta, Path: path, Data: body}
	if settings != nil {
		data.Settings = *settings
		data.Social = social.Profiles(settings)
	}
	return data
}

// share attaches the share bar when the settings enable it for pageKey.
func (p *Public) share(data *render.PageData, settings *models.SiteSettings, pageKey string) {
	if settings == nil {
		return
	}
	data.Share = social.ShareLinks(settings.ShareButtons, pageKey, social.Target{
		URL:         data.Meta.Canonical,
		Title:       data.Meta.Title,
		Description: data.Meta.Description,
		Image:       data.Meta.Image,
	})
}

// pageMeta builds metadata for a fixed page backed by a CMS document.
// A missing document falls back to fallbackTitle.
func (p *Public) pageMeta(page *models.Page, path, fallbackTitle, description string) seo.Meta {
	if page == nil {
		return p.site.Meta(path, p.site.Suffixed(fallbackTitle), description)
	}
	var ogImage string
	if page.SEO != nil {
		ogImage = assets.URL(p.images, page.SEO.OGImage, ogImageWidth)
	}
	meta := p.site.PageMeta(page, path, ogImage)
	if description != "" && (page.SEO == nil || page.SEO.MetaDescription == "") {
		meta.Description = description
	}
	return meta
}

func (p *Public) breadcrumbs(name, path string) template.HTML {
	return seo.JSONLD(seo.Breadcrumbs([]seo.Crumb{
		{Name: "Home", URL: p.site.Absolute("/")},
		{Name: name, URL: p.site.Absolute(path)},
	}))
}

func (p *Public) pageBySlug(pageSlug string) func(ctx context.Context) (*models.Page, error) {
	return func(ctx context.Context) (*models.Page, error) {
		return p.source.PageBySlug(ctx, pageSlug)
	}
}

// subtitle is the plain text of the first block of the first text
// section, used as the fundraising page lead.
func subtitle(secs models.Sections) string {
	for _, s := range secs {
		if ts, ok := s.(*models.TextSection); ok {
			return ts.Content.PlainText()
		}
	}
	return ""
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
