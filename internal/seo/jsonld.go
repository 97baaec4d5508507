// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"chriscakes/internal/models"
)

const schemaContext = "https://schema.org"

// Business defaults used when settings leave a field empty.
const (
	DefaultBusinessName  = "Chris Cakes of Michigan"
	DefaultAlternateName = "ChrisCakes"
	DefaultDescription   = "Michigan's premier breakfast caterer serving delicious pancakes and catering services since 1969."
	DefaultPhone         = "989-802-0755"
	DefaultEmail         = "info@chriscakesofmi.com"
)

type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

type GeoCoordinates struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GeoCircle struct {
	Type        string         `json:"@type"`
	GeoMidpoint GeoCoordinates `json:"geoMidpoint"`
	GeoRadius   string         `json:"geoRadius"`
}

type Place struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// RestaurantSchema is the LocalBusiness document for the business.
type RestaurantSchema struct {
	Context            string         `json:"@context"`
	Type               string         `json:"@type"`
	ID                 string         `json:"@id"`
	Name               string         `json:"name"`
	AlternateName      string         `json:"alternateName"`
	Description        string         `json:"description"`
	URL                string         `json:"url"`
	Telephone          string         `json:"telephone"`
	Email              string         `json:"email"`
	Address            PostalAddress  `json:"address"`
	Geo                GeoCoordinates `json:"geo"`
	ServesCuisine      []string       `json:"servesCuisine"`
	PriceRange         string         `json:"priceRange"`
	PaymentAccepted    []string       `json:"paymentAccepted"`
	CurrenciesAccepted string         `json:"currenciesAccepted"`
	FoundingDate       string         `json:"foundingDate"`
	AreaServed         Place          `json:"areaServed"`
	ServiceArea        GeoCircle      `json:"serviceArea"`
	SameAs             []string       `json:"sameAs,omitempty"`
}

var headquarters = GeoCoordinates{Type: "GeoCoordinates", Latitude: 43.8194, Longitude: -84.7686}

// Restaurant builds the business document from settings. siteURL is the
// canonical origin. sameAs lists enabled social profiles and is omitted
// when there are none.
func Restaurant(settings *models.SiteSettings, siteURL string) RestaurantSchema {
	if settings == nil {
		settings = &models.SiteSettings{}
	}
	siteURL = strings.TrimRight(siteURL, "/")

	var sameAs []string
	for _, p := range settings.SocialMedia.Platforms {
		if p.Enabled && p.URL != "" {
			sameAs = append(sameAs, p.URL)
		}
	}

	return RestaurantSchema{
		Context:       schemaContext,
		Type:          "Restaurant",
		ID:            siteURL + "/#restaurant",
		Name:          or(settings.Title, DefaultBusinessName),
		AlternateName: DefaultAlternateName,
		Description:   or(settings.Description, DefaultDescription),
		URL:           siteURL,
		Telephone:     or(settings.Phone, DefaultPhone),
		Email:         or(settings.Email, DefaultEmail),
		Address: PostalAddress{
			Type:            "PostalAddress",
			StreetAddress:   "P.O. Box 431",
			AddressLocality: "Clare",
			AddressRegion:   "MI",
			PostalCode:      "48617",
			AddressCountry:  "US",
		},
		Geo:                headquarters,
		ServesCuisine:      []string{"Breakfast", "American", "Pancakes"},
		PriceRange:         "$$",
		PaymentAccepted:    []string{"Cash", "Credit Card", "Check"},
		CurrenciesAccepted: "USD",
		FoundingDate:       "1969",
		AreaServed:         Place{Type: "State", Name: "Michigan"},
		ServiceArea:        GeoCircle{Type: "GeoCircle", GeoMidpoint: headquarters, GeoRadius: "200000"},
		SameAs:             sameAs,
	}
}

type Offer struct {
	Type          string  `json:"@type"`
	Price         float64 `json:"price"`
	PriceCurrency string  `json:"priceCurrency"`
}

type MenuItemSchema struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Offers      *Offer `json:"offers,omitempty"`
}

type MenuSection struct {
	Type        string           `json:"@type"`
	Name        string           `json:"name"`
	HasMenuItem []MenuItemSchema `json:"hasMenuItem"`
}

// MenuSchema is the full menu document.
type MenuSchema struct {
	Context        string        `json:"@context"`
	Type           string        `json:"@type"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	HasMenuSection []MenuSection `json:"hasMenuSection"`
}

// Menu groups items into sections by category title, in first-seen
// order; uncategorized items go under "Other". Items with no price or a
// zero price carry no offer.
func Menu(items []models.MenuItem) MenuSchema {
	sections := []MenuSection{}
	index := map[string]int{}

	for _, item := range items {
		name := item.CategoryTitle()
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(sections)
			index[name] = i
			sections = append(sections, MenuSection{Type: "MenuSection", Name: name})
		}

		entry := MenuItemSchema{Type: "MenuItem", Name: item.Name, Description: item.Description}
		if item.Price != nil && *item.Price != 0 {
			entry.Offers = &Offer{Type: "Offer", Price: *item.Price, PriceCurrency: "USD"}
		}
		sections[i].HasMenuItem = append(sections[i].HasMenuItem, entry)
	}

	return MenuSchema{
		Context:        schemaContext,
		Type:           "Menu",
		Name:           "ChrisCakes Menu",
		Description:    "Our complete breakfast and catering menu",
		HasMenuSection: sections,
	}
}

// AggregateRatingSchema summarizes testimonial ratings.
type AggregateRatingSchema struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	RatingValue string `json:"ratingValue"`
	ReviewCount int    `json:"reviewCount"`
	BestRating  string `json:"bestRating"`
	WorstRating string `json:"worstRating"`
}

// AggregateRating averages testimonial ratings, counting unrated entries
// as 5. It returns nil when no testimonial carries a rating.
func AggregateRating(testimonials []models.Testimonial) *AggregateRatingSchema {
	rated := false
	total := 0
	for _, t := range testimonials {
		if t.Rating != 0 {
			rated = true
		}
		total += ratingOrDefault(t.Rating)
	}
	if !rated {
		return nil
	}

	return &AggregateRatingSchema{
		Context:     schemaContext,
		Type:        "AggregateRating",
		RatingValue: fmt.Sprintf("%.1f", float64(total)/float64(len(testimonials))),
		ReviewCount: len(testimonials),
		BestRating:  "5",
		WorstRating: "1",
	}
}

type Rating struct {
	Type        string `json:"@type"`
	RatingValue int    `json:"ratingValue"`
	BestRating  string `json:"bestRating"`
	WorstRating string `json:"worstRating"`
}

type Person struct {
	Type     string `json:"@type"`
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle,omitempty"`
}

type ReviewedBusiness struct {
	Type    string        `json:"@type"`
	Name    string        `json:"name"`
	Address PostalAddress `json:"address"`
}

// ReviewSchema is a single customer review.
type ReviewSchema struct {
	Context      string           `json:"@context"`
	Type         string           `json:"@type"`
	ReviewRating Rating           `json:"reviewRating"`
	Author       Person           `json:"author"`
	ReviewBody   string           `json:"reviewBody"`
	ItemReviewed ReviewedBusiness `json:"itemReviewed"`
}

// Review builds a review document from a testimonial.
func Review(t models.Testimonial) ReviewSchema {
	return ReviewSchema{
		Context: schemaContext,
		Type:    "Review",
		ReviewRating: Rating{
			Type:        "Rating",
			RatingValue: ratingOrDefault(t.Rating),
			BestRating:  "5",
			WorstRating: "1",
		},
		Author:     Person{Type: "Person", Name: t.Author, JobTitle: t.AuthorTitle},
		ReviewBody: t.Quote,
		ItemReviewed: ReviewedBusiness{
			Type: "Restaurant",
			Name: DefaultBusinessName,
			Address: PostalAddress{
				Type:            "PostalAddress",
				AddressLocality: "Clare",
				AddressRegion:   "MI",
			},
		},
	}
}

// Crumb is one breadcrumb entry; URL should be absolute.
type Crumb struct {
	Name string
	URL  string
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// BreadcrumbSchema is a BreadcrumbList document.
type BreadcrumbSchema struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// Breadcrumbs numbers crumbs from 1 in the given order.
func Breadcrumbs(crumbs []Crumb) BreadcrumbSchema {
	items := make([]ListItem, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, ListItem{Type: "ListItem", Position: i + 1, Name: c.Name, Item: c.URL})
	}
	return BreadcrumbSchema{Context: schemaContext, Type: "BreadcrumbList", ItemListElement: items}
}

// JSONLD renders v as a JSON-LD script element. encoding/json escapes
// <, > and & so the payload cannot close the script early. A nil pointer
// or marshal failure yields "".
func JSONLD(v any) template.HTML {
	if v == nil {
		return ""
	}
	if r, ok := v.(*AggregateRatingSchema); ok && r == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode structured data", "error", err)
		return ""
	}
	return template.HTML(`<script type="application/ld+json">` + string(data) + `</script>`)
}

func ratingOrDefault(r int) int {
	if r == 0 {
		return 5
	}
	return r
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
