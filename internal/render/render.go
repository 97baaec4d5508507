// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Every page template is paired with the base layout and the shared
// partials; pages fill the layout's "content" block.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"chriscakes/internal/assets"
	"chriscakes/internal/markdown"
	"chriscakes/internal/menu"
	"chriscakes/internal/models"
	"chriscakes/internal/seo"
	"chriscakes/internal/social"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

// NavLink is one entry of the header navigation.
type NavLink struct {
	Label string
	Href  string
}

// Nav is the fixed header navigation.
var Nav = []NavLink{
	{"Home", "/"},
	{"Services", "/services"},
	{"Fundraising", "/fundraising"},
	{"Menus", "/menu"},
	{"How to Book", "/how-to-book"},
	{"Fundraising Tips", "/fundraising-tips"},
	{"Your Group", "/volunteers"},
	{"Day of Event", "/day-of-event"},
	{"Invoice & Payment", "/invoice-payment"},
	{"On the Flip Side", "/about"},
	{"Contact Us", "/contact"},
}

// PageData holds all data passed to public templates.
type PageData struct {
	Meta     seo.Meta
	Path     string                  // request path, marks the active nav link
	Settings models.SiteSettings     // zero value when settings could not be loaded
	Social   []models.SocialPlatform // enabled footer profiles
	Share    []social.Link           // share bar; empty hides it
	Schemas  []template.HTML         // JSON-LD script tags
	Nav      []NavLink
	Year     int
	Data     any // page-specific view
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. Image fields in templates resolve through images.
func New(images assets.Resolver) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"price":    menu.FormatPrice,
			"markdown": markdown.Render,
			"image": func(img *models.Image, width int) string {
				return assets.URL(images, img, width)
			},
			"tel":  telHref,
			"dict": dict,
			"activeClass": func(current, target string) string {
				if current == target {
					return "text-white bg-[#dc143c]"
				}
				return "text-white hover:text-gray-300"
			},
		},
	}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/partials/*.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Has reports whether a page template with the given name exists.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// Render executes the named page inside the base layout.
func (rn *Renderer) Render(w io.Writer, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	if data.Nav == nil {
		data.Nav = Nav
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// Bytes renders the named page into memory, so a failed render never
// leaves a half-written response.
func (rn *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.Render(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dict builds a map from alternating keys and values so a template can
// pass several arguments to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// telHref keeps the digits and a leading plus of a phone number for use
// in a tel: link. The result is marked safe because html/template rejects
// the tel scheme in attributes.
func telHref(phone string) template.URL {
	var b strings.Builder
	for i, c := range phone {
		if (c >= '0' && c <= '9') || (c == '+' && i == 0) {
			b.WriteRune(c)
		}
	}
	return template.URL("tel:" + b.String())
}
