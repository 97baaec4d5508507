// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sections renders a page's ordered section list into HTML
// fragments, one per recognized section, using embedded component
// templates.
package sections

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"chriscakes/internal/assets"
	"chriscakes/internal/models"
	"chriscakes/internal/richtext"
)

//go:embed templates/*.html
var templateFS embed.FS

// twoColumnImageWidth is the requested width for two-column images.
const twoColumnImageWidth = 1200

// Node is one rendered section. Key is the section's render identity.
type Node struct {
	Key  string
	Type string
	HTML template.HTML
}

// Renderer projects sections into HTML. It holds no per-request state
// and is safe for concurrent use.
type Renderer struct {
	rich   *richtext.Renderer
	images assets.Resolver
	tmpl   *template.Template
}

// New parses the component templates.
func New(rich *richtext.Renderer, images assets.Resolver) (*Renderer, error) {
	tmpl, err := template.New("sections").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse section templates: %w", err)
	}
	return &Renderer{rich: rich, images: images, tmpl: tmpl}, nil
}

// Render returns one node per recognized section, in input order.
// Unknown sections are skipped with a warning; a nil or empty list
// yields no nodes.
func (r *Renderer) Render(secs models.Sections) []Node {
	if len(secs) == 0 {
		return nil
	}

	d := &dispatcher{r: r, nodes: make([]Node, 0, len(secs))}
	for _, s := range secs {
		if s == nil {
			continue
		}
		s.Accept(d)
	}
	return d.nodes
}

// dispatcher is the per-call visitor that collects rendered nodes.
type dispatcher struct {
	r     *Renderer
	nodes []Node
}

func (d *dispatcher) emit(s models.Section, name string, view any) {
	var buf bytes.Buffer
	if err := d.r.tmpl.ExecuteTemplate(&buf, name, view); err != nil {
		slog.Error("section render failed", "type", s.SectionType(), "key", s.SectionKey(), "error", err)
		return
	}
	d.nodes = append(d.nodes, Node{
		Key:  s.SectionKey(),
		Type: s.SectionType(),
		HTML: template.HTML(buf.String()),
	})
}

func (d *dispatcher) VisitText(s *models.TextSection) {
	d.emit(s, "text_section", textView{
		Title:   s.Title,
		Content: d.r.rich.Render(s.Content),
	})
}

func (d *dispatcher) VisitTwoColumn(s *models.TwoColumnSection) {
	view := twoColumnView{
		Heading:    s.Heading,
		Content:    d.r.rich.Render(s.Content),
		ImageURL:   assets.URL(d.r.images, s.Image, twoColumnImageWidth),
		ImageFirst: s.ImagePosition == "" || s.ImagePosition == "left",
	}
	if s.Image != nil {
		view.ImageAlt = s.Image.Alt
	}
	if view.ImageAlt == "" {
		view.ImageAlt = s.Heading
	}
	view.CTA = s.CTAButton
	d.emit(s, "two_column_section", view)
}

func (d *dispatcher) VisitHighlight(s *models.HighlightBox) {
	view := highlightView{
		Title:      s.Title,
		Background: highlightBackgrounds["gray"],
		Style:      "default",
	}
	if bg, ok := highlightBackgrounds[s.BackgroundColor]; ok {
		view.Background = bg
	}
	if s.Style == "checklist" || s.Style == "numbered" {
		view.Style = s.Style
	}
	if len(s.Content) > 0 {
		view.Content = d.r.rich.Render(s.Content)
	}
	for i, item := range s.Items {
		view.Items = append(view.Items, highlightItem{Index: i + 1, Text: item})
	}
	d.emit(s, "highlight_box", view)
}

func (d *dispatcher) VisitCTA(s *models.CTASection) {
	d.emit(s, "cta_section", ctaView{
		Heading:     s.Heading,
		Description: s.Description,
		ButtonText:  s.ButtonText,
		ButtonLink:  s.ButtonLink,
		Secondary:   s.Style == "secondary",
	})
}

func (d *dispatcher) VisitVideo(s *models.VideoSection) {
	src, ok := EmbedURL(s.VideoURL)
	if !ok {
		slog.Debug("video section skipped: unsupported url", "key", s.Key, "url", s.VideoURL)
		return
	}
	d.emit(s, "video_section", videoView{
		Title:       s.Title,
		Description: s.Description,
		EmbedURL:    src,
	})
}

func (d *dispatcher) VisitUnknown(s *models.UnknownSection) {
	slog.Warn("unknown section type skipped", "type", s.Type, "key", s.Key)
}

// highlightBackgrounds maps backgroundColor values to container classes.
var highlightBackgrounds = map[string]string{
	"gray":    "bg-gray-100",
	"crimson": "bg-red-50",
	"white":   "bg-white border border-gray-200",
}

type textView struct {
	Title   string
	Content template.HTML
}

type twoColumnView struct {
	Heading    string
	Content    template.HTML
	ImageURL   string
	ImageAlt   string
	ImageFirst bool
	CTA        *models.ButtonLink
}

type highlightItem struct {
	Index int
	Text  string
}

type highlightView struct {
	Title      string
	Content    template.HTML
	Items      []highlightItem
	Background string
	Style      string
}

type ctaView struct {
	Heading     string
	Description string
	ButtonText  string
	ButtonLink  string
	Secondary   bool
}

type videoView struct {
	Title       string
	Description string
	EmbedURL    string
}
