// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package richtext renders portable rich-text documents to HTML. Every
// block style, list type, mark and object type is handled by an entry in
// a dispatch table; tags without an entry are omitted with a warning.
package richtext

import (
	"html"
	"html/template"
	"log/slog"
	"net/url"
	"strings"

	"chriscakes/internal/assets"
	"chriscakes/internal/models"
)

// imageWidth is the display width requested for inline images.
const imageWidth = 800

// blockRule wraps a rendered block's inline content.
type blockRule struct {
	tag   string
	class string
}

// listRule describes the container element for a list type.
type listRule struct {
	tag   string
	class string
}

// markRule wraps inline content for a decorator mark.
type markRule func(b *strings.Builder, inner string)

// annotationRule wraps inline content for an annotation mark definition.
// It returns false when the annotation cannot be applied.
type annotationRule func(b *strings.Builder, def models.MarkDef, inner string) bool

// typeRule renders an embedded object block.
type typeRule func(r *Renderer, b *strings.Builder, block *models.Block)

// Renderer renders portable rich-text. It is safe for concurrent use.
type Renderer struct {
	images      assets.Resolver
	blocks      map[string]blockRule
	lists       map[string]listRule
	decorators  map[string]markRule
	annotations map[string]annotationRule
	types       map[string]typeRule
}

// New creates a Renderer that resolves inline images with the given resolver.
func New(images assets.Resolver) *Renderer {
	return &Renderer{
		images: images,
		blocks: map[string]blockRule{
			"normal":     {tag: "p", class: "mb-4 text-gray-700"},
			"h1":         {tag: "h1", class: "text-3xl font-bold text-gray-900 mt-8 mb-4"},
			"h2":         {tag: "h2", class: "text-2xl font-bold text-gray-900 mt-8 mb-4 first:mt-0"},
			"h3":         {tag: "h3", class: "text-xl font-bold text-gray-900 mt-6 mb-3"},
			"h4":         {tag: "h4", class: "text-lg font-semibold text-gray-900 mt-4 mb-2"},
			"h5":         {tag: "h5", class: "font-semibold text-gray-900 mt-4 mb-2"},
			"h6":         {tag: "h6", class: "font-semibold text-gray-700 mt-4 mb-2"},
			"blockquote": {tag: "blockquote", class: "border-l-4 border-[#dc143c] pl-4 italic my-6 text-gray-600"},
		},
		lists: map[string]listRule{
			"bullet": {tag: "ul", class: "list-disc list-inside mb-4 space-y-2 text-gray-700"},
			"number": {tag: "ol", class: "list-decimal list-inside mb-4 space-y-2 text-gray-700"},
		},
		decorators: map[string]markRule{
			"strong":         wrap(`<strong class="font-bold">`, "</strong>"),
			"em":             wrap(`<em class="italic">`, "</em>"),
			"underline":      wrap("<u>", "</u>"),
			"code":           wrap("<code>", "</code>"),
			"strike-through": wrap("<s>", "</s>"),
		},
		annotations: map[string]annotationRule{
			"link": renderLink,
		},
		types: map[string]typeRule{
			"image": renderImage,
		},
	}
}

// Render converts a document to HTML. An empty or nil document yields "".
func (r *Renderer) Render(doc models.RichText) template.HTML {
	if len(doc) == 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(doc); {
		block := &doc[i]
		if block.Type == models.BlockTypeText && block.ListItem != "" {
			list, next := buildList(doc, i)
			r.renderList(&b, list)
			i = next
			continue
		}
		r.renderBlock(&b, block)
		i++
	}
	return template.HTML(b.String())
}

func (r *Renderer) renderBlock(b *strings.Builder, block *models.Block) {
	if block.Type != models.BlockTypeText {
		rule, ok := r.types[block.Type]
		if !ok {
			slog.Warn("unknown rich text type omitted", "type", block.Type, "key", block.Key)
			return
		}
		rule(r, b, block)
		return
	}

	style := block.Style
	if style == "" {
		style = "normal"
	}
	rule, ok := r.blocks[style]
	if !ok {
		slog.Warn("unknown rich text block style omitted", "style", style, "key", block.Key)
		return
	}

	b.WriteString("<" + rule.tag + ` class="` + rule.class + `">`)
	r.renderSpans(b, block)
	b.WriteString("</" + rule.tag + ">")
}

// renderSpans writes a block's inline children with their marks applied.
func (r *Renderer) renderSpans(b *strings.Builder, block *models.Block) {
	for _, span := range block.Children {
		if span.Type != "" && span.Type != "span" {
			slog.Warn("unknown inline type omitted", "type", span.Type, "block", block.Key)
			continue
		}

		text := strings.ReplaceAll(html.EscapeString(span.Text), "\n", "<br>")

		// Marks are applied innermost-last so the first mark is outermost.
		for i := len(span.Marks) - 1; i >= 0; i-- {
			text = r.applyMark(block, span.Marks[i], text)
		}
		b.WriteString(text)
	}
}

func (r *Renderer) applyMark(block *models.Block, mark, inner string) string {
	var b strings.Builder
	if rule, ok := r.decorators[mark]; ok {
		rule(&b, inner)
		return b.String()
	}

	def, ok := block.MarkDef(mark)
	if !ok {
		slog.Warn("unknown rich text mark ignored", "mark", mark, "block", block.Key)
		return inner
	}
	rule, ok := r.annotations[def.Type]
	if !ok {
		slog.Warn("unknown rich text annotation ignored", "type", def.Type, "block", block.Key)
		return inner
	}
	if !rule(&b, def, inner) {
		return inner
	}
	return b.String()
}

func wrap(open, close string) markRule {
	return func(b *strings.Builder, inner string) {
		b.WriteString(open)
		b.WriteString(inner)
		b.WriteString(close)
	}
}

// renderLink writes an anchor. Absolute http(s) links open in a new
// context without opener or referrer; other safe links render plainly.
func renderLink(b *strings.Builder, def models.MarkDef, inner string) bool {
	href := strings.TrimSpace(def.Href)
	external, ok := classifyHref(href)
	if !ok {
		slog.Warn("unsafe link href dropped", "href", href)
		return false
	}

	b.WriteString(`<a href="` + html.EscapeString(href) + `"`)
	if external {
		b.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	b.WriteString(` class="text-[#dc143c] hover:underline">`)
	b.WriteString(inner)
	b.WriteString("</a>")
	return true
}

// classifyHref reports whether href points off-site, and whether it is
// safe to render at all.
func classifyHref(href string) (external, ok bool) {
	if href == "" {
		return false, false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false, false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true, true
	case "mailto", "tel":
		return false, true
	case "":
		// Protocol-relative URLs leave the site.
		return u.Host != "", true
	default:
		return false, false
	}
}

// renderImage writes an inline figure. Images without an asset reference
// render nothing.
func renderImage(r *Renderer, b *strings.Builder, block *models.Block) {
	img := &models.Image{Asset: block.Asset, Alt: block.Alt, Caption: block.Caption}
	src := assets.URL(r.images, img, imageWidth)
	if src == "" {
		return
	}

	alt := block.Alt
	if alt == "" {
		alt = "Image"
	}

	b.WriteString(`<figure class="my-8">`)
	b.WriteString(`<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(alt) +
		`" width="800" height="600" loading="lazy" class="rounded-lg">`)
	if block.Caption != "" {
		b.WriteString(`<figcaption class="text-sm text-gray-600 text-center mt-2 italic">`)
		b.WriteString(html.EscapeString(block.Caption))
		b.WriteString("</figcaption>")
	}
	b.WriteString("</figure>")
}
