// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Section type tags as stored in the _type field.
const (
	SectionText      = "textSection"
	SectionTwoColumn = "twoColumnSection"
	SectionHighlight = "highlightBox"
	SectionCTA       = "ctaSection"
	SectionVideo     = "videoSection"
)

// Section is one typed block in a page body. The variant set is closed:
// only types in this package implement it, and a SectionVisitor must
// handle every variant including UnknownSection.
type Section interface {
	SectionKey() string
	SectionType() string
	Accept(v SectionVisitor)
	isSection()
}

// SectionVisitor dispatches on the concrete section variant.
type SectionVisitor interface {
	VisitText(s *TextSection)
	VisitTwoColumn(s *TwoColumnSection)
	VisitHighlight(s *HighlightBox)
	VisitCTA(s *CTASection)
	VisitVideo(s *VideoSection)
	VisitUnknown(s *UnknownSection)
}

// ButtonLink is a labelled link used by section call-to-action buttons.
type ButtonLink struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type TextSection struct {
	Key     string   `json:"_key"`
	Title   string   `json:"title,omitempty"`
	Content RichText `json:"content"`
}

type TwoColumnSection struct {
	Key           string      `json:"_key"`
	Heading       string      `json:"heading"`
	Content       RichText    `json:"content"`
	Image         *Image      `json:"image,omitempty"`
	ImagePosition string      `json:"imagePosition,omitempty"`
	CTAButton     *ButtonLink `json:"ctaButton,omitempty"`
}

type HighlightBox struct {
	Key             string   `json:"_key"`
	Title           string   `json:"title"`
	Content         RichText `json:"content,omitempty"`
	Items           []string `json:"items,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	Style           string   `json:"style,omitempty"`
}

type CTASection struct {
	Key         string `json:"_key"`
	Heading     string `json:"heading"`
	Description string `json:"description,omitempty"`
	ButtonText  string `json:"buttonText"`
	ButtonLink  string `json:"buttonLink"`
	Style       string `json:"style,omitempty"`
}

type VideoSection struct {
	Key         string `json:"_key"`
	Title       string `json:"title,omitempty"`
	VideoURL    string `json:"videoUrl"`
	Description string `json:"description,omitempty"`
}

// UnknownSection carries a section whose type tag is not recognized, or
// whose payload could not be decoded into its variant.
type UnknownSection struct {
	Key  string
	Type string
	Raw  json.RawMessage
}

func (s *TextSection) SectionKey() string      { return s.Key }
func (s *TwoColumnSection) SectionKey() string { return s.Key }
func (s *HighlightBox) SectionKey() string     { return s.Key }
func (s *CTASection) SectionKey() string       { return s.Key }
func (s *VideoSection) SectionKey() string     { return s.Key }
func (s *UnknownSection) SectionKey() string   { return s.Key }

func (s *TextSection) SectionType() string      { return SectionText }
func (s *TwoColumnSection) SectionType() string { return SectionTwoColumn }
func (s *HighlightBox) SectionType() string     { return SectionHighlight }
func (s *CTASection) SectionType() string       { return SectionCTA }
func (s *VideoSection) SectionType() string     { return SectionVideo }
func (s *UnknownSection) SectionType() string   { return s.Type }

func (s *TextSection) Accept(v SectionVisitor)      { v.VisitText(s) }
func (s *TwoColumnSection) Accept(v SectionVisitor) { v.VisitTwoColumn(s) }
func (s *HighlightBox) Accept(v SectionVisitor)     { v.VisitHighlight(s) }
func (s *CTASection) Accept(v SectionVisitor)       { v.VisitCTA(s) }
func (s *VideoSection) Accept(v SectionVisitor)     { v.VisitVideo(s) }
func (s *UnknownSection) Accept(v SectionVisitor)   { v.VisitUnknown(s) }

func (*TextSection) isSection()      {}
func (*TwoColumnSection) isSection() {}
func (*HighlightBox) isSection()     {}
func (*CTASection) isSection()       {}
func (*VideoSection) isSection()     {}
func (*UnknownSection) isSection()   {}

// sectionFactories maps each known type tag to a constructor for its variant.
var sectionFactories = map[string]func() Section{
	SectionText:      func() Section { return &TextSection{} },
	SectionTwoColumn: func() Section { return &TwoColumnSection{} },
	SectionHighlight: func() Section { return &HighlightBox{} },
	SectionCTA:       func() Section { return &CTASection{} },
	SectionVideo:     func() Section { return &VideoSection{} },
}

// Sections is an ordered page body. Decoding never fails on an individual
// section: unrecognized or malformed entries become UnknownSection values
// in their original position.
type Sections []Section

// UnmarshalJSON decodes a heterogeneous section array by its _type tags.
func (s *Sections) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decode sections: %w", err)
	}

	out := make(Sections, 0, len(raws))
	for _, raw := range raws {
		out = append(out, decodeSection(raw))
	}
	*s = out
	return nil
}

func decodeSection(raw json.RawMessage) Section {
	var head struct {
		Key  string `json:"_key"`
		Type string `json:"_type"`
	}
	// A non-object entry still yields an UnknownSection with empty tags.
	_ = json.Unmarshal(raw, &head)

	factory, ok := sectionFactories[head.Type]
	if !ok {
		return &UnknownSection{Key: head.Key, Type: head.Type, Raw: raw}
	}

	sec := factory()
	if err := json.Unmarshal(raw, sec); err != nil {
		slog.Warn("malformed section", "type", head.Type, "key", head.Key, "error", err)
		return &UnknownSection{Key: head.Key, Type: head.Type, Raw: raw}
	}
	return sec
}

// MarshalJSON writes each section back in store format with its _type tag.
// Unknown sections are written verbatim.
func (s Sections) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}

	out := make([]json.RawMessage, 0, len(s))
	for _, sec := range s {
		if u, ok := sec.(*UnknownSection); ok {
			if len(u.Raw) > 0 {
				out = append(out, u.Raw)
			}
			continue
		}

		body, err := json.Marshal(sec)
		if err != nil {
			return nil, fmt.Errorf("encode section %s: %w", sec.SectionKey(), err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, fmt.Errorf("encode section %s: %w", sec.SectionKey(), err)
		}
		typeTag, _ := json.Marshal(sec.SectionType())
		fields["_type"] = typeTag

		tagged, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("encode section %s: %w", sec.SectionKey(), err)
		}
		out = append(out, tagged)
	}
	return json.Marshal(out)
}
