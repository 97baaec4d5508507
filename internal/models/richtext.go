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

// BlockTypeText is the _type of a prose block; every other _type is an
// embedded object such as "image".
const BlockTypeText = "block"

// Span is an inline text run. Marks holds decorator names (strong, em)
// and keys into the parent block's MarkDefs for annotations (links).
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef is an annotation referenced by a span mark.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// Block is one node of a portable rich-text document. Prose blocks use
// Style, ListItem, Level, Children and MarkDefs; image blocks use Asset,
// Alt and Caption.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key,omitempty"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`

	Asset   *AssetRef `json:"asset,omitempty"`
	Alt     string    `json:"alt,omitempty"`
	Caption string    `json:"caption,omitempty"`
}

// MarkDef returns the annotation with the given key, if present.
func (b *Block) MarkDef(key string) (MarkDef, bool) {
	for _, d := range b.MarkDefs {
		if d.Key == key {
			return d, true
		}
	}
	return MarkDef{}, false
}

// RichText is an ordered portable rich-text document.
type RichText []Block

// UnmarshalJSON decodes blocks one at a time and drops any block that
// does not match the expected shape, so one bad node never discards the
// rest of the document.
func (rt *RichText) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*rt = nil
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decode rich text: %w", err)
	}

	out := make(RichText, 0, len(raws))
	for i, raw := range raws {
		var b Block
		if err := json.Unmarshal(raw, &b); err != nil {
			slog.Warn("malformed rich text block dropped", "index", i, "error", err)
			continue
		}
		out = append(out, b)
	}
	*rt = out
	return nil
}

// PlainText returns the concatenated span text of the first prose block,
// or "" when the document has none.
func (rt RichText) PlainText() string {
	for i := range rt {
		if rt[i].Type != BlockTypeText {
			continue
		}
		var s string
		for _, span := range rt[i].Children {
			if span.Type == "" || span.Type == "span" {
				s += span.Text
			}
		}
		return s
	}
	return ""
}
