package richtext

import (
	"log/slog"
	"strings"

	"chriscakes/internal/models"
)

// list is a run of consecutive list blocks of one type and level.
type list struct {
	kind  string
	level int
	items []*listItem
}

// listItem is one entry; children hold deeper nested lists.
type listItem struct {
	block    *models.Block
	children []*list
}

func itemLevel(b *models.Block) int {
	if b.Level < 1 {
		return 1
	}
	return b.Level
}

// buildList groups doc[i:] into a list tree and returns the index of the
// first block that does not belong to it.
func buildList(doc models.RichText, i int) (*list, int) {
	first := &doc[i]
	l := &list{kind: first.ListItem, level: itemLevel(first)}

	for i < len(doc) {
		b := &doc[i]
		if b.Type != models.BlockTypeText || b.ListItem == "" {
			break
		}
		lv := itemLevel(b)
		switch {
		case lv < l.level:
			return l, i
		case lv == l.level:
			if b.ListItem != l.kind {
				return l, i
			}
			l.items = append(l.items, &listItem{block: b})
			i++
		default:
			child, next := buildList(doc, i)
			if len(l.items) == 0 {
				l.items = append(l.items, &listItem{})
			}
			parent := l.items[len(l.items)-1]
			parent.children = append(parent.children, child)
			i = next
		}
	}
	return l, i
}

func (r *Renderer) renderList(b *strings.Builder, l *list) {
	rule, ok := r.lists[l.kind]
	if !ok {
		slog.Warn("unknown rich text list type omitted", "type", l.kind)
		return
	}

	b.WriteString("<" + rule.tag + ` class="` + rule.class + `">`)
	for _, item := range l.items {
		b.WriteString(`<li class="ml-4">`)
		if item.block != nil {
			r.renderSpans(b, item.block)
		}
		for _, child := range item.children {
			r.renderList(b, child)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</" + rule.tag + ">")
}
