// Package panel renders the point-detail panel. The render contract exists
// twice on purpose: Renderer produces the panel HTML fragment in Go (used by
// the preview server and tests), and Script emits the equivalent client-side
// JavaScript embedded into the saved artifact so it works offline.
package panel

import (
	"fmt"
	"html"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/pointmap/pointmap/internal/detail"
)

// Fields never rendered as their own labeled sections.
var reservedFields = map[string]bool{
	"index":         true,
	"title":         true,
	"name":          true,
	"_cluster_info": true,
}

// Renderer renders panel content against a read-only detail table.
type Renderer struct {
	details *detail.Table
}

// NewRenderer returns a renderer over the given detail table. The table may
// be nil; every render then degrades to the hover-text fallback.
func NewRenderer(details *detail.Table) *Renderer {
	return &Renderer{details: details}
}

// Render produces the panel HTML fragment for one clicked point. A lookup
// miss is not an error: the panel shows the hover text, or "No details
// available" when that is empty too. Renders are idempotent full
// replacements; the caller swaps the panel content wholesale.
func (r *Renderer) Render(hoverText string, pointIndex int) string {
	rec, ok := r.details.Lookup(pointIndex)

	var b strings.Builder
	b.WriteString(`<div class="detail-title">` + esc(title(rec, ok, pointIndex)) + `</div>`)
	b.WriteString(`<div class="detail-metadata">`)

	if ok && len(rec.Cluster) > 0 {
		b.WriteString(`<div class="detail-section"><div class="detail-label">Clusters</div><div class="detail-value">`)
		for _, cl := range rec.Cluster {
			fmt.Fprintf(&b, `<div>%s: <strong>%s</strong></div>`, esc(cl.Level), esc(cl.Label))
		}
		b.WriteString(`</div></div>`)
	}

	if ok {
		for _, f := range rec.Fields {
			if reservedFields[f.Name] || f.Value.IsNull() {
				continue
			}
			fmt.Fprintf(&b, `<div class="detail-section"><div class="detail-label">%s</div><div class="detail-value">%s</div></div>`,
				esc(prettifyLabel(f.Name)), formatValue(f.Value))
		}
	}

	if !ok {
		fallback := hoverText
		if fallback == "" {
			fallback = "No details available"
		}
		b.WriteString(`<div class="detail-section"><div class="detail-value">` + esc(fallback) + `</div></div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func title(rec *detail.Record, ok bool, pointIndex int) string {
	if ok {
		if v, found := rec.Field("title"); found && !v.IsNull() {
			return v.Text()
		}
		if v, found := rec.Field("name"); found && !v.IsNull() {
			return v.Text()
		}
	}
	return fmt.Sprintf("Point #%d", pointIndex+1)
}

// formatValue applies the fixed per-field policy: arrays join with ", ",
// objects pretty-print, http-prefixed strings become links that grant no
// back-reference to the opener, everything else is plain text.
func formatValue(v detail.Value) string {
	switch v.Kind {
	case detail.KindArray:
		return esc(v.Text())
	case detail.KindObject:
		pretty, err := gojson.MarshalIndent(v, "", "  ")
		if err != nil {
			return esc(v.Text())
		}
		return esc(string(pretty))
	case detail.KindString:
		if strings.HasPrefix(v.Str, "http") {
			u := esc(v.Str)
			return `<a href="` + u + `" target="_blank" rel="noopener">` + u + `</a>`
		}
		return esc(v.Str)
	default:
		return esc(v.Text())
	}
}

// prettifyLabel turns a field name into its display label: underscores
// become spaces and every word's first character is uppercased. The rule is
// ASCII word boundaries, matching the client-side renderer.
func prettifyLabel(name string) string {
	runes := []rune(strings.ReplaceAll(name, "_", " "))
	prevWord := false
	for i, c := range runes {
		word := isWordRune(c)
		if word && !prevWord {
			runes[i] = toUpperASCII(c)
		}
		prevWord = word
	}
	return string(runes)
}

func isWordRune(c rune) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func toUpperASCII(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func esc(s string) string {
	return html.EscapeString(s)
}
