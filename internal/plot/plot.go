// Package plot builds self-contained interactive data-map documents: an
// ECharts scatter of 2D points where clicking a point opens a detail panel
// fed by an embedded, point-indexed lookup table.
package plot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pointmap/pointmap/internal/dataset"
	"github.com/pointmap/pointmap/internal/detail"
)

// ErrNoGeometry is returned when a plot is created without point geometry.
// Construction cannot proceed without a point count.
var ErrNoGeometry = errors.New("plot: geometry is required")

// Config holds the presentation settings of a plot.
type Config struct {
	Title      string
	Subtitle   string
	Theme      string // "dark" or "light"
	MarkerSize int
}

// DefaultConfig returns the default presentation settings.
func DefaultConfig() Config {
	return Config{
		Title:      "Interactive Data Map",
		Subtitle:   "Click a point to see its details",
		Theme:      "dark",
		MarkerSize: 8,
	}
}

// Options carries the optional plot inputs alongside the geometry.
type Options struct {
	// Metadata has one row per point; every column is shown in the panel.
	Metadata *dataset.Table
	// HoverText is the short per-point hover string; derived from the first
	// metadata column when absent.
	HoverText []string
	// LabelLayers holds hierarchical cluster labels, one layer per level.
	LabelLayers [][]string
	Config      Config
}

// Plot is a fully built data map, ready to render or persist. The detail
// table is built once here and read-only afterwards.
type Plot struct {
	id       string
	geometry [][2]float64
	hover    []string
	layers   [][]string
	details  *detail.Table
	cfg      Config
}

// New builds a plot from N×2 geometry. The detail table and resolved hover
// text are produced once, at construction time.
func New(geometry [][2]float64, opts Options) (*Plot, error) {
	if geometry == nil {
		return nil, ErrNoGeometry
	}

	cfg := opts.Config
	defaults := DefaultConfig()
	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if cfg.Theme == "" {
		cfg.Theme = defaults.Theme
	}
	if cfg.MarkerSize <= 0 {
		cfg.MarkerSize = defaults.MarkerSize
	}

	built, err := detail.Build(detail.BuildInput{
		Metadata:    opts.Metadata,
		HoverText:   opts.HoverText,
		LabelLayers: opts.LabelLayers,
		NumPoints:   len(geometry),
	})
	if err != nil {
		return nil, fmt.Errorf("plot: failed to build detail table: %w", err)
	}

	return &Plot{
		id:       strings.Split(uuid.NewString(), "-")[0],
		geometry: geometry,
		hover:    built.HoverText,
		layers:   opts.LabelLayers,
		details:  built.Details,
		cfg:      cfg,
	}, nil
}

// Details returns the read-only point-detail lookup table.
func (p *Plot) Details() *detail.Table {
	return p.details
}

// HoverText returns the resolved hover-text sequence; may be nil.
func (p *Plot) HoverText() []string {
	return p.hover
}

// NumPoints returns the geometry's point count.
func (p *Plot) NumPoints() int {
	return len(p.geometry)
}

// Title returns the plot title.
func (p *Plot) Title() string {
	return p.cfg.Title
}

// Save renders the document and persists it to the given path.
func (p *Plot) Save(path string) error {
	html, err := p.HTML()
	if err != nil {
		return err
	}
	if err := writeFileBytes(path, []byte(html)); err != nil {
		return fmt.Errorf("plot: failed to write output: %w", err)
	}
	return nil
}
