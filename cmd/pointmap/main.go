package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/pointmap/pointmap/internal/dataset"
	"github.com/pointmap/pointmap/internal/plot"
	"github.com/pointmap/pointmap/internal/preview"
)

func main() {
	var (
		dataPath     = flag.String("data", "", "path to the XLSX or CSV file with coordinates and metadata")
		xColumn      = flag.String("x", "x", "name of the x coordinate column")
		yColumn      = flag.String("y", "y", "name of the y coordinate column")
		labelColumns = flag.String("labels", "", "comma-separated label columns, one per hierarchy level")
		title        = flag.String("title", "", "title for the visualization")
		theme        = flag.String("theme", "dark", "color theme: dark or light")
		outputPath   = flag.String("out", "", "output path for the HTML document (default: data_map.html next to the data file)")
		snapshotPath = flag.String("snapshot", "", "optional output path for a static PNG or SVG snapshot")
		serveAddr    = flag.String("serve", "", "serve the result over HTTP on this address (e.g. :8080) instead of exiting")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("-data is required")
	}

	table, err := dataset.NewReader(*dataPath).Read()
	if err != nil {
		log.Fatalf("Failed to read data file: %v", err)
	}

	geometry, meta, err := dataset.ExtractGeometry(table, *xColumn, *yColumn)
	if err != nil {
		log.Fatalf("Failed to extract geometry: %v", err)
	}

	var layers [][]string
	if *labelColumns != "" {
		for _, col := range strings.Split(*labelColumns, ",") {
			layer, err := meta.StringColumn(strings.TrimSpace(col))
			if err != nil {
				log.Fatalf("Failed to read label column: %v", err)
			}
			layers = append(layers, layer)
		}
	}

	cfg := plot.DefaultConfig()
	if *title != "" {
		cfg.Title = *title
	}
	cfg.Theme = *theme

	p, err := plot.New(geometry, plot.Options{
		Metadata:    meta,
		LabelLayers: layers,
		Config:      cfg,
	})
	if err != nil {
		log.Fatalf("Failed to build plot: %v", err)
	}

	out := *outputPath
	if out == "" {
		out = filepath.Join(filepath.Dir(*dataPath), "data_map.html")
	}
	if err := p.Save(out); err != nil {
		log.Fatalf("Failed to save data map: %v", err)
	}
	log.Printf("Data map saved to %s (%d points, %d detail records)", out, p.NumPoints(), p.Details().Len())

	if *snapshotPath != "" {
		if err := p.SaveSnapshot(*snapshotPath); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}
		log.Printf("Snapshot saved to %s", *snapshotPath)
	}

	if *serveAddr != "" {
		srv, err := preview.New(p)
		if err != nil {
			log.Fatalf("Failed to start preview server: %v", err)
		}
		if err := srv.ListenAndServe(*serveAddr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}
