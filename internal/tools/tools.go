package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pointmap/pointmap/internal/dataset"
	"github.com/pointmap/pointmap/internal/plot"
)

// Register registers all tools with the MCP server.
func Register(s *server.MCPServer) {
	registerDataMapTool(s)
}

func registerDataMapTool(s *server.MCPServer) {
	tool := mcp.NewTool("generate_data_map",
		mcp.WithDescription("Generates a self-contained interactive HTML data map from a tabular file (XLSX or CSV). Points are plotted from two coordinate columns and every remaining column is shown in a clickable per-point detail panel. Optionally writes a static PNG or SVG snapshot."),
		mcp.WithString("data_path",
			mcp.Required(),
			mcp.Description("The absolute path to the XLSX or CSV file holding point coordinates and metadata"),
		),
		mcp.WithString("x_column",
			mcp.Description("Name of the x coordinate column. Defaults to \"x\""),
		),
		mcp.WithString("y_column",
			mcp.Description("Name of the y coordinate column. Defaults to \"y\""),
		),
		mcp.WithString("label_column",
			mcp.Description("Optional column with cluster labels. Empty, \"-1\", \"None\" and \"null\" mean unclustered"),
		),
		mcp.WithString("output_path",
			mcp.Description("The output path for the HTML document. Defaults to data_map.html next to the data file"),
		),
		mcp.WithString("title",
			mcp.Description("Title for the visualization"),
		),
		mcp.WithString("theme",
			mcp.Description("Color theme, \"dark\" or \"light\". Defaults to POINTMAP_THEME or \"dark\""),
		),
		mcp.WithString("snapshot_path",
			mcp.Description("Optional output path for a static snapshot. Supports .png and .svg extensions"),
		),
	)

	s.AddTool(tool, dataMapHandler)
}

func dataMapHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dataPath, ok := request.Params.Arguments["data_path"].(string)
	if !ok {
		return newToolResultError("data_path is required"), nil
	}

	if _, err := os.Stat(dataPath); os.IsNotExist(err) {
		return newToolResultError(fmt.Sprintf("data file does not exist: %s", dataPath)), nil
	}

	xColumn := stringArg(request, "x_column", "x")
	yColumn := stringArg(request, "y_column", "y")

	table, err := dataset.NewReader(dataPath).Read()
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to read data file: %v", err)), nil
	}

	geometry, meta, err := dataset.ExtractGeometry(table, xColumn, yColumn)
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to extract geometry: %v", err)), nil
	}
	if len(geometry) == 0 {
		return newToolResultError("no data points found in the file"), nil
	}

	var layers [][]string
	if labelColumn := stringArg(request, "label_column", ""); labelColumn != "" {
		layer, err := meta.StringColumn(labelColumn)
		if err != nil {
			return newToolResultError(fmt.Sprintf("failed to read label column: %v", err)), nil
		}
		layers = append(layers, layer)
	}

	cfg := plot.DefaultConfig()
	cfg.Title = stringArg(request, "title", cfg.Title)
	cfg.Theme = stringArg(request, "theme", defaultTheme())

	p, err := plot.New(geometry, plot.Options{
		Metadata:    meta,
		LabelLayers: layers,
		Config:      cfg,
	})
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to build plot: %v", err)), nil
	}

	outputPath := stringArg(request, "output_path", "")
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(dataPath), "data_map.html")
	}
	if err := p.Save(outputPath); err != nil {
		return newToolResultError(fmt.Sprintf("failed to save data map: %v", err)), nil
	}

	snapshotPath := stringArg(request, "snapshot_path", "")
	if snapshotPath != "" {
		if err := p.SaveSnapshot(snapshotPath); err != nil {
			return newToolResultError(fmt.Sprintf("failed to save snapshot: %v", err)), nil
		}
	}

	return mcp.NewToolResultText(buildSummary(p, meta, outputPath, snapshotPath)), nil
}

func stringArg(request mcp.CallToolRequest, name, fallback string) string {
	if v, ok := request.Params.Arguments[name].(string); ok && v != "" {
		return v
	}
	return fallback
}

func defaultTheme() string {
	if theme := os.Getenv("POINTMAP_THEME"); theme != "" {
		return theme
	}
	return "dark"
}

func newToolResultError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: message,
			},
		},
		IsError: true,
	}
}

func buildSummary(p *plot.Plot, meta *dataset.Table, outputPath, snapshotPath string) string {
	summary := fmt.Sprintf("Data map generated successfully!\n\nOutput: %s\n", outputPath)
	if snapshotPath != "" {
		summary += fmt.Sprintf("Snapshot: %s\n", snapshotPath)
	}
	summary += fmt.Sprintf("\nPoints: %d\nDetail records: %d\nMetadata columns: %d\n",
		p.NumPoints(), p.Details().Len(), len(meta.Columns()))
	return summary
}
