package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reader loads tabular point metadata from Excel or CSV files. The first row
// is the header; Excel files are read from Sheet1.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given file. The format is chosen by
// file extension; anything that is not .csv is treated as xlsx.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a Table with light scalar coercion: numeric cells
// become float64, true/false become bool, empty cells become nil.
func (r *Reader) Read() (*Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("dataset: file not found: %s", r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 1 {
		return nil, fmt.Errorf("dataset: %s has no header row", r.filePath)
	}
	return r.processRows(rows)
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read Sheet1: %w", err)
	}
	return rows, nil
}

func (r *Reader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (r *Reader) processRows(rows [][]string) (*Table, error) {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	table := New(headers...)
	for i := 1; i < len(rows); i++ {
		cells := make([]any, len(headers))
		for j := range headers {
			if j < len(rows[i]) {
				cells[j] = coerceCell(strings.TrimSpace(rows[i][j]))
			}
		}
		if err := table.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// coerceCell turns a raw cell string into a typed scalar. Empty cells become
// nil so the renderer skips them.
func coerceCell(s string) any {
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
