// Package excel reads word pairs from spreadsheet uploads.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FromColumn string // Column with the source text
	ToColumn   string // Column with the target text
	SheetName  string // Name of the sheet to import, first sheet when empty
	StartRow   int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		FromColumn: "A",
		ToColumn:   "B",
		StartRow:   2, // By default, start from the second row (skip header)
	}
}

// Pair is one word pair read from a file. Line is the 1-based row number in the file.
type Pair struct {
	Line     int
	TextFrom string
	TextTo   string
}

// Blank reports whether either side of the pair is empty
func (p Pair) Blank() bool {
	return strings.TrimSpace(p.TextFrom) == "" || strings.TrimSpace(p.TextTo) == ""
}

// IsSupported reports whether filename has an extension ReadPairs understands
func IsSupported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	}
	return false
}

// ReadPairs reads word pairs from an Excel or CSV file. The format is chosen by the extension of filename.
func ReadPairs(filename string, r io.Reader, config ImportConfig) ([]Pair, error) {
	if !IsSupported(filename) {
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
	if config.StartRow < 1 {
		config.StartRow = 1
	}

	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		return readCSV(r, config)
	}
	return readExcel(r, config)
}

// readExcel reads pairs from an Excel workbook
func readExcel(r io.Reader, config ImportConfig) ([]Pair, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	pairs := make([]Pair, 0, len(rows))
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		pairs = append(pairs, pairFromRow(row, config, i+1))
	}
	return pairs, nil
}

// readCSV reads pairs from a CSV file
func readCSV(r io.Reader, config ImportConfig) ([]Pair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var pairs []Pair
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		pairs = append(pairs, pairFromRow(row, config, rowNum))
	}
	return pairs, nil
}

func pairFromRow(row []string, config ImportConfig, line int) Pair {
	pair := Pair{Line: line}
	if colIdx := columnToIndex(config.FromColumn); colIdx >= 0 && colIdx < len(row) {
		pair.TextFrom = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.ToColumn); colIdx >= 0 && colIdx < len(row) {
		pair.TextTo = strings.TrimSpace(row[colIdx])
	}
	return pair
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
