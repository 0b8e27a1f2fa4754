// Package excel imports and exports word lists as xlsx or csv files.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/halovoc/internal/tags"
	"github.com/example/halovoc/internal/words"
	"github.com/example/halovoc/pkg/models"
)

// tagSeparator splits multiple tag paths inside one spreadsheet cell.
const tagSeparator = ";"

// ImportConfig defines where each word field lives in the sheet.
type ImportConfig struct {
	FilePath        string // Path to the Excel or CSV file
	EnColumn        string // Column with the English word
	ZhColumn        string // Column with the translation
	ExampleEnColumn string // Column with the English example sentence
	ExampleZhColumn string // Column with the translated example
	PhoneticColumn  string // Column with the phonetic transcription
	NoteColumn      string // Column with the free-form note
	TagsColumn      string // Column with semicolon-separated tag paths
	SheetName       string // Name of the sheet to import
	StartRow        int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default column layout.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:        path,
		EnColumn:        "A",
		ZhColumn:        "B",
		ExampleEnColumn: "C",
		ExampleZhColumn: "D",
		PhoneticColumn:  "E",
		NoteColumn:      "F",
		TagsColumn:      "G",
		SheetName:       "Sheet1",
		StartRow:        2, // skip the header row
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	TagsAdded      int
	Errors         []string
}

// Importer writes imported rows through the word store and registers
// their tags through the registry so ancestor closure holds.
type Importer struct {
	words    *words.Store
	registry *tags.Registry
}

// NewImporter creates an importer over the given stores.
func NewImporter(w *words.Store, r *tags.Registry) *Importer {
	return &Importer{words: w, registry: r}
}

// Import reads words from an Excel or CSV file. Rows with an empty
// word column and rows whose word already exists are skipped; row
// errors accumulate instead of aborting the run.
func (im *Importer) Import(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return im.importFromCSV(ctx, config)
	}
	return im.importFromExcel(ctx, config)
}

func (im *Importer) importFromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := im.processRow(ctx, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func (im *Importer) importFromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: make([]string, 0)}
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
			continue
		}
		if line < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := im.processRow(ctx, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
		}
	}
	return result, nil
}

// processRow turns one spreadsheet row into a stored word.
func (im *Importer) processRow(ctx context.Context, row []string, config ImportConfig, result *ImportResult) error {
	en := cellValue(row, config.EnColumn)
	if en == "" {
		result.Skipped++
		return nil
	}
	zh := cellValue(row, config.ZhColumn)
	if zh == "" {
		result.Skipped++
		return fmt.Errorf("missing translation for %q", en)
	}

	word := models.Word{
		En:        en,
		Zh:        zh,
		ExampleEn: cellValue(row, config.ExampleEnColumn),
		ExampleZh: cellValue(row, config.ExampleZhColumn),
		Phonetic:  cellValue(row, config.PhoneticColumn),
		Note:      cellValue(row, config.NoteColumn),
	}
	for _, t := range splitTags(cellValue(row, config.TagsColumn)) {
		word.Tags = append(word.Tags, t)
		if err := im.registry.Add(ctx, t); err != nil {
			return err
		}
		result.TagsAdded++
	}

	created, err := im.words.Add(ctx, word)
	if err != nil {
		return err
	}
	if created == nil {
		result.Skipped++
		return nil
	}
	result.Created++
	return nil
}

// cellValue reads a column-letter addressed cell from the row, empty
// when the row is too short or the column letter is invalid.
func cellValue(row []string, column string) string {
	if column == "" {
		return ""
	}
	n, err := excelize.ColumnNameToNumber(column)
	if err != nil || n > len(row) {
		return ""
	}
	return strings.TrimSpace(row[n-1])
}

func splitTags(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, tagSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
