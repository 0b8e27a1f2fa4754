package excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/halovoc/internal/words"
)

// exportHeader mirrors the default import column layout.
var exportHeader = []string{"en", "zh", "exampleEn", "exampleZh", "phonetic", "note", "tags"}

// Exporter writes the word collection to a spreadsheet.
type Exporter struct {
	words *words.Store
}

// NewExporter creates an exporter over the word store.
func NewExporter(w *words.Store) *Exporter {
	return &Exporter{words: w}
}

// Export writes every word to an xlsx file at path using the default
// column layout. Tags are joined with the import separator so the file
// round-trips through Import.
func (ex *Exporter) Export(ctx context.Context, path string) (int, error) {
	all, err := ex.words.Load(ctx)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %v", err)
	}
	for i, w := range all {
		row := []string{
			w.En,
			w.Zh,
			w.ExampleEn,
			w.ExampleZh,
			w.Phonetic,
			w.Note,
			strings.Join(w.Tags, tagSeparator),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return 0, fmt.Errorf("failed to write row %d: %v", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("failed to save workbook: %v", err)
	}
	return len(all), nil
}
