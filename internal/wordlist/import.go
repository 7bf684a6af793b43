package wordlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig describes where words live in a spreadsheet or CSV file.
type ImportConfig struct {
	FilePath            string // .xlsx or .csv
	SourceColumn        string // column letter holding the source word
	TranslationColumn   string // column letter holding the translation
	PronunciationColumn string // optional; empty disables
	SheetName           string // xlsx only
	StartRow            int    // 1-based first data row
}

// DefaultImportConfig returns the default import layout: source in A,
// translation in B, pronunciation in C, data starting on row 2.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SourceColumn:        "A",
		TranslationColumn:   "B",
		PronunciationColumn: "C",
		SheetName:           "Sheet1",
		StartRow:            2,
	}
}

// ImportResult holds the words read from a file and per-row problems.
// Bad rows are skipped and reported, never fatal.
type ImportResult struct {
	Words          []Word
	TotalProcessed int
	Skipped        int
	Errors         []string
}

type columns struct {
	source, translation, pronunciation int
}

func (cfg ImportConfig) columns() (columns, error) {
	var cols columns
	var err error
	if cols.source, err = columnIndex(cfg.SourceColumn); err != nil {
		return cols, fmt.Errorf("source column: %w", err)
	}
	if cols.translation, err = columnIndex(cfg.TranslationColumn); err != nil {
		return cols, fmt.Errorf("translation column: %w", err)
	}
	cols.pronunciation = -1
	if cfg.PronunciationColumn != "" {
		if cols.pronunciation, err = columnIndex(cfg.PronunciationColumn); err != nil {
			return cols, fmt.Errorf("pronunciation column: %w", err)
		}
	}
	return cols, nil
}

func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// Import reads words from an xlsx or csv file, chosen by extension.
func Import(cfg ImportConfig) (*ImportResult, error) {
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		f, err := os.Open(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("open CSV file: %w", err)
		}
		defer f.Close()
		return ImportCSV(f, cfg)
	}
	return importExcel(cfg)
}

func importExcel(cfg ImportConfig) (*ImportResult, error) {
	cols, err := cfg.columns()
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		result.add(row, cols, i+1)
	}
	return result, nil
}

// ImportCSV reads words from CSV data using the column layout in cfg.
func ImportCSV(r io.Reader, cfg ImportConfig) (*ImportResult, error) {
	cols, err := cfg.columns()
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ImportResult{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", rowNum, err)
		}
		if rowNum < cfg.StartRow {
			continue
		}
		result.add(row, cols, rowNum)
	}
	return result, nil
}

func (r *ImportResult) add(row []string, cols columns, rowNum int) {
	if isBlank(row) {
		return
	}
	r.TotalProcessed++

	w := Word{
		Source:        cell(row, cols.source),
		Translation:   cell(row, cols.translation),
		Pronunciation: cell(row, cols.pronunciation),
	}
	switch {
	case w.Source == "":
		r.reject(rowNum, "source word cannot be empty")
	case w.Translation == "":
		r.reject(rowNum, "translation cannot be empty")
	default:
		r.Words = append(r.Words, w)
	}
}

func (r *ImportResult) reject(rowNum int, msg string) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf("row %d: %s", rowNum, msg))
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
