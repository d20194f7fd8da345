// Package dataset reads song spreadsheets (.xlsx or .csv) and maps their
// rows to songs, inferring which columns hold the title, artist and lyrics.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/justestif/go-scenario-recommender/internal/recommend"
)

var (
	// ErrNoRows is returned when a file has no header row.
	ErrNoRows = errors.New("dataset has no rows")

	// ErrUnsupportedFormat is returned for extensions other than .xlsx and .csv.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// ErrNoDataset is returned by FindFirst when none of the paths exist.
	ErrNoDataset = errors.New("no dataset file found")
)

// Table is a spreadsheet: a header row and string cells.
// Rows may be shorter than Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the trimmed cell value, or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Options controls how a dataset file is read.
type Options struct {
	Sheet string // .xlsx sheet name; empty selects the first sheet
}

// Load reads a dataset file, choosing the reader by extension.
func Load(path string, opts Options) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".csv" {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	var t *Table
	if ext == ".xlsx" {
		t, err = ReadXLSX(f, opts.Sheet)
	} else {
		t, err = ReadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// FindFirst returns the first path that exists as a regular file.
func FindFirst(paths []string) (string, error) {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", ErrNoDataset
}

// LoadSongs finds the first existing dataset, reads it and maps it to songs.
// It returns the path that was used.
func LoadSongs(paths []string, opts Options) ([]recommend.Song, string, error) {
	path, err := FindFirst(paths)
	if err != nil {
		return nil, "", err
	}

	t, err := Load(path, opts)
	if err != nil {
		return nil, path, err
	}

	return Songs(t, InferColumns(t)), path, nil
}

// newTable builds a table from raw records, dropping blank rows.
func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoRows
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	t := &Table{Headers: headers}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
