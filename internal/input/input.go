// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input reads identifier lists from uploaded files. Tabular files
// contribute the first column of every row after the header; anything else
// is read as one identifier per line.
package input

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format selects how a file is parsed.
type Format int

const (
	Text Format = iota
	CSV
	TSV
	XLSX
)

// FormatOf picks a format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV
	case ".tsv":
		return TSV
	case ".xlsx":
		return XLSX
	default:
		return Text
	}
}

// ReadIdentifiers reads the identifiers in path.
func ReadIdentifiers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	ids, err := Parse(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return ids, nil
}

// Parse reads identifiers from r in the given format. Cells are trimmed
// and blanks skipped; duplicates are kept in input order.
func Parse(r io.Reader, format Format) ([]string, error) {
	switch format {
	case XLSX:
		return parseXLSX(r)
	case CSV:
		return parseDelimited(decode(r), ',')
	case TSV:
		return parseDelimited(decode(r), '\t')
	default:
		return parseLines(decode(r))
	}
}

// decode strips a UTF-8 BOM and transcodes UTF-16 input that starts with one.
func decode(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

func parseDelimited(r io.Reader, comma rune) ([]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return firstColumn(rows), nil
}

func parseXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []string{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheets[0], err)
	}
	return firstColumn(rows), nil
}

func parseLines(r io.Reader) ([]string, error) {
	out := []string{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if v := strings.TrimSpace(sc.Text()); v != "" {
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// firstColumn skips the header row.
func firstColumn(rows [][]string) []string {
	out := []string{}
	if len(rows) < 2 {
		return out
	}
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if v := strings.TrimSpace(row[0]); v != "" {
			out = append(out, v)
		}
	}
	return out
}
