// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVOptions controls CSV export.
type CSVOptions struct {
	// BOM prefixes the output with a UTF-8 byte order mark so spreadsheet
	// tools detect the encoding.
	BOM bool
}

// WriteCSV writes the table as UTF-8 CSV: a header row with the column union
// followed by one line per row, empty cells for missing columns.
func (t *Table) WriteCSV(w io.Writer, opts CSVOptions) error {
	var tw *transform.Writer
	if opts.BOM {
		tw = transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
		w = tw
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("writing CSV rows: %w", err)
	}

	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("flushing CSV: %w", err)
		}
	}
	return nil
}

// WriteJSON writes the table as a JSON array of objects keyed by column.
// Rows include every column of the union.
func (t *Table) WriteJSON(w io.Writer) error {
	out := make([]map[string]string, len(t.rows))
	for i, r := range t.rows {
		m := make(map[string]string, len(t.columns))
		for _, c := range t.columns {
			m[c] = r.Value(c)
		}
		out[i] = m
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
