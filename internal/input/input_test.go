// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"ids.csv", CSV},
		{"IDS.CSV", CSV},
		{"ids.tsv", TSV},
		{"ids.xlsx", XLSX},
		{"ids.txt", Text},
		{"ids", Text},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOf(tt.path))
		})
	}
}

func TestReadIdentifiersCSV(t *testing.T) {
	path := writeFile(t, "ids.csv", "NPI,Note\n1234567893,a\n  1987654321 ,b\n\n,blank\n1234567893,dup\n")

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567893", "1987654321", "1234567893"}, ids)
}

func TestReadIdentifiersTextWithBOM(t *testing.T) {
	path := writeFile(t, "ids.txt", "\ufeff1234567893\n")

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567893"}, ids)
}

func TestReadIdentifiersUTF16(t *testing.T) {
	// "NPI\n1234567893\n" as UTF-16LE with BOM.
	var b []byte
	b = append(b, 0xFF, 0xFE)
	for _, r := range "NPI\n1234567893\n" {
		b = append(b, byte(r), 0)
	}
	path := writeFile(t, "ids.csv", string(b))

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567893"}, ids)
}

func TestReadIdentifiersTSV(t *testing.T) {
	path := writeFile(t, "aic.tsv", "AIC\tZip\nGeneral Hospital, 90210\tx\n")

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"General Hospital, 90210"}, ids)
}

func TestReadIdentifiersText(t *testing.T) {
	path := writeFile(t, "ids.txt", "1234567893\r\n\n  1987654321  \n")

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567893", "1987654321"}, ids)
}

func TestReadIdentifiersXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"NPI", "Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"1234567893", "Smith"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"1987654321", "Jones"}))
	path := filepath.Join(t.TempDir(), "ids.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567893", "1987654321"}, ids)
}

func TestReadIdentifiersHeaderOnly(t *testing.T) {
	path := writeFile(t, "ids.csv", "NPI\n")

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReadIdentifiersErrors(t *testing.T) {
	_, err := ReadIdentifiers(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.xlsx", "not a spreadsheet")
	_, err = ReadIdentifiers(bad)
	assert.Error(t, err)
}
