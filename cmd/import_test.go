package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/wastemetrics/enrich-cli/internal/company"
)

func TestParseCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.csv")
	data := "Company Name,Country,Registration Number\n" +
		"Veolia,France,\n" +
		"Biffa,United Kingdom,00946107\n" +
		",United States,\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	records, err := parseCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Veolia", records[0].Name)
	assert.Equal(t, "France", records[0].Country)
	assert.Equal(t, "Biffa", records[1].Name)
	assert.Equal(t, "00946107", records[1].RegistrationNumber)
}

func TestParseCSV_MissingFile(t *testing.T) {
	_, err := parseCSV("/nonexistent/file.csv")
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Companies")
	require.NoError(t, err)

	header := sheet.AddRow()
	header.AddCell().SetString("name")
	header.AddCell().SetString("country")
	header.AddCell().SetString("registration_number")

	row := sheet.AddRow()
	row.AddCell().SetString("Remondis")
	row.AddCell().SetString("Germany")
	row.AddCell().SetString("")

	require.NoError(t, f.Save(path))

	records, err := parseXLSX(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Remondis", records[0].Name)
	assert.Equal(t, "Germany", records[0].Country)
}

func TestParseImportFile_UnsupportedType(t *testing.T) {
	_, err := parseImportFile("companies.pdf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestDedupeRecords(t *testing.T) {
	records := []company.CompanyRecord{
		{Name: "Acme", Country: "United States"},
		{Name: "acme", Country: "united states"},
		{Name: "Acme", Country: "Canada"},
	}

	out := dedupeRecords(records)
	require.Len(t, out, 2)
	assert.Equal(t, "Acme", out[0].Name)
	assert.Equal(t, "Canada", out[1].Country)
}

func TestColumnIndex_Aliases(t *testing.T) {
	cols := columnIndex([]string{"Company", "Country", "Reg Number"})
	assert.Equal(t, 0, cols["name"])
	assert.Equal(t, 1, cols["country"])
	assert.Equal(t, 2, cols["registration_number"])
}
