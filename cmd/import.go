package main

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wastemetrics/enrich-cli/internal/company"
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import companies from CSV or XLSX files",
	Long:  "Reads company rows (name, country, registration_number) from one or more CSV or XLSX files and bulk-loads them into the store.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("import"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		var mu sync.Mutex
		var all []company.CompanyRecord

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for _, path := range args {
			path := path
			g.Go(func() error {
				records, err := parseImportFile(path)
				if err != nil {
					return err
				}
				mu.Lock()
				all = append(all, records...)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		all = dedupeRecords(all)

		n, err := st.BulkInsert(ctx, all)
		if err != nil {
			return eris.Wrap(err, "bulk insert")
		}

		zap.L().Info("import complete",
			zap.Int("files", len(args)),
			zap.Int64("inserted", n),
		)
		return nil
	},
}

// parseImportFile dispatches on extension.
func parseImportFile(path string) ([]company.CompanyRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(path)
	case ".xlsx":
		return parseXLSX(path)
	default:
		return nil, eris.Errorf("import: unsupported file type %s", path)
	}
}

func parseCSV(path string) ([]company.CompanyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "import: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "import: read header %s", path)
	}
	cols := columnIndex(header)

	var records []company.CompanyRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "import: read %s", path)
		}
		if rec, ok := rowToRecord(row, cols); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func parseXLSX(path string) ([]company.CompanyRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "import: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("import: no sheets in %s", path)
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(sheet.Rows[0].Cells))
	for i, cell := range sheet.Rows[0].Cells {
		header[i] = cell.String()
	}
	cols := columnIndex(header)

	var records []company.CompanyRecord
	for _, row := range sheet.Rows[1:] {
		values := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			values[i] = cell.String()
		}
		if rec, ok := rowToRecord(values, cols); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// columnIndex maps normalized header names to positions. Accepts a few
// spellings seen in exported sheets.
func columnIndex(header []string) map[string]int {
	aliases := map[string]string{
		"name":                "name",
		"company":             "name",
		"company name":        "name",
		"country":             "country",
		"registration number": "registration_number",
		"registration_number": "registration_number",
		"reg number":          "registration_number",
		"company number":      "registration_number",
	}
	cols := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := aliases[key]; ok {
			cols[canonical] = i
		}
	}
	return cols
}

func rowToRecord(row []string, cols map[string]int) (company.CompanyRecord, bool) {
	cell := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := company.CompanyRecord{
		Name:               cell("name"),
		Country:            cell("country"),
		RegistrationNumber: cell("registration_number"),
	}
	return rec, rec.Name != ""
}

// dedupeRecords keeps the first occurrence of each (name, country) pair.
func dedupeRecords(records []company.CompanyRecord) []company.CompanyRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0]
	for _, rec := range records {
		key := strings.ToLower(rec.Name) + "\x00" + strings.ToLower(rec.Country)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}

func init() {
	rootCmd.AddCommand(importCmd)
}
