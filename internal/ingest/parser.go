package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"lumicms/internal/model"
	"lumicms/internal/observability"
)

// DefaultBrand is stamped on every parsed record. Per-row brands are a known
// simplification the catalog team has not asked for yet.
const DefaultBrand = "ECOSHIFT"

// maxColumns bounds scanning to columns A-Y. Price-list sheets carry stray
// notes far to the right that must not become specs.
const maxColumns = 25

// Sheets that never contain product rows. Matched case-insensitively against
// the whole sheet name, so "Table of Contents Extra" is still scanned.
var excludedSheets = map[string]struct{}{
	"table of content":     {},
	"table of contents":    {},
	"existing":             {},
	"new_2026":             {},
	"dimensional drawing":  {},
	"dimensional drawings": {},
	"illuminance level":    {},
	"illuminance levels":   {},
}

// Boilerplate cell values that mark navigation rows, not products.
var boilerplateCell = regexp.MustCompile(`(?i)back to table of content`)

// ParseWorkbook scans an xlsx workbook and extracts one record per valid
// product row. A bad sheet is reported and skipped; only a corrupt file
// aborts the whole import.
func ParseWorkbook(r io.Reader) ([]model.ParsedProductRecord, model.ImportReport) {
	report := model.ImportReport{}

	f, err := excelize.OpenReader(r)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("failed to open workbook: %v", err))
		return nil, report
	}
	defer f.Close()

	var products []model.ParsedProductRecord
	for _, sheet := range f.GetSheetList() {
		if isExcludedSheet(sheet) {
			report.SkippedSheets = append(report.SkippedSheets, sheet)
			observability.SheetsSkippedTotal.Inc()
			continue
		}

		records, err := parseSheet(f, sheet)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("sheet %q: %v", sheet, err))
			report.SkippedSheets = append(report.SkippedSheets, sheet)
			observability.SheetsSkippedTotal.Inc()
			continue
		}
		products = append(products, records...)
	}

	observability.ProductsParsedTotal.Add(float64(len(products)))
	report.IsValid = len(products) > 0
	return products, report
}

func isExcludedSheet(name string) bool {
	_, ok := excludedSheets[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func parseSheet(f *excelize.File, sheet string) ([]model.ParsedProductRecord, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows below the header")
	}

	header := normalizeRow(rows[0])

	var records []model.ParsedProductRecord
	for _, raw := range rows[1:] {
		row := normalizeRow(raw)
		if rec, ok := parseRow(sheet, header, row); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// parseRow validates the identity columns and maps every remaining cell to a
// spec group named after its header. Invalid rows are skipped silently.
func parseRow(sheet string, header, row []string) (model.ParsedProductRecord, bool) {
	if allEmpty(row) {
		return model.ParsedProductRecord{}, false
	}

	name := cellAt(row, 0)
	code := cellAt(row, 1)
	if name == "" || code == "" {
		return model.ParsedProductRecord{}, false
	}
	if boilerplateCell.MatchString(name) || boilerplateCell.MatchString(code) {
		return model.ParsedProductRecord{}, false
	}

	rec := model.ParsedProductRecord{
		SheetTitle:  sheet,
		ProductName: name,
		ItemCode:    code,
		Brand:       DefaultBrand,
	}

	seen := map[string]struct{}{}
	for i := 2; i < len(row) && i < maxColumns; i++ {
		value := row[i]
		if value == "" {
			continue
		}
		label := strings.ToUpper(cellAt(header, i))
		if label == "" {
			continue
		}
		// First occurrence wins when two columns share a header.
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		rec.TechnicalSpecs = append(rec.TechnicalSpecs, model.SpecGroup{
			SpecGroup: label,
			Specs:     []model.SpecEntry{{Name: label, Value: value}},
		})
	}

	return rec, true
}

func normalizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = normalizeCell(c)
	}
	return out
}

// normalizeCell collapses embedded line breaks to single spaces and trims
// the result. GetRows already resolves formulas and rich text to plain text.
func normalizeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func allEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
