package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lumicms/internal/model"
)

func buildWorkbook(t *testing.T, sheets map[string][][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParseWorkbook(t *testing.T) {
	t.Run("two-row sheet yields one record with grouped specs", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"LED Lamps": {
				{"Model", "Code", "Wattage", "Color Temp"},
				{"LampX", "ABC123", "40W", "3000K"},
			},
		})

		products, report := ParseWorkbook(wb)
		require.True(t, report.IsValid)
		require.Empty(t, report.Errors)
		require.Len(t, products, 1)

		want := model.ParsedProductRecord{
			SheetTitle:  "LED Lamps",
			ProductName: "LampX",
			ItemCode:    "ABC123",
			Brand:       DefaultBrand,
			TechnicalSpecs: []model.SpecGroup{
				{SpecGroup: "WATTAGE", Specs: []model.SpecEntry{{Name: "WATTAGE", Value: "40W"}}},
				{SpecGroup: "COLOR TEMP", Specs: []model.SpecEntry{{Name: "COLOR TEMP", Value: "3000K"}}},
			},
		}
		assert.Equal(t, want, products[0])
	})

	t.Run("excluded sheet names are skipped without error", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"Table of Content": {
				{"Model", "Code"},
				{"ShouldNotAppear", "X1"},
			},
			"Floodlights": {
				{"Model", "Code"},
				{"Flood A", "FL-01"},
			},
		})

		products, report := ParseWorkbook(wb)
		require.Len(t, products, 1)
		assert.Equal(t, "Flood A", products[0].ProductName)
		assert.Contains(t, report.SkippedSheets, "Table of Content")
		assert.Empty(t, report.Errors)
	})

	t.Run("near-miss sheet name is still scanned", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"Table of Contents Extra": {
				{"Model", "Code"},
				{"Lamp B", "LB-02"},
			},
		})

		products, report := ParseWorkbook(wb)
		require.True(t, report.IsValid)
		require.Len(t, products, 1)
		assert.Empty(t, report.SkippedSheets)
	})

	t.Run("rows missing either identity field are dropped silently", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"Panels": {
				{"Model", "Code", "Wattage"},
				{"NoCode", "", "18W"},
				{"", "NC-01", "18W"},
				{"", "", ""},
				{"Panel C", "PN-03", "24W"},
			},
		})

		products, report := ParseWorkbook(wb)
		require.Len(t, products, 1)
		assert.Equal(t, "Panel C", products[0].ProductName)
		assert.Empty(t, report.Errors)
	})

	t.Run("boilerplate navigation rows are dropped silently", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"Downlights": {
				{"Model", "Code"},
				{"Back to Table of Content", "Back to Table of Content"},
				{"Down A", "DL-01"},
			},
		})

		products, _ := ParseWorkbook(wb)
		require.Len(t, products, 1)
		assert.Equal(t, "Down A", products[0].ProductName)
	})

	t.Run("duplicate headers keep the first value only", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"Strips": {
				{"Model", "Code", "Wattage", "Wattage"},
				{"Strip A", "ST-01", "12W", "14W"},
			},
		})

		products, _ := ParseWorkbook(wb)
		require.Len(t, products, 1)
		require.Len(t, products[0].TechnicalSpecs, 1)
		assert.Equal(t, "12W", products[0].TechnicalSpecs[0].Specs[0].Value)
	})

	t.Run("cells under empty headers are ignored", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"Bulbs": {
				{"Model", "Code", "", "Beam Angle"},
				{"Bulb A", "BL-01", "orphan", "120°"},
			},
		})

		products, _ := ParseWorkbook(wb)
		require.Len(t, products, 1)
		require.Len(t, products[0].TechnicalSpecs, 1)
		assert.Equal(t, "BEAM ANGLE", products[0].TechnicalSpecs[0].SpecGroup)
	})

	t.Run("columns beyond Y are ignored", func(t *testing.T) {
		header := make([]string, 30)
		row := make([]string, 30)
		header[0], header[1] = "Model", "Code"
		row[0], row[1] = "Wide A", "WD-01"
		header[24], row[24] = "LastIn", "in"    // column Y
		header[25], row[25] = "FirstOut", "out" // column Z

		wb := buildWorkbook(t, map[string][][]string{"Wide": {header, row}})

		products, _ := ParseWorkbook(wb)
		require.Len(t, products, 1)
		require.Len(t, products[0].TechnicalSpecs, 1)
		assert.Equal(t, "LASTIN", products[0].TechnicalSpecs[0].SpecGroup)
	})

	t.Run("header-only sheet reports an error and is skipped", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"Empty": {
				{"Model", "Code"},
			},
		})

		products, report := ParseWorkbook(wb)
		assert.Empty(t, products)
		assert.False(t, report.IsValid)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "Empty")
		assert.Contains(t, report.SkippedSheets, "Empty")
	})

	t.Run("corrupt file is invalid with a single error", func(t *testing.T) {
		products, report := ParseWorkbook(strings.NewReader("not a workbook"))
		assert.Nil(t, products)
		assert.False(t, report.IsValid)
		assert.Len(t, report.Errors, 1)
		assert.Empty(t, report.SkippedSheets)
	})

	t.Run("line breaks in cells collapse to single spaces", func(t *testing.T) {
		wb := buildWorkbook(t, map[string][][]string{
			"HighBays": {
				{"Model", "Code", "Remarks"},
				{"Bay A", "HB-01", "IP65\nrated"},
			},
		})

		products, _ := ParseWorkbook(wb)
		require.Len(t, products, 1)
		assert.Equal(t, "IP65 rated", products[0].TechnicalSpecs[0].Specs[0].Value)
	})
}
