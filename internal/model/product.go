package model

import "time"

type SpecEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type SpecGroup struct {
	SpecGroup string      `json:"specGroup"`
	Specs     []SpecEntry `json:"specs"`
}

// ParsedProductRecord is one product row extracted from a worksheet.
// Never mutated after the parser produces it.
type ParsedProductRecord struct {
	SheetTitle     string      `json:"sheetTitle"`
	ProductName    string      `json:"productName"`
	ItemCode       string      `json:"itemCode"`
	Brand          string      `json:"brand"`
	TechnicalSpecs []SpecGroup `json:"technicalSpecs"`
}

// Product is the persisted catalog document.
type Product struct {
	ID                  string
	ItemCode            string
	Name                string
	Brand               string
	Description         string
	ImportSource        string
	MainImageURL        string
	DimensionDrawingURL string
	MountingHeightURL   string
	TechnicalSpecs      []SpecGroup
	UpdatedAt           time.Time
	UpdatedBy           string
}
