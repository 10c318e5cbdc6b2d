package model

// ImportReport is returned to the operator after a workbook import so they
// can decide whether to proceed with a partial result.
type ImportReport struct {
	IsValid       bool     `json:"isValid"`
	Errors        []string `json:"errors"`
	SkippedSheets []string `json:"skippedSheets"`
}
