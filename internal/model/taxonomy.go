package model

type TaxonomyItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TaxonomyGroup is the canonical set of known specification labels for one
// group. Maintained by staff through the dashboard; read-only input for the
// description extractor.
type TaxonomyGroup struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Items    []TaxonomyItem `json:"items"`
	IsActive bool           `json:"isActive"`
}
