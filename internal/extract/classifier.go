package extract

import (
	"strings"

	"lumicms/internal/model"
)

// FallbackGroup receives attributes whose label is not in the taxonomy.
const FallbackGroup = "GENERAL SPECIFICATIONS"

// Classifier files extracted attributes under their canonical taxonomy group.
// It is built once per batch run from the stored taxonomy and never mutated
// by classification itself; newly seen labels are returned to the caller for
// registration.
type Classifier struct {
	labelGroup map[string]string
	known      map[string]struct{}
}

func NewClassifier(groups []model.TaxonomyGroup, standaloneLabels []string) *Classifier {
	c := &Classifier{
		labelGroup: map[string]string{},
		known:      map[string]struct{}{},
	}
	for _, g := range groups {
		if !g.IsActive {
			continue
		}
		for _, item := range g.Items {
			label := strings.ToUpper(strings.TrimSpace(item.Label))
			if label == "" {
				continue
			}
			if _, ok := c.labelGroup[label]; !ok {
				c.labelGroup[label] = g.Name
			}
		}
	}
	for _, l := range standaloneLabels {
		c.known[strings.ToUpper(strings.TrimSpace(l))] = struct{}{}
	}
	return c
}

// Classify groups attributes by taxonomy membership, preserving attribute
// order and the order groups first appear. The second result lists labels
// absent from both the taxonomy and the standalone registry, each once.
func (c *Classifier) Classify(attrs []model.SpecEntry) ([]model.SpecGroup, []string) {
	var groups []model.SpecGroup
	index := map[string]int{}
	var newLabels []string

	for _, attr := range attrs {
		label := strings.ToUpper(strings.TrimSpace(attr.Name))
		groupName, ok := c.labelGroup[label]
		if !ok {
			groupName = FallbackGroup
			if _, registered := c.known[label]; !registered {
				c.known[label] = struct{}{}
				newLabels = append(newLabels, label)
			}
		}

		i, exists := index[groupName]
		if !exists {
			groups = append(groups, model.SpecGroup{SpecGroup: groupName})
			i = len(groups) - 1
			index[groupName] = i
		}
		if hasSpec(groups[i].Specs, label) {
			continue
		}
		groups[i].Specs = append(groups[i].Specs, model.SpecEntry{Name: label, Value: attr.Value})
	}

	return groups, newLabels
}

func hasSpec(specs []model.SpecEntry, name string) bool {
	for _, s := range specs {
		if s.Name == name {
			return true
		}
	}
	return false
}
