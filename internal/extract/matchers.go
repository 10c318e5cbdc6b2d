package extract

import (
	"fmt"
	"regexp"
	"strings"

	"lumicms/internal/model"
)

// Attribute type names produced by the matchers. These are the labels the
// taxonomy classifier resolves against.
const (
	AttrWattage          = "WATTAGE"
	AttrLightSource      = "LIGHT SOURCE"
	AttrColorTemperature = "COLOR TEMPERATURE"
	AttrBeamAngle        = "BEAM ANGLE"
	AttrMaterial         = "MATERIAL"
	AttrWorkingVoltage   = "WORKING VOLTAGE"
	AttrMounting         = "MOUNTING"
)

var (
	wattageRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*W\b`)
	ledCobRe      = regexp.MustCompile(`\bLED\s*COB\b|\bCOB\s*LED\b`)
	ledRe         = regexp.MustCompile(`\bLED\b`)
	kelvinRangeRe = regexp.MustCompile(`(\d{3,5})\s*K\s*(?:-|TO)\s*(\d{3,5})\s*K`)
	kelvinRe      = regexp.MustCompile(`(\d{4,5})\s*K\b`)
	beamAngleRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(°|DEGREES?\b)`)
	voltageRe     = regexp.MustCompile(`AC\s*(\d+)\s*(?:-|~)\s*(\d+)\s*V\s*(\d+)\s*/\s*(\d+)\s*HZ`)
)

// matcher is a pure function from the upper-cased description to at most one
// attribute. Matchers never interact; order only decides output position.
type matcher func(text string) (model.SpecEntry, bool)

var matchers = []matcher{
	matchWattage,
	matchLightSource,
	matchColorTemperature,
	matchBeamAngle,
	matchMaterial,
	matchWorkingVoltage,
	matchMounting,
}

// ShouldSkip reports whether a description must not be mined at all. Texts
// that already carry a "specification" block come from structured imports
// and re-extracting them produces garbage.
func ShouldSkip(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(text), "SPECIFICATION")
}

// ExtractSpecs runs the full matcher battery over a free-text description
// and returns the attributes found, at most one per type, in matcher order.
func ExtractSpecs(text string) []model.SpecEntry {
	if ShouldSkip(text) {
		return nil
	}
	upper := strings.ToUpper(text)

	var attrs []model.SpecEntry
	seen := map[string]struct{}{}
	for _, m := range matchers {
		attr, ok := m(upper)
		if !ok {
			continue
		}
		if _, dup := seen[attr.Name]; dup {
			continue
		}
		seen[attr.Name] = struct{}{}
		attrs = append(attrs, attr)
	}
	return attrs
}

func matchWattage(text string) (model.SpecEntry, bool) {
	matches := wattageRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return model.SpecEntry{}, false
	}
	var values []string
	seen := map[string]struct{}{}
	for _, m := range matches {
		v := m[1] + "W"
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return model.SpecEntry{Name: AttrWattage, Value: strings.Join(values, ", ")}, true
}

func matchLightSource(text string) (model.SpecEntry, bool) {
	if ledCobRe.MatchString(text) {
		return model.SpecEntry{Name: AttrLightSource, Value: "LED COB"}, true
	}
	if ledRe.MatchString(text) {
		return model.SpecEntry{Name: AttrLightSource, Value: "LED"}, true
	}
	return model.SpecEntry{}, false
}

func matchColorTemperature(text string) (model.SpecEntry, bool) {
	if m := kelvinRangeRe.FindStringSubmatch(text); m != nil {
		return model.SpecEntry{Name: AttrColorTemperature, Value: fmt.Sprintf("%sK-%sK", m[1], m[2])}, true
	}
	if m := kelvinRe.FindStringSubmatch(text); m != nil {
		return model.SpecEntry{Name: AttrColorTemperature, Value: m[1] + "K"}, true
	}
	if strings.Contains(text, "DAYLIGHT") {
		return model.SpecEntry{Name: AttrColorTemperature, Value: "DAYLIGHT"}, true
	}
	return model.SpecEntry{}, false
}

func matchBeamAngle(text string) (model.SpecEntry, bool) {
	m := beamAngleRe.FindStringSubmatch(text)
	if m == nil {
		return model.SpecEntry{}, false
	}
	if m[2] == "°" {
		return model.SpecEntry{Name: AttrBeamAngle, Value: m[1] + "°"}, true
	}
	return model.SpecEntry{Name: AttrBeamAngle, Value: m[1] + " DEGREE"}, true
}

func matchMaterial(text string) (model.SpecEntry, bool) {
	if strings.Contains(text, "ALUMINUM") || strings.Contains(text, "ALUMINIUM") {
		return model.SpecEntry{Name: AttrMaterial, Value: "ALUMINUM HOUSING + GLASS"}, true
	}
	return model.SpecEntry{}, false
}

func matchWorkingVoltage(text string) (model.SpecEntry, bool) {
	m := voltageRe.FindStringSubmatch(text)
	if m == nil {
		return model.SpecEntry{}, false
	}
	value := fmt.Sprintf("AC %s-%sV %s/%sHZ", m[1], m[2], m[3], m[4])
	return model.SpecEntry{Name: AttrWorkingVoltage, Value: value}, true
}

func matchMounting(text string) (model.SpecEntry, bool) {
	if strings.Contains(text, "BRACKET") {
		return model.SpecEntry{Name: AttrMounting, Value: "WITH BUILT-IN BRACKET"}, true
	}
	return model.SpecEntry{}, false
}
