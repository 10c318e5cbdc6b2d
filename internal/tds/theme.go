package tds

import "strings"

type RGB struct {
	R, G, B int
}

// Theme controls the brand-dependent parts of the data sheet: footer band,
// the header gradient end color and which brand logo is placed top-right.
type Theme struct {
	Footer       RGB
	GradientEnd  RGB
	BrandLogoURL string
}

// siteLogoURL is the company logo shown on every sheet regardless of brand.
const siteLogoURL = "https://cdn.ecoshiftcorp.com/assets/logo_ecoshift_white.png"

var themes = map[string]Theme{
	"ECOSHIFT": {
		Footer:       RGB{R: 0, G: 106, B: 78},
		GradientEnd:  RGB{R: 198, G: 232, B: 212},
		BrandLogoURL: "https://cdn.ecoshiftcorp.com/assets/logo_ecoshift.png",
	},
	"LIT": {
		Footer:       RGB{R: 230, G: 126, B: 34},
		GradientEnd:  RGB{R: 250, G: 224, B: 196},
		BrandLogoURL: "https://cdn.ecoshiftcorp.com/assets/logo_lit.png",
	},
}

var defaultTheme = themes["ECOSHIFT"]

// themeFor never fails: unrecognized brands render with the default theme.
func themeFor(brand string) Theme {
	if t, ok := themes[strings.ToUpper(strings.TrimSpace(brand))]; ok {
		return t
	}
	return defaultTheme
}
