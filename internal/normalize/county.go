package normalize

import (
	"regexp"
	"strings"
)

var (
	multiSpace      = regexp.MustCompile(`\s+`)
	nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9 ]+`)
)

// Designators stripped from county names. The census county reference and the
// locality file disagree on these ("St. Louis County" vs "SAINT LOUIS CNTY"),
// so both sides must pass through County before comparison.
var countyDesignators = []string{
	"COUNTY", "CITY", "PARISH", "MUNICIPIO", "BOROUGH", "CNTY",
}

// County reduces a county name to a canonical token: uppercase, SAINT→ST and
// SAINTE→STE, county-type designators removed, non-alphanumerics stripped,
// whitespace collapsed. Idempotent: County(County(s)) == County(s).
func County(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "SAINTE", "STE")
	s = strings.ReplaceAll(s, "SAINT", "ST")
	s = nonAlphanumeric.ReplaceAllString(s, " ")
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if isDesignator(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, "")
}

func isDesignator(word string) bool {
	for _, d := range countyDesignators {
		if word == d {
			return true
		}
	}
	return false
}
