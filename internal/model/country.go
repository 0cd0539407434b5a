package model

import "golang.org/x/text/cases"

// fold is stateless and safe for concurrent use.
var fold = cases.Fold()

// CountryKey returns the form of a country name used for matching:
// the whole string, Unicode case-folded. "Japan", "JAPAN" and "jApAn"
// share one key; "Jap" does not share it with "Japan".
//
// The input is never interpreted as a pattern, so names containing
// characters like '.', '*' or '(' match only themselves.
func CountryKey(country string) string {
	return fold.String(country)
}

// MatchCountry returns a predicate that is true for stored country names
// equal to country under case-insensitive, whole-string comparison.
func MatchCountry(country string) func(stored string) bool {
	key := CountryKey(country)
	return func(stored string) bool {
		return CountryKey(stored) == key
	}
}
