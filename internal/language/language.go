// Package language resolves the effective language of an input text from an
// explicit override, a configured default, or statistical detection.
package language

import "strings"

// threeToTwo maps common ISO 639-2/3 codes onto their 639-1 equivalents.
var threeToTwo = map[string]string{
	"eng": "en",
	"deu": "de",
	"ger": "de",
	"spa": "es",
	"fra": "fr",
	"fre": "fr",
}

// Normalize reduces a language code to lower-case ISO 639-1: region subtags
// are stripped ("en-US" -> "en"), common 3-letter codes are mapped, and
// anything that does not reduce to two letters falls back to "en".
func Normalize(code string) string {
	base, _ := normalize(code)
	return base
}

// normalize reduces a code as Normalize does and additionally reports
// whether the result is a genuine reduction of the input, as opposed to the
// "en" fallback for codes with no two-letter form. The resolver needs the
// distinction to cap confidence on fallbacks.
func normalize(code string) (string, bool) {
	if code == "" {
		return "en", false
	}
	base := strings.ToLower(strings.ReplaceAll(code, " ", ""))
	base = strings.ReplaceAll(base, "_", "-")
	if idx := strings.Index(base, "-"); idx >= 0 {
		base = base[:idx]
	}
	if len(base) == 3 {
		if two, ok := threeToTwo[base]; ok {
			base = two
		}
	}
	if len(base) != 2 {
		return "en", false
	}
	return base, true
}
