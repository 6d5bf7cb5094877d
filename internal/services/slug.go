// Package services – slug helpers
//
// Tag slugs are the URL-safe identity used by the recipe list filter. They
// are generated when tags are seeded and validated against the same shape
// the transport accepts.
package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugRE is the accepted slug shape: letters, digits, hyphens, underscores.
var slugRE = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// stripMarks decomposes to NFKD and drops combining marks, so "Crème" folds
// to "Creme" before the ASCII reduction below.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// IsSlug reports whether s is a valid, URL-safe tag slug.
func IsSlug(s string) bool {
	return s != "" && slugRE.MatchString(s)
}

// Slugify derives a URL-safe slug from a display name: diacritics stripped,
// lowercased, runs of other characters collapsed to single hyphens.
func Slugify(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
