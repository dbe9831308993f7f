// Package naming converts free-form text into kebab-case slugs suitable for
// npm package names and project folders.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("'", "", "’", "")

// Kebab converts s to lowercase words joined by single hyphens.
// Examples: "My Cool App" → my-cool-app, "HTTPServer2" → http-server-2,
// "Crème Brûlée" → creme-brulee. Input without letters or digits yields "".
//
// Kebab is idempotent: Kebab(Kebab(s)) == Kebab(s).
func Kebab(s string) string {
	words := Words(fold(s))
	for i, w := range words {
		words[i] = fold(w)
	}
	return strings.Join(words, "-")
}

// Words splits s into lowercase words. Words break on any rune that is not
// a letter or digit, on lower→upper transitions, at the end of an acronym
// (the "S" in "HTTPServer" starts a new word) and between letters and digits.
// Apostrophes are dropped so "don't" stays a single word.
func Words(s string) []string {
	rs := []rune(apostrophes.Replace(s))

	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	for i, r := range rs {
		if !isWordRune(r) {
			flush()
			continue
		}
		if len(current) > 0 && isBoundary(rs[i-1], r, peek(rs, i+1)) {
			flush()
		}
		current = append(current, r)
	}
	flush()

	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBoundary(prev, r, next rune) bool {
	switch {
	case unicode.IsDigit(prev) != unicode.IsDigit(r):
		return true
	case unicode.IsLower(prev) && isUpper(r):
		return true
	case isUpper(prev) && isUpper(r) && unicode.IsLower(next):
		return true
	}
	return false
}

// isUpper reports whether r is an uppercase letter that lowercasing changes.
// Letters like ϒ or ℝ are uppercase but survive strings.ToLower, so they
// must not start a word or Kebab would split them on a second pass.
func isUpper(r rune) bool {
	return unicode.IsUpper(r) && unicode.ToLower(r) != r
}

func peek(rs []rune, i int) rune {
	if i < len(rs) {
		return rs[i]
	}
	return 0
}

// fold strips combining marks so accented Latin letters become their base
// letter. A new transformer is built per call because transformers carry state.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
