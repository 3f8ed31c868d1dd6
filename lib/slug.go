package lib

import (
	"strings"
	"unicode"
)

// cyrillicTranslit maps Russian letters to their latin transliteration.
var cyrillicTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// SlugifyTitle builds a URL slug from a product title: Cyrillic letters are
// transliterated, everything else is lowercased, and any run of characters
// outside [a-z0-9] collapses to a single hyphen.
func SlugifyTitle(title string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(title) {
		if translit, ok := cyrillicTranslit[r]; ok {
			b.WriteString(translit)
			continue
		}
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('-')
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// SanitizeNumericString strips everything except digits and a single decimal
// separator from a price input, normalizing comma to dot.
func SanitizeNumericString(s string) string {
	var b strings.Builder
	seenDot := false

	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case (r == '.' || r == ',') && !seenDot:
			b.WriteRune('.')
			seenDot = true
		}
	}
	return b.String()
}
