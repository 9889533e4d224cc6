package relative_date

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase splits s on spaces, underscores and hyphens and capitalizes every word,
// e.g. "mom's_BIRTHDAY-party" becomes "Mom's Birthday Party".
func TitleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	for i, word := range words {
		word = strings.ToLower(word)
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	return strings.Join(words, " ")
}
