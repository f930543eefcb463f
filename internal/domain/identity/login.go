package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LoginIndex holds the normalized lookup keys stored next to a person row
type LoginIndex struct {
	UsernameNorm string
	UsernameFlat string
	EmailNorm    string
	EmailFlat    string
}

// NormLogin trims, applies NFKC and lower-cases s
func NormLogin(s string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(s)))
}

// FlatLogin is NormLogin with diacritics removed and every
// character that is not a letter or digit dropped
func FlatLogin(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})),
		norm.NFC,
	)
	flat, _, err := transform.String(t, NormLogin(s))
	if err != nil {
		return ""
	}
	return flat
}

// BuildLoginIndex computes all four keys. Empty inputs yield empty keys.
func BuildLoginIndex(username, email string) LoginIndex {
	return LoginIndex{
		UsernameNorm: NormLogin(username),
		UsernameFlat: FlatLogin(username),
		EmailNorm:    NormLogin(email),
		EmailFlat:    FlatLogin(email),
	}
}
