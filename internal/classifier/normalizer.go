// Package classifier routes free-text messages to one of the nine business
// categories through a chain of scoring tiers.
package classifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// foldTable is the complete accent folding applied by Normalize. Letters
// outside it are not transliterated and get dropped with the punctuation.
var foldTable = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c',
}

func foldAccent(r rune) rune {
	if folded, ok := foldTable[r]; ok {
		return folded
	}
	return r
}

// allowed keeps ASCII lowercase letters, digits and the ASCII whitespace set.
func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r < unicode.MaxASCII && unicode.IsSpace(r):
		return true
	}
	return false
}

// Normalize returns the canonical form every lexicon lookup works on:
// lowercase, accent-folded, stripped of everything but [a-z0-9] and
// whitespace, with whitespace runs collapsed to one space and trimmed.
// Blank input yields "". Normalize is idempotent.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// Caser is stateful, so the chain is built per call.
	t := transform.Chain(
		cases.Lower(language.BrazilianPortuguese),
		runes.Map(foldAccent),
		runes.Remove(runes.Predicate(func(r rune) bool { return !allowed(r) })),
	)
	out, _, _ := transform.String(t, text)

	return strings.Join(strings.Fields(out), " ")
}
