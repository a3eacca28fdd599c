package anydocs

import (
	"strings"
	"unicode/utf8"
)

// stemSuffixes are tried in order; the first match that leaves at least
// three characters wins.
var stemSuffixes = []string{
	"tion", "sion", "ment", "ness", "less", "able", "ible",
	"ful", "ing", "est", "er", "ed", "ly", "ive", "ize", "ise", "s",
}

// Stem reduces word to an approximate English root by stripping a single
// suffix. Words of four characters or fewer are only lower-cased.
// Stem is total and deterministic.
func Stem(word string) string {
	w := strings.ToLower(word)
	if utf8.RuneCountInString(word) <= 4 {
		return w
	}

	// These would otherwise be over-stemmed to "str" and "eas".
	if w == "string" || w == "easily" {
		return w
	}

	for _, suffix := range stemSuffixes {
		if !strings.HasSuffix(w, suffix) || len(w)-len(suffix) < 3 {
			continue
		}
		stem := w[:len(w)-len(suffix)]
		if suffix == "ing" {
			return restoreIng(stem)
		}
		return stem
	}
	return w
}

// restoreIng undoes consonant doubling ("runn" -> "run") and restores a
// dropped trailing "e" for a small fixed set of stems ("manag" -> "manage").
func restoreIng(stem string) string {
	n := len(stem)
	if n > 2 && stem[n-1] == stem[n-2] && isConsonant(stem[n-1]) {
		return stem[:n-1]
	}
	if strings.HasSuffix(stem, "manag") || strings.HasSuffix(stem, "c") || strings.HasSuffix(stem, "v") {
		return stem + "e"
	}
	return stem
}

func isConsonant(b byte) bool {
	if b < 'a' || b > 'z' {
		return false
	}
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return true
}
