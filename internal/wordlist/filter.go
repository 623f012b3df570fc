// Package wordlist provides word list filtering helpers.
package wordlist

import "unicode"

// Keep reports whether a word can be used as a hangman secret: one or more
// lower-case letters and nothing else.
func Keep(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) || !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// Filter returns the words accepted by Keep.
func Filter(words []string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if Keep(word) {
			out = append(out, word)
		}
	}
	return out
}
