package openai

import "strings"

// normalizeQuery collapses runs of whitespace and trims the query.
func normalizeQuery(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
