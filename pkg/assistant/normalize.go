// Package assistant implements the ATS chat assistant: a rule-based message
// dispatcher that classifies free text into an intent, consults the ATS
// directories and answers with text, a navigation target or clickable results.
package assistant

import "strings"

// Normalized is the view of a message every rule matches against.
type Normalized struct {
	Raw     string
	Trimmed string
	Lower   string
	Words   []string
}

// Normalize trims and lowercases raw input. It never fails; empty input
// yields empty fields.
func Normalize(raw string) Normalized {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	return Normalized{
		Raw:     raw,
		Trimmed: trimmed,
		Lower:   lower,
		Words:   strings.Fields(lower),
	}
}

// Bare returns the lowercase message without surrounding punctuation.
func (n Normalized) Bare() string {
	return strings.Trim(n.Lower, " .,!?;:")
}

// WordCount counts whitespace separated words.
func (n Normalized) WordCount() int {
	return len(n.Words)
}

// HasWord reports whether any of the words appears as a whole word,
// ignoring surrounding punctuation.
func (n Normalized) HasWord(words ...string) bool {
	for _, w := range n.Words {
		w = strings.Trim(w, ".,!?;:'\"()")
		for _, target := range words {
			if w == target {
				return true
			}
		}
	}
	return false
}

// Contains reports whether the lowercase message contains any of the phrases.
func (n Normalized) Contains(phrases ...string) bool {
	return containsAny(n.Lower, phrases)
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
