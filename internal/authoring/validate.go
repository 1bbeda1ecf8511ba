package authoring

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/language"
)

const (
	minNameLength = 3
	maxNameLength = 50
)

// TextPolicy decides which entry texts are acceptable
type TextPolicy struct {
	MaxLength   int
	Punctuation string
}

// DefaultTextPolicy allows 250 characters and common punctuation
func DefaultTextPolicy() TextPolicy {
	return TextPolicy{MaxLength: 250, Punctuation: `.,;:!?'"()-/&`}
}

// Check trims text and validates it. field names the offending input in the error message.
func (p TextPolicy) Check(field, text string) (string, error) {
	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return "", apperr.Validation("%s must not be empty", field)
	}
	if n > p.MaxLength {
		return "", apperr.Validation("%s must be at most %d characters", field, p.MaxLength)
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == ' ' {
			continue
		}
		if strings.ContainsRune(p.Punctuation, r) {
			continue
		}
		return "", apperr.Validation("%s contains a disallowed character %q", field, r)
	}
	return text, nil
}

// checkName trims and validates a test name
func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return "", apperr.Validation("test name must be between %d and %d characters", minNameLength, maxNameLength)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return "", apperr.Validation("test name may only contain letters, digits and spaces")
		}
	}
	return name, nil
}

// checkLanguages normalizes both codes and requires two different recognized languages
func checkLanguages(from, to string) (string, string, error) {
	from, to = language.Normalize(from), language.Normalize(to)
	if !language.IsRecognized(from) {
		return "", "", apperr.Validation("unrecognized source language %q", from)
	}
	if !language.IsRecognized(to) {
		return "", "", apperr.Validation("unrecognized target language %q", to)
	}
	if from == to {
		return "", "", apperr.Validation("source and target language must differ")
	}
	return from, to, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
