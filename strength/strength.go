package strength

import "unicode/utf8"

// Result defines a public type used by goPassCheck APIs.
//
// Result instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Result struct {
	Score       int
	Suggestions []string
}

// Suggestion texts, in the fixed order rules are evaluated.
const (
	SuggestLonger    = "Make it longer (≥12 chars)"
	SuggestUppercase = "Add uppercase letters"
	SuggestLowercase = "Add lowercase letters"
	SuggestNumbers   = "Include numbers"
	SuggestSpecial   = "Add special characters"
)

// Score rates a candidate password on a 0..100 scale and lists what is
// missing. It is deterministic and defined for every string, including the
// empty string, which scores 0 with no suggestions.
func Score(password string) Result {
	if password == "" {
		return Result{Suggestions: []string{}}
	}

	length := utf8.RuneCountInString(password)

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	score := 0
	suggestions := make([]string, 0, 5)

	switch {
	case length >= 12:
		score += 30
	case length >= 8:
		score += 15
	case length > 0:
		// Suppressed for the empty password: an untouched field gets no
		// nagging, only typed-but-short input does.
		suggestions = append(suggestions, SuggestLonger)
	}

	if hasUpper {
		score += 15
	} else {
		suggestions = append(suggestions, SuggestUppercase)
	}
	if hasLower {
		score += 15
	} else {
		suggestions = append(suggestions, SuggestLowercase)
	}
	if hasDigit {
		score += 15
	} else {
		suggestions = append(suggestions, SuggestNumbers)
	}
	if hasSpecial {
		score += 25
	} else {
		suggestions = append(suggestions, SuggestSpecial)
	}

	if score > 100 {
		score = 100
	}

	return Result{
		Score:       score,
		Suggestions: suggestions,
	}
}
