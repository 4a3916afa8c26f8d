// Package strength rates generated passwords.
package strength

import (
	"unicode/utf8"

	zxcvbn "github.com/ccojocar/zxcvbn-go"
)

// MaxScore is the highest value Score returns.
const MaxScore = 6

var labels = []string{
	"Very weak",
	"Weak",
	"Medium",
	"Good",
	"Strong",
	"Very strong",
}

// Score sums independent length and character-variety checks.
func Score(password string) int {
	if password == "" {
		return 0
	}
	score := 0
	n := utf8.RuneCountInString(password)
	if n >= 8 {
		score++
	}
	if n >= 12 {
		score++
	}
	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasOther} {
		if ok {
			score++
		}
	}
	return score
}

// Label maps a score to its display label. Scores above 5 share the top label.
func Label(score int) string {
	if score < 0 {
		score = 0
	}
	if score > len(labels)-1 {
		score = len(labels) - 1
	}
	return labels[score]
}

// Estimate is a pattern-aware strength estimate.
type Estimate struct {
	Score     int
	Entropy   float64
	CrackTime string
}

// Evaluate runs zxcvbn against the password.
func Evaluate(password string) Estimate {
	if password == "" {
		return Estimate{}
	}
	res := zxcvbn.PasswordStrength(password, nil)
	return Estimate{
		Score:     res.Score,
		Entropy:   res.Entropy,
		CrackTime: res.CrackTimeDisplay,
	}
}
