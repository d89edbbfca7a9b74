// Package password validates and scores wallet passwords before they are
// used as encryption secrets.
package password

import (
	"fmt"
	"strings"
	"unicode"

	"mcwallet/internal/model"
)

// MinLength is the minimum password length accepted by the strength gate.
const MinLength = 10

// commonPasswords is a small denylist of passwords seen in every breach dump.
// Membership forces the advisory score to 0 regardless of other credit.
var commonPasswords = map[string]struct{}{
	"password":      {},
	"password1":     {},
	"password123":   {},
	"123456":        {},
	"12345678":      {},
	"123456789":     {},
	"1234567890":    {},
	"qwerty":        {},
	"qwerty123":     {},
	"qwertyuiop":    {},
	"letmein":       {},
	"welcome":       {},
	"welcome1":      {},
	"admin":         {},
	"administrator": {},
	"iloveyou":      {},
	"monkey":        {},
	"dragon":        {},
	"sunshine":      {},
	"princess":      {},
	"abc123":        {},
	"passw0rd":      {},
	"p@ssword":      {},
	"trustno1":      {},
}

// scoreLabels maps the clamped 0..4 score to its ordinal label.
var scoreLabels = [5]string{"very-weak", "weak", "fair", "strong", "very-strong"}

// Validate is the strength gate used before a password may become an
// encryption secret: length >= MinLength and all four character classes
// present. The error names which classes are missing.
func Validate(password string) error {
	if strings.TrimSpace(password) == "" {
		return &model.ConfigError{Message: "password cannot be empty"}
	}

	var missing []string
	if len(password) < MinLength {
		missing = append(missing, fmt.Sprintf("length >= %d", MinLength))
	}

	hasLower, hasUpper, hasDigit, hasSymbol := classes(password)
	if !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "digit")
	}
	if !hasSymbol {
		missing = append(missing, "symbol")
	}

	if len(missing) > 0 {
		return &model.ConfigError{
			Message: "insufficient password strength, missing: " + strings.Join(missing, ", "),
		}
	}
	return nil
}

// Score returns an advisory 0..4 strength score and its label. It is meant
// for UI feedback and does not gate anything.
func Score(password string) (int, string) {
	if password == "" {
		return 0, scoreLabels[0]
	}
	if _, common := commonPasswords[strings.ToLower(password)]; common {
		return 0, scoreLabels[0]
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	if len(password) >= 12 {
		score++
	}
	if len(password) >= 16 {
		score++
	}

	hasLower, hasUpper, hasDigit, hasSymbol := classes(password)
	diversity := 0
	for _, present := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if present {
			diversity++
		}
	}
	if diversity >= 3 {
		score++
	}

	if hasRepeatedRun(password, 3) {
		score--
	}
	if hasAscendingRun(password, 3) {
		score--
	}

	if score < 0 {
		score = 0
	}
	if score > 4 {
		score = 4
	}
	return score, scoreLabels[score]
}

// classes reports which of the four character classes appear in s.
func classes(s string) (hasLower, hasUpper, hasDigit, hasSymbol bool) {
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return
}

// hasRepeatedRun reports whether s contains n or more identical characters
// in a row ("aaa", "111").
func hasRepeatedRun(s string, n int) bool {
	runes := []rune(s)
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// hasAscendingRun reports whether s contains an ascending alphabetic or
// numeric run of n or more characters ("abc", "123"). Case-insensitive.
func hasAscendingRun(s string, n int) bool {
	runes := []rune(strings.ToLower(s))
	run := 1
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		sameKind := (isLatin(prev) && isLatin(cur)) || (unicode.IsDigit(prev) && unicode.IsDigit(cur))
		if sameKind && cur == prev+1 {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func isLatin(r rune) bool {
	return r >= 'a' && r <= 'z'
}
