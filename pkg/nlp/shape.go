package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

func isLetterRune(r rune) bool { return unicode.IsLetter(r) }

// Shape maps a token to its orthographic shape: letters become x or X, digits d,
// other runes stay. Runs of the same class longer than 4 are cut to 4.
// "555-123-4567" -> "ddd-ddd-dddd", "Python" -> "Xxxxx".
func Shape(token string) string {
	var b strings.Builder
	var last rune
	run := 0
	for _, r := range token {
		c := shapeClass(r)
		if c == last {
			run++
		} else {
			last, run = c, 1
		}
		if run > 4 {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func shapeClass(r rune) rune {
	switch {
	case unicode.IsDigit(r):
		return 'd'
	case unicode.IsUpper(r):
		return 'X'
	case unicode.IsLetter(r):
		return 'x'
	default:
		return r
	}
}

var reLikeEmail = regexp.MustCompile(`^[\p{L}\p{N}._%+-]+@[\p{L}\p{N}-]+(\.[\p{L}\p{N}-]+)*\.[\p{L}]{2,}$`)

// LikeEmail reports whether a token looks like an email address.
func LikeEmail(token string) bool {
	return reLikeEmail.MatchString(token)
}

// FindShapes returns, in text order, every substring whose rune-wise shape equals
// one of shapes. Digit runs are not cut, so "ddd-ddd-dddd" does not match inside
// a longer number.
func FindShapes(text string, shapes []string) []string {
	runes := []rune(text)
	classes := make([]rune, len(runes))
	for i, r := range runes {
		classes[i] = shapeClass(r)
	}

	var out []string
	for i := range classes {
		if i > 0 && classes[i-1] == 'd' {
			continue
		}
		for _, s := range shapes {
			want := []rune(s)
			end := i + len(want)
			if end > len(classes) || string(classes[i:end]) != s {
				continue
			}
			if end < len(classes) && classes[end] == 'd' {
				continue
			}
			out = append(out, string(runes[i:end]))
			break
		}
	}
	return out
}
