package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText приводит текст к упрощённому виду для сравнения:
// нижний регистр, не-буквенно-цифровые символы заменены пробелами, пробелы схлопнуты.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeSkill нормализует навык (фразу), чтобы корректно матчить multi-word навыки.
func NormalizeSkill(skill string) string {
	return NormalizeText(skill)
}

// ContainsPhrase reports whether an already normalized phrase occurs as whole words.
// "rest api" is found in "... rest api ..." but not in "... rest apis ...".
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	hay := " " + normalizedText + " "
	needle := " " + normalizedPhrase + " "
	return strings.Contains(hay, needle)
}

// Title mimics title-casing of skill names: a letter is upper-cased when it follows
// a non-letter, lower-cased otherwise ("node.js" -> "Node.Js", "ci/cd" -> "Ci/Cd").
func Title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := isLetterRune(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteString(strings.ToUpper(string(r)))
		case isLetter:
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
