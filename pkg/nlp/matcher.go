package nlp

import "strings"

// TokenSpec matches a single token.
type TokenSpec struct {
	In       []string // accepted lower-case forms, compared without trailing dots
	Alpha    bool     // any alphabetic token
	Tags     []string // accepted part-of-speech tag prefixes, any when empty
	Optional bool
}

// Rule is a labelled set of token sequences.
type Rule struct {
	Label    string
	Patterns [][]TokenSpec
}

// Match is one rule hit over a token slice.
type Match struct {
	Label      string
	Start, End int
	Text       string
}

// Matcher finds rule hits in tokenized text.
type Matcher struct {
	rules []Rule
}

func NewMatcher(rules ...Rule) *Matcher {
	return &Matcher{rules: rules}
}

// Match returns all hits in token order. Overlapping hits of different rules are kept.
func (m *Matcher) Match(tokens []Token) []Match {
	lower := make([]Token, len(tokens))
	for i, t := range tokens {
		lower[i] = Token{Text: strings.TrimRight(strings.ToLower(t.Text), "."), Tag: t.Tag}
	}

	var out []Match
	for start := range tokens {
		for _, r := range m.rules {
			for _, p := range r.Patterns {
				end, ok := matchAt(lower, start, p)
				if !ok || end == start {
					continue
				}
				out = append(out, Match{
					Label: r.Label,
					Start: start,
					End:   end,
					Text:  joinText(tokens[start:end]),
				})
				break
			}
		}
	}
	return out
}

// matchAt matches p greedily from tokens[pos], backtracking over optional specs.
func matchAt(tokens []Token, pos int, p []TokenSpec) (int, bool) {
	if len(p) == 0 {
		return pos, true
	}
	spec := p[0]
	if pos < len(tokens) && spec.accepts(tokens[pos]) {
		if end, ok := matchAt(tokens, pos+1, p[1:]); ok {
			return end, true
		}
	}
	if spec.Optional {
		return matchAt(tokens, pos, p[1:])
	}
	return 0, false
}

func (s TokenSpec) accepts(t Token) bool {
	tok := t.Text
	if tok == "" {
		return false
	}
	if len(s.Tags) > 0 && !hasTagPrefix(t.Tag, s.Tags) {
		return false
	}
	if s.Alpha {
		for _, r := range tok {
			if !isLetterRune(r) {
				return false
			}
		}
		return true
	}
	for _, w := range s.In {
		if tok == strings.TrimRight(w, ".") {
			return true
		}
	}
	return false
}

func hasTagPrefix(tag string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}

func joinText(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// Words builds a single-token spec.
func Words(words ...string) TokenSpec { return TokenSpec{In: words} }

// Phrase builds a pattern of consecutive literal words.
func Phrase(words ...string) []TokenSpec {
	p := make([]TokenSpec, len(words))
	for i, w := range words {
		p[i] = Words(w)
	}
	return p
}
