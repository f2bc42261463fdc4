package nlp

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

const tokenTrim = `,;:!?"'()[]{}<>|`

// Token is a word of the source text with the part-of-speech tag of its first piece.
type Token struct {
	Text string
	Tag  string
}

// JoinTokens regroups tagger tokens into the words they were cut from. Pieces that
// touch in text are glued back, surrounding punctuation is dropped:
// "node" "." "js" ";" -> "node.js", "(" "B.S" "." -> "B.S.".
// Pieces that cannot be located in text stay on their own.
func JoinTokens(text string, toks []prose.Token) []Token {
	var (
		out []Token
		run []prose.Token
		pos int
	)
	flush := func() {
		if t, ok := joinRun(run); ok {
			out = append(out, t)
		}
		run = run[:0]
	}
	for _, t := range toks {
		i := strings.Index(text[pos:], t.Text)
		if i < 0 || t.Text == "" {
			flush()
			run = append(run, t)
			flush()
			continue
		}
		if i > 0 {
			flush()
		}
		run = append(run, t)
		pos += i + len(t.Text)
	}
	flush()
	return out
}

func joinRun(run []prose.Token) (Token, bool) {
	lo, hi := 0, len(run)
	for lo < hi && isPunct(run[lo].Text) {
		lo++
	}
	for hi > lo && isPunct(run[hi-1].Text) {
		hi--
	}
	if lo == hi {
		return Token{}, false
	}
	var b strings.Builder
	for _, t := range run[lo:hi] {
		b.WriteString(t.Text)
	}
	text := strings.Trim(b.String(), tokenTrim)
	if text == "" {
		return Token{}, false
	}
	return Token{Text: text, Tag: run[lo].Tag}, true
}

func isPunct(s string) bool { return strings.Trim(s, tokenTrim) == "" }
