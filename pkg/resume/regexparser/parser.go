// Package regexparser extracts resume fields with fixed textual patterns.
package regexparser

import (
	"context"
	"regexp"
	"strings"

	"github.com/artem13815/resumecompare/pkg/document"
	"github.com/artem13815/resumecompare/pkg/resume"
)

// Name is the response key of this extractor.
const Name = "regex_parser"

var (
	reEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	rePhone = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	reDigit = regexp.MustCompile(`\d`)
)

type section struct {
	keywords []string
	stops    []string
	limit    int
}

var (
	skillsSection = section{
		keywords: []string{"skills", "technical skills", "technologies", "programming languages"},
		stops:    []string{"experience", "education", "projects", "work history"},
		limit:    5,
	}
	educationSection = section{
		keywords: []string{"education", "academic", "university", "college", "degree"},
		stops:    []string{"experience", "skills", "projects", "work history"},
		limit:    3,
	}
	experienceSection = section{
		keywords: []string{"experience", "work history", "employment", "professional experience"},
		stops:    []string{"education", "skills", "projects"},
		limit:    5,
	}
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Name() string { return Name }

func (p *Parser) Extract(ctx context.Context, text document.Text) (*resume.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text.Content) == "" {
		return nil, resume.ErrNoText
	}
	content := text.Content
	lines := resume.Lines(content)

	return &resume.ParseResult{
		Name:         resume.StringPtr(extractName(lines)),
		Email:        resume.StringPtr(reEmail.FindString(content)),
		MobileNumber: resume.StringPtr(rePhone.FindString(content)),
		Skills:       extractSection(lines, skillsSection),
		Education:    extractSection(lines, educationSection),
		Experience:   extractSection(lines, experienceSection),
		NoOfPages:    text.PageCount(),
	}, nil
}

// extractName takes the first short line near the top that holds no contact details.
func extractName(lines []string) string {
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		for _, cand := range resume.NameCandidates(line) {
			if looksLikeName(cand) {
				return cand
			}
		}
	}
	return ""
}

func looksLikeName(s string) bool {
	words := strings.Fields(s)
	return len(words) > 0 && len(words) <= 4 &&
		!strings.Contains(s, "@") &&
		!reDigit.MatchString(s)
}

// extractSection collects the lines following a header that mentions one of the
// section keywords, up to the next stop header.
func extractSection(lines []string, s section) []string {
	var items []string
	capturing := false
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, s.keywords):
			capturing = true
		case capturing && hasAnyPrefix(lower, s.stops):
			return resume.Cap(items, s.limit)
		case capturing && line != "":
			items = append(items, line)
		}
	}
	return resume.Cap(items, s.limit)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
