// Package nlpparser extracts resume fields with tokenization, sentence segmentation
// and named-entity recognition (prose) plus token rules.
package nlpparser

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"github.com/artem13815/resumecompare/pkg/document"
	"github.com/artem13815/resumecompare/pkg/logger"
	"github.com/artem13815/resumecompare/pkg/nlp"
	"github.com/artem13815/resumecompare/pkg/resume"
)

// Name is the response key of this extractor.
const Name = "spacy_parser"

const (
	maxSkills    = 10
	maxCompanies = 5
	maxPositions = 3
	nameWindow   = 2000
	maxYears     = 60
)

type Parser struct {
	skills  *nlp.SkillDB
	matcher *nlp.Matcher
	log     *zap.Logger
}

// New returns a parser over the given skills vocabulary (nil means the default one).
func New(skills *nlp.SkillDB, log *zap.Logger) *Parser {
	if skills == nil {
		skills = nlp.DefaultSkillDB()
	}
	return &Parser{skills: skills, matcher: newMatcher(), log: logger.OrNop(log)}
}

func (p *Parser) Name() string { return Name }

func (p *Parser) Extract(ctx context.Context, text document.Text) (*resume.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text.Content) == "" {
		return nil, resume.ErrNoText
	}

	a, err := p.analyze(text.Content)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	positions := a.positions()
	res := &resume.ParseResult{
		Name:            resume.StringPtr(a.name()),
		Email:           resume.StringPtr(a.email()),
		MobileNumber:    resume.StringPtr(a.phone()),
		Skills:          resume.Cap(a.skills(p.skills), maxSkills),
		Education:       a.education(),
		Experience:      resume.Cap(positions, maxPositions),
		NoOfPages:       text.PageCount(),
		CompanyNames:    resume.Cap(a.companies(), maxCompanies),
		Designation:     resume.Cap(designations(positions), maxPositions),
		TotalExperience: a.totalExperience(),
	}
	p.log.Debug("nlp extraction done",
		zap.Int("entities", len(a.entities)),
		zap.Int("sentences", len(a.sentences)),
		zap.Int("rule_matches", len(a.matches)),
	)
	return res, nil
}

// analysis holds the NLP views of one document.
type analysis struct {
	text      string
	lines     []string
	tokens    []nlp.Token
	matches   []nlp.Match
	entities  []prose.Entity
	sentences []string
}

func (p *Parser) analyze(text string) (a *analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("nlp pipeline: %v", r)
		}
	}()

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("nlp pipeline: %w", err)
	}

	a = &analysis{
		text:     text,
		lines:    resume.Lines(text),
		tokens:   nlp.JoinTokens(text, doc.Tokens()),
		entities: doc.Entities(),
	}
	a.matches = p.matcher.Match(a.tokens)
	for _, s := range doc.Sentences() {
		for _, part := range strings.Split(s.Text, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				a.sentences = append(a.sentences, part)
			}
		}
	}
	return a, nil
}

func (a *analysis) name() string {
	// 1. a short capitalized line near the top without contacts or an address
	for _, line := range firstN(a.lines, 8) {
		for _, cand := range resume.NameCandidates(line) {
			if strings.Contains(cand, "@") || rePhoneUS.MatchString(cand) || reEmail.MatchString(cand) {
				continue
			}
			if isNameLine(cand) {
				return cand
			}
		}
	}

	// 2. a PERSON entity near the top
	head := a.text
	if len(head) > nameWindow {
		head = head[:nameWindow]
	}
	for _, e := range a.entities {
		if e.Label != entityPerson {
			continue
		}
		if n := len(strings.Fields(e.Text)); n >= 2 && n <= 4 && strings.Contains(head, e.Text) {
			return strings.TrimSpace(e.Text)
		}
	}

	// 3. any line of two to four plain words
	for _, line := range firstN(a.lines, 5) {
		if n := len(strings.Fields(line)); n >= 2 && n <= 4 && isAlpha(strings.ReplaceAll(line, " ", "")) {
			return line
		}
	}
	return ""
}

func isNameLine(s string) bool {
	words := strings.Fields(s)
	if len(words) < 2 || len(words) > 4 || reDigit.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, w := range addressWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	if strings.ToUpper(s) == s && strings.ToLower(s) != s {
		return true
	}
	for _, w := range words {
		if !strings.HasPrefix(nlp.Shape(w), "X") {
			return false
		}
	}
	return true
}

func (a *analysis) email() string {
	for _, t := range a.tokens {
		if nlp.LikeEmail(t.Text) {
			return t.Text
		}
	}
	return reEmail.FindString(a.text)
}

func (a *analysis) phone() string {
	if found := nlp.FindShapes(a.text, phoneShapes); len(found) > 0 {
		return found[0]
	}
	if m := rePhoneIntl.FindString(a.text); m != "" {
		return m
	}
	return rePhoneUS.FindString(a.text)
}

func (a *analysis) education() []string {
	var out dedup
	for _, e := range a.entities {
		if e.Label == entityOrg && containsAny(strings.ToLower(e.Text), schoolWords) {
			out.add(e.Text)
		}
	}
	if len(out.items) == 0 {
		for _, line := range a.lines {
			if line != "" && len(strings.Fields(line)) <= 12 && containsAny(strings.ToLower(line), schoolWords) {
				out.add(line)
			}
		}
	}
	for _, m := range a.matches {
		if m.Label == labelDegree {
			out.add(m.Text)
		}
	}
	return out.items
}

func (a *analysis) skills(db *nlp.SkillDB) []string {
	var out dedup
	for _, s := range db.Find(a.text) {
		out.add(nlp.Title(s))
	}
	for _, m := range a.matches {
		if m.Label == labelSkill {
			out.add(m.Text)
		}
	}
	for _, e := range a.entities {
		if e.Label == entityPerson || e.Label == entityGPE {
			continue
		}
		if mentionsTech(e.Text) {
			out.add(e.Text)
		}
	}
	return out.items
}

func mentionsTech(s string) bool {
	for _, tok := range strings.Fields(nlp.NormalizeText(s)) {
		for _, w := range techWords {
			if strings.HasSuffix(tok, w) {
				return true
			}
		}
	}
	return false
}

func (a *analysis) companies() []string {
	var out dedup
	for _, e := range a.entities {
		if e.Label == entityOrg && !containsAny(strings.ToLower(e.Text), schoolWords) {
			out.add(e.Text)
		}
	}
	if len(out.items) > 0 {
		return out.items
	}
	for _, line := range a.lines {
		for _, seg := range reSegments.Split(line, -1) {
			if containsAny(strings.ToLower(seg), schoolWords) {
				continue
			}
			for _, name := range reCompany.FindAllString(seg, -1) {
				out.add(name)
			}
		}
	}
	return out.items
}

func (a *analysis) positions() []string {
	var out dedup
	for _, s := range a.sentences {
		words := strings.Fields(nlp.NormalizeText(s))
		if hasAnyWord(words, jobKeywords) {
			out.add(s)
		}
	}
	return out.items
}

// designations pulls the job title out of each position sentence: the last title
// head word plus up to three capitalized or modifier words before it.
func designations(positions []string) []string {
	var out dedup
	for _, s := range positions {
		if t := titlePhrase(s); t != "" {
			out.add(t)
		}
	}
	return out.items
}

func titlePhrase(sentence string) string {
	raw := strings.Fields(sentence)
	head := -1
	for i, w := range raw {
		if isOneOf(cleanWord(w), titleHeads) {
			head = i
		}
	}
	if head < 0 {
		return ""
	}
	start := head
	for i := head - 1; i >= 0 && head-i <= 3; i-- {
		w := raw[i]
		if strings.TrimRight(w, ",;:|") != w {
			break
		}
		c := cleanWord(w)
		if !isOneOf(c, titleModifiers) && !strings.HasPrefix(nlp.Shape(strings.Trim(w, "()[]\"'")), "X") {
			break
		}
		start = i
	}
	words := make([]string, 0, head-start+1)
	for _, w := range raw[start : head+1] {
		words = append(words, strings.Trim(w, ",;:|()[]\"'."))
	}
	return strings.Join(words, " ")
}

func (a *analysis) totalExperience() string {
	best := -1
	for _, m := range reYears.FindAllStringSubmatch(strings.ToLower(a.text), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxYears {
			continue
		}
		if n > best {
			best = n
		}
	}
	if best < 0 {
		return ""
	}
	return fmt.Sprintf("%d+ years", best)
}

// dedup keeps the first spelling of case-insensitively equal items.
type dedup struct {
	seen  map[string]struct{}
	items []string
}

func (d *dedup) add(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	key := strings.ToLower(s)
	if d.seen == nil {
		d.seen = map[string]struct{}{}
	}
	if _, ok := d.seen[key]; ok {
		return
	}
	d.seen[key] = struct{}{}
	d.items = append(d.items, s)
}

func firstN(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func cleanWord(w string) string {
	return nlp.NormalizeText(w)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// hasAnyWord matches whole words, allowing a plural "s".
func hasAnyWord(words, set []string) bool {
	for _, w := range words {
		if isOneOf(w, set) || isOneOf(strings.TrimSuffix(w, "s"), set) {
			return true
		}
	}
	return false
}

func isOneOf(s string, set []string) bool {
	for _, x := range set {
		if s == x {
			return true
		}
	}
	return false
}
