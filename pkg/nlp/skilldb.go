package nlp

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultSkills is the built-in skills vocabulary.
var DefaultSkills = []string{
	"python", "java", "javascript", "react", "angular", "vue", "node.js",
	"django", "flask", "spring", "express", "docker", "kubernetes",
	"aws", "azure", "gcp", "mongodb", "postgresql", "mysql", "redis",
	"machine learning", "deep learning", "data science", "ai", "ml",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"git", "jenkins", "ci/cd", "agile", "scrum", "rest api", "graphql",
}

var ErrNoSkillColumn = errors.New("skills csv has no \"skill\" column")

// SkillDB matches a fixed vocabulary of skills against text.
type SkillDB struct {
	skills   []string
	variants [][]string
}

// NewSkillDB builds a DB from raw skill names. Blank and duplicate names are dropped.
func NewSkillDB(skills []string) *SkillDB {
	db := &SkillDB{}
	seen := map[string]struct{}{}
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		db.skills = append(db.skills, s)
		db.variants = append(db.variants, SkillVariants(s))
	}
	return db
}

// DefaultSkillDB returns a DB over DefaultSkills.
func DefaultSkillDB() *SkillDB { return NewSkillDB(DefaultSkills) }

// LoadSkillDB reads a CSV with a "skill" header column. An empty path gives the default DB.
func LoadSkillDB(path string) (*SkillDB, error) {
	if path == "" {
		return DefaultSkillDB(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skills file: %w", err)
	}
	defer f.Close()
	skills, err := ReadSkillsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read skills file %s: %w", path, err)
	}
	return NewSkillDB(skills), nil
}

// ReadSkillsCSV returns the values of the "skill" column.
func ReadSkillsCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "skill") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrNoSkillColumn
	}

	var out []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if col < len(rec) {
			out = append(out, rec[col])
		}
	}
	return out, nil
}

// Len returns the vocabulary size.
func (db *SkillDB) Len() int { return len(db.skills) }

// Find returns the vocabulary entries present in text as whole words, in vocabulary order.
func (db *SkillDB) Find(text string) []string {
	norm := NormalizeText(text)
	var out []string
	for i, s := range db.skills {
		for _, v := range db.variants[i] {
			if ContainsPhrase(norm, v) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
