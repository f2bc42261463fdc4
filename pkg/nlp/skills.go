package nlp

import "strings"

// skillAliases lists extra spellings searched for a normalized skill.
// Abbreviations only point one way: "machine learning" also matches "ml",
// but the skill "ml" does not match "machine learning".
var skillAliases = map[string][]string{
	"postgres":                {"postgresql"},
	"postgresql":              {"postgres"},
	"k8s":                     {"kubernetes"},
	"kubernetes":              {"k8s"},
	"golang":                  {"go"},
	"js":                      {"javascript"},
	"node js":                 {"nodejs"},
	"nodejs":                  {"node js"},
	"rest":                    {"rest api", "restful api"},
	"rest api":                {"restful api"},
	"ci cd":                   {"cicd"},
	"cicd":                    {"ci cd"},
	"machine learning":        {"ml"},
	"artificial intelligence": {"ai"},
	"scikit learn":            {"sklearn"},
}

// canonicalTokens rewrites single words inside multi-word skills, so
// "postgres replication" also matches "postgresql replication".
var canonicalTokens = map[string]string{
	"postgres": "postgresql",
	"k8s":      "kubernetes",
	"ts":       "typescript",
}

// SkillVariants returns the normalized skill followed by its aliases, without duplicates.
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return nil
	}
	out := []string{base}
	add := func(s string) {
		for _, v := range out {
			if v == s {
				return
			}
		}
		out = append(out, s)
	}
	for _, a := range skillAliases[base] {
		add(a)
	}
	if parts := strings.Fields(base); len(parts) > 1 {
		for i, p := range parts {
			parts[i] = CanonicalToken(p)
		}
		add(strings.Join(parts, " "))
	}
	return out
}

// CanonicalToken returns the preferred spelling of a normalized word.
func CanonicalToken(token string) string {
	if c, ok := canonicalTokens[token]; ok {
		return c
	}
	return token
}
