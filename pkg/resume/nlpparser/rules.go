package nlpparser

import (
	"regexp"

	"github.com/artem13815/resumecompare/pkg/nlp"
)

const (
	labelDegree = "DEGREE"
	labelSkill  = "SKILL"
)

// Entity labels of the prose NER model.
const (
	entityPerson = "PERSON"
	entityOrg    = "ORGANIZATION"
	entityGPE    = "GPE"
)

var phoneShapes = []string{"ddd-ddd-dddd", "(ddd) ddd-dddd", "ddd.ddd.dddd", "ddd ddd dddd"}

var (
	reEmail     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	rePhoneUS   = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	rePhoneIntl = regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	reYears     = regexp.MustCompile(`(\d+)[\s+]*(?:years|year|experience)`)
	reDigit     = regexp.MustCompile(`\d`)
	reCompany   = regexp.MustCompile(`\b(?:[A-Z][\w&.-]*\s+){1,3}(?:Inc|LLC|Ltd|Corp|Corporation|Company|GmbH|Technologies|Solutions|Group|Labs)\b\.?`)
	reSegments  = regexp.MustCompile(`\s*(?:[,|•·]|\s[-–—]\s)\s*`)
)

var (
	addressWords   = []string{"street", "road", "avenue", "drive", "lane", "heritage", "apartment", "building"}
	schoolWords    = []string{"university", "college", "institute", "school"}
	techWords      = []string{"js", "sql", "api", "framework", "library"}
	titleHeads     = []string{"engineer", "developer", "manager", "analyst", "consultant", "specialist", "coordinator", "director", "lead", "intern", "associate", "architect", "designer"}
	titleModifiers = []string{"senior", "junior", "lead", "principal", "staff", "chief", "head"}
	jobKeywords    = append(append([]string{}, titleHeads...), "senior", "junior")
)

func newMatcher() *nlp.Matcher {
	return nlp.NewMatcher(
		nlp.Rule{Label: labelDegree, Patterns: [][]nlp.TokenSpec{
			{
				nlp.Words("bachelor", "bachelors", "bachelor's", "master", "masters", "master's", "phd", "doctorate", "b.s.", "m.s.", "ph.d."),
				{In: []string{"of"}, Optional: true},
				nlp.Words("science", "arts", "engineering", "technology", "business"),
			},
			{
				nlp.Words("bs", "ms", "phd", "ba", "ma"),
				{In: []string{"in"}, Optional: true},
				{Alpha: true, Tags: []string{"NN", "JJ"}},
			},
		}},
		nlp.Rule{Label: labelSkill, Patterns: [][]nlp.TokenSpec{
			{nlp.Words("python", "java", "javascript", "react", "angular", "node.js", "docker", "kubernetes")},
			nlp.Phrase("machine", "learning"),
			nlp.Phrase("data", "science"),
			nlp.Phrase("artificial", "intelligence"),
		}},
	)
}
