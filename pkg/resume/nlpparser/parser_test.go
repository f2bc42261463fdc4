package nlpparser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jdkato/prose/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumecompare/pkg/document"
	"github.com/artem13815/resumecompare/pkg/nlp"
	"github.com/artem13815/resumecompare/pkg/resume"
)

func extract(t *testing.T, content string) *resume.ParseResult {
	t.Helper()
	res, err := New(nil, nil).Extract(context.Background(), document.Text{Content: content})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestExtractContacts(t *testing.T) {
	res := extract(t, "John Doe, john.doe@email.com\nPhone: 555.123.4567\nSoftware developer")

	assert.Equal(t, "John Doe", resume.Value(res.Name))
	assert.Equal(t, "john.doe@email.com", resume.Value(res.Email))
	assert.Equal(t, "555.123.4567", resume.Value(res.MobileNumber))
	assert.Equal(t, 1, res.NoOfPages)
}

func TestExtractInternationalPhone(t *testing.T) {
	res := extract(t, "Ivan Petrov\n+7 9161234567")
	assert.Equal(t, "+7 9161234567", resume.Value(res.MobileNumber))
}

func TestExtractSkills(t *testing.T) {
	res := extract(t, "Jane Roe\nSkills: Python, Docker, machine learning, postgres and Node.js")

	assert.Subset(t, res.Skills, []string{"Python", "Docker", "Machine Learning", "Postgresql", "Node.Js"})
	assert.LessOrEqual(t, len(res.Skills), maxSkills)
}

func TestExtractSkillsCapped(t *testing.T) {
	res := extract(t, "Jane Roe\n"+strings.Join(nlp.DefaultSkills, ", "))
	assert.Len(t, res.Skills, maxSkills)
}

func TestExtractCustomSkills(t *testing.T) {
	p := New(nlp.NewSkillDB([]string{"rust", "elixir"}), nil)
	res, err := p.Extract(context.Background(), document.Text{Content: "Jane Roe\nWrites Rust and Elixir daily"})
	require.NoError(t, err)
	assert.Subset(t, res.Skills, []string{"Rust", "Elixir"})
}

func TestExtractEducation(t *testing.T) {
	res := extract(t, "Jane Roe\nEducation\nMassachusetts Institute of Technology\nBachelor of Science in Computer Science, 2012")

	assert.Contains(t, res.Education, "Bachelor of Science")
	found := false
	for _, e := range res.Education {
		if strings.Contains(e, "Institute") {
			found = true
		}
	}
	assert.True(t, found, "education %v should name the institute", res.Education)
}

func TestExtractExperience(t *testing.T) {
	res := extract(t, "Jane Roe\nSenior Software Engineer at Globex Corporation\n5+ years of experience, 3 years in Go")

	require.NotEmpty(t, res.Experience)
	assert.Contains(t, res.Experience[0], "Senior Software Engineer")
	assert.Contains(t, res.Designation, "Senior Software Engineer")
	assert.Equal(t, "5+ years", res.TotalExperience)
}

func TestExtractEmpty(t *testing.T) {
	_, err := New(nil, nil).Extract(context.Background(), document.Text{Content: "\n  \n"})
	require.ErrorIs(t, err, resume.ErrNoText)
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil, nil).Extract(ctx, document.Text{Content: "Jane Roe"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestName(t *testing.T) {
	for _, tc := range []struct {
		name     string
		text     string
		entities []prose.Entity
		want     string
	}{
		{name: "upper case", text: "JOHN DOE\nEngineer", want: "JOHN DOE"},
		{name: "title case", text: "resume\nMary Jane Watson\nNew York", want: "Mary Jane Watson"},
		{name: "skips address", text: "Heritage Lane Apartments\nMary Jane Watson", want: "Mary Jane Watson"},
		{name: "skips contact line", text: "Call 555-123-4567 Now\nMary Watson", want: "Mary Watson"},
		{
			name:     "person entity",
			text:     "curriculum vitae\nprepared by peter parker on request\nmore text here",
			entities: []prose.Entity{{Text: "New York", Label: entityGPE}, {Text: "peter parker", Label: entityPerson}},
			want:     "peter parker",
		},
		{name: "plain words fallback", text: "curriculum vitae\nsome1 thing", want: "curriculum vitae"},
		{name: "nothing", text: "x\n42", want: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := &analysis{text: tc.text, lines: resume.Lines(tc.text), entities: tc.entities}
			assert.Equal(t, tc.want, a.name())
		})
	}
}

func TestCompaniesFallback(t *testing.T) {
	text := "Acme Corp, Senior Engineer\nState University\nGlobex Technologies - Developer\nSoftware Engineer at Hooli Inc. since 2020\nWorked at a big company for many years Inc"
	a := &analysis{text: text, lines: resume.Lines(text)}

	assert.Equal(t, []string{"Acme Corp", "Globex Technologies", "Hooli Inc."}, a.companies())

	a.entities = []prose.Entity{{Text: "Initech", Label: entityOrg}, {Text: "Stanford University", Label: entityOrg}}
	assert.Equal(t, []string{"Initech"}, a.companies())
}

func TestCompaniesFromEntities(t *testing.T) {
	text := "Jane Roe\nSoftware Engineer at Google Inc. from 2018 to 2021.\nSenior Developer at Microsoft Corporation since 2021."

	doc, err := prose.NewDocument(text)
	require.NoError(t, err)
	labels := map[string]int{}
	for _, e := range doc.Entities() {
		labels[e.Label]++
	}
	require.Positive(t, labels[entityOrg], "entity labels: %v", labels)

	res := extract(t, text)
	joined := strings.Join(res.CompanyNames, "|")
	assert.Contains(t, joined, "Google")
	assert.Contains(t, joined, "Microsoft")
}

func TestTitlePhrase(t *testing.T) {
	for in, want := range map[string]string{
		"Acme Corp, Senior Engineer 2019-2024":    "Senior Engineer",
		"Worked as a Software Engineer at Acme":   "Software Engineer",
		"Lead Developer (Platform)":               "Lead Developer",
		"Principal Data Platform Architect, 2020": "Principal Data Platform Architect",
		"Chief of Staff, Engineering Manager":     "Engineering Manager",
		"Managed a team of engineers":             "",
	} {
		assert.Equal(t, want, titlePhrase(in), in)
	}
}

func TestTotalExperience(t *testing.T) {
	for _, tc := range []struct{ text, want string }{
		{"9 years in Go and 10 years overall", "10+ years"},
		{"1 year of experience", "1+ years"},
		{"since 2015 experience", ""},
		{"no numbers", ""},
	} {
		a := &analysis{text: tc.text}
		assert.Equal(t, tc.want, a.totalExperience(), tc.text)
	}
}

func TestDedup(t *testing.T) {
	var d dedup
	for _, s := range []string{"Python", "python", " ", "Go", "PYTHON"} {
		d.add(s)
	}
	assert.Equal(t, []string{"Python", "Go"}, d.items)
}

func ExampleParser_Extract() {
	res, _ := New(nil, nil).Extract(context.Background(), document.Text{Content: "John Doe\njohn.doe@email.com"})
	fmt.Println(resume.Value(res.Name), resume.Value(res.Email))
	// Output: John Doe john.doe@email.com
}
