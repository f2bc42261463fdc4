package resume

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplay(t *testing.T) {
	skills := make([]string, 12)
	for i := range skills {
		skills[i] = fmt.Sprintf("skill-%d", i)
	}
	r := &ParseResult{
		Name:      StringPtr("John Doe"),
		Skills:    skills,
		Education: []string{},
		NoOfPages: 2,
	}

	fields, err := Display(r)
	require.NoError(t, err)

	byKey := map[string]Field{}
	var keys []string
	for _, f := range fields {
		byKey[f.Key] = f
		keys = append(keys, f.Key)
	}

	assert.Equal(t, []string{"name", "email", "mobile_number", "skills", "education", "experience", "no_of_pages"}, keys)
	assert.Equal(t, "John Doe", byKey["name"].Value)
	assert.Equal(t, NotFound, byKey["email"].Value)
	assert.Equal(t, NotFound, byKey["education"].Value)
	assert.Equal(t, NotFound, byKey["experience"].Value)
	assert.Equal(t, "2", byKey["no_of_pages"].Value)

	require.Len(t, byKey["skills"].Items, 11)
	assert.Equal(t, "skill-9", byKey["skills"].Items[9])
	assert.Equal(t, "... and 2 more", byKey["skills"].Items[10])
}

func TestDisplayOptionalFields(t *testing.T) {
	r := &ParseResult{
		CompanyNames:    []string{"Acme Corp"},
		TotalExperience: "5+ years",
	}

	fields, err := Display(r)
	require.NoError(t, err)

	var labels []string
	for _, f := range fields {
		labels = append(labels, f.Label)
	}
	assert.Contains(t, labels, "Company Names")
	assert.Contains(t, labels, "Total Experience")
	assert.NotContains(t, labels, "Designation")
}

func TestDisplayNil(t *testing.T) {
	fields, err := Display(nil)
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestCap(t *testing.T) {
	assert.Nil(t, Cap(nil, 3))
	assert.Equal(t, []string{"a", "b"}, Cap([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a"}, Cap([]string{"a"}, 2))
}
