package resume

import (
	"context"
	"errors"

	"github.com/artem13815/resumecompare/pkg/document"
)

// ErrNoText is returned by extractors for documents without any text.
var ErrNoText = errors.New("no text content found in the file")

// ParseResult — поля, извлечённые из резюме одним экстрактором.
// Missing scalars and empty lists encode as null.
type ParseResult struct {
	Name         *string  `json:"name" mapstructure:"name"`
	Email        *string  `json:"email" mapstructure:"email"`
	MobileNumber *string  `json:"mobile_number" mapstructure:"mobile_number"`
	Skills       []string `json:"skills" mapstructure:"skills"`
	Education    []string `json:"education" mapstructure:"education"`
	Experience   []string `json:"experience" mapstructure:"experience"`
	NoOfPages    int      `json:"no_of_pages" mapstructure:"no_of_pages"`

	CompanyNames    []string `json:"company_names,omitempty" mapstructure:"company_names"`
	Designation     []string `json:"designation,omitempty" mapstructure:"designation"`
	TotalExperience string   `json:"total_experience,omitempty" mapstructure:"total_experience"`
}

// Extractor pulls resume fields out of plain text.
type Extractor interface {
	// Name is the response key the result is reported under.
	Name() string
	Extract(ctx context.Context, text document.Text) (*ParseResult, error)
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences p, returning "" for nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Cap returns at most n items, or nil when items is empty.
func Cap(items []string, n int) []string {
	if len(items) == 0 {
		return nil
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
