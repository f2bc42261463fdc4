package resume

import (
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

const (
	NotFound        = "Not found"
	displayMaxItems = 10
)

// Field is one rendered row of a result.
type Field struct {
	Key   string
	Label string
	Value string   // set for scalars and missing values
	Items []string // set for non-empty lists
}

// optional fields are left out when empty, like in the JSON encoding.
var optional = map[string]bool{"company_names": true, "designation": true, "total_experience": true}

var displayOrder = []struct{ key, label string }{
	{"name", "Name"},
	{"email", "Email"},
	{"mobile_number", "Mobile Number"},
	{"skills", "Skills"},
	{"education", "Education"},
	{"experience", "Experience"},
	{"company_names", "Company Names"},
	{"designation", "Designation"},
	{"total_experience", "Total Experience"},
	{"no_of_pages", "No Of Pages"},
}

// Display flattens r into rows for the results page.
// Missing values read "Not found", long lists are cut to 10 items plus a "... and N more" row.
func Display(r *ParseResult) ([]Field, error) {
	if r == nil {
		return nil, nil
	}
	raw := map[string]any{}
	if err := mapstructure.Decode(r, &raw); err != nil {
		return nil, fmt.Errorf("flatten result: %w", err)
	}

	fields := make([]Field, 0, len(displayOrder))
	for _, d := range displayOrder {
		v, ok := raw[d.key]
		if !ok {
			continue
		}
		f := Field{Key: d.key, Label: d.label}
		switch val := v.(type) {
		case *string:
			f.Value = NotFound
			if val != nil && *val != "" {
				f.Value = *val
			}
		case string:
			if val == "" {
				if optional[d.key] {
					continue
				}
				val = NotFound
			}
			f.Value = val
		case []string:
			if len(val) == 0 {
				if optional[d.key] {
					continue
				}
				f.Value = NotFound
				break
			}
			f.Items = truncateItems(val)
		case int:
			f.Value = strconv.Itoa(val)
		default:
			f.Value = fmt.Sprint(val)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func truncateItems(items []string) []string {
	if len(items) <= displayMaxItems {
		return items
	}
	out := make([]string, 0, displayMaxItems+1)
	out = append(out, items[:displayMaxItems]...)
	return append(out, fmt.Sprintf("... and %d more", len(items)-displayMaxItems))
}
