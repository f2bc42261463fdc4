package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/artem13815/resumecompare/pkg/comparison"
	"github.com/artem13815/resumecompare/pkg/resume"
	"github.com/artem13815/resumecompare/pkg/resume/nlpparser"
	"github.com/artem13815/resumecompare/pkg/resume/regexparser"
)

const ruleWidth = 60

// writeReport prints both results one after the other.
func writeReport(w io.Writer, cmp comparison.Comparison) error {
	thick := strings.Repeat("=", ruleWidth)
	thin := strings.Repeat("-", ruleWidth)

	var b strings.Builder
	fmt.Fprintln(&b, thick)
	fmt.Fprintln(&b, "RESUME PARSING RESULTS")
	fmt.Fprintln(&b, thick)
	fmt.Fprintf(&b, "File: %s\n", cmp.Filename)
	fmt.Fprintf(&b, "Format: %s\n", strings.ToUpper(string(cmp.Format)))

	for _, p := range []struct {
		name string
		out  comparison.Outcome
	}{
		{regexparser.Name, cmp.Response.Regex},
		{nlpparser.Name, cmp.Response.NLP},
	} {
		fmt.Fprintln(&b, thin)
		fmt.Fprintf(&b, "[%s]\n", p.name)
		if !p.out.OK() {
			fmt.Fprintf(&b, "Error: %s\n", p.out.Error)
			continue
		}
		fields, err := resume.Display(p.out.Result)
		if err != nil {
			return err
		}
		for _, f := range fields {
			if len(f.Items) == 0 {
				fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
				continue
			}
			fmt.Fprintf(&b, "%s:\n", f.Label)
			for _, it := range f.Items {
				fmt.Fprintf(&b, "  - %s\n", it)
			}
		}
	}
	fmt.Fprintln(&b, thick)

	_, err := io.WriteString(w, b.String())
	return err
}
