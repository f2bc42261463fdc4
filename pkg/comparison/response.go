package comparison

import (
	"bytes"
	"encoding/json"

	"github.com/artem13815/resumecompare/pkg/resume"
)

// Response pairs the results of both extractors. Both keys are always encoded.
type Response struct {
	Regex Outcome `json:"regex_parser"`
	NLP   Outcome `json:"spacy_parser"`
}

// OK reports whether both extractors succeeded.
func (r Response) OK() bool { return r.Regex.OK() && r.NLP.OK() }

// Outcome is either a result or an error message. It encodes as the result itself
// or as {"error": "..."}.
type Outcome struct {
	Result *resume.ParseResult
	Error  string
}

func Succeeded(r *resume.ParseResult) Outcome { return Outcome{Result: r} }

func Failed(err error) Outcome { return Outcome{Error: err.Error()} }

func (o Outcome) OK() bool { return o.Error == "" && o.Result != nil }

type errorBody struct {
	Error string `json:"error"`
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Error != "" {
		return json.Marshal(errorBody{Error: o.Error})
	}
	return json.Marshal(o.Result)
}

func (o *Outcome) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Outcome{}
		return nil
	}
	var probe struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.Error != nil {
		*o = Outcome{Error: *probe.Error}
		return nil
	}
	var r resume.ParseResult
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*o = Outcome{Result: &r}
	return nil
}
