package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Text is the plain text of one document.
type Text struct {
	Content string
	Pages   int    // 0 when the format has no page model
	MIME    string // sniffed content type
}

var ErrUnreadable = errors.New("unable to read document")

// Reader turns staged files into plain text.
type Reader interface {
	Read(ctx context.Context, path string, format Format) (Text, error)
}

type reader struct{}

// NewReader returns the default Reader: ledongthuc/pdf for pdf, nguyenthenguyen/docx for
// docx and docconv for legacy Word files.
func NewReader() Reader { return reader{} }

func (reader) Read(ctx context.Context, path string, format Format) (Text, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var out Text
	switch format {
	case FormatPDF:
		out, err = readPDF(ctx, path)
	case FormatDOCX:
		out, err = readDocx(path)
	case FormatDOC:
		// Plenty of ".doc" files are OOXML in disguise.
		if m.Is("application/msword") {
			out, err = readLegacyDoc(path)
		} else {
			out, err = readDocx(path)
		}
	default:
		return Text{}, ErrUnsupportedFormat
	}
	if err != nil {
		return Text{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, format, err)
	}
	out.MIME = m.String()
	out.Content = normalizeWhitespace(out.Content)
	return out, nil
}

func readPDF(ctx context.Context, path string) (Text, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Text{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	var b strings.Builder
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return Text{}, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := pageText(page)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return Text{Content: b.String(), Pages: total}, nil
}

// pageText keeps one line per text row so line-oriented extractors see the layout.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return page.GetPlainText(nil)
	}
	var b strings.Builder
	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, t := range row.Content {
			if s := strings.TrimSpace(t.S); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			continue
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}
	return b.String(), nil
}

var (
	reTags = regexp.MustCompile(`<[^>]+>`)
	reTab  = regexp.MustCompile(`<w:tab\s*/>`)
	reBr   = regexp.MustCompile(`<w:br\s*/>`)
)

func readDocx(path string) (Text, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()
	return Text{Content: docxXMLToText(doc.Editable().GetContent())}, nil
}

// docxXMLToText flattens document.xml: paragraph ends become newlines, tags are dropped.
func docxXMLToText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = reTab.ReplaceAllString(xml, "\t")
	xml = reBr.ReplaceAllString(xml, "\n")
	txt := reTags.ReplaceAllString(xml, "")
	return unescapeXML(txt)
}

var xmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescapeXML(s string) string { return xmlEntities.Replace(s) }

func readLegacyDoc(path string) (Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return Text{}, err
	}
	defer f.Close()
	body, _, err := docconv.ConvertDoc(f)
	if err != nil {
		return Text{}, fmt.Errorf("convert doc: %w", err)
	}
	return Text{Content: body}, nil
}

var (
	reHorizontalSpace = regexp.MustCompile(`[ \r\f\v]+`)
	reTabRun          = regexp.MustCompile(`[ \t]*\t[ \t]*`)
	reNewlines        = regexp.MustCompile(`\n\s*\n+`)
	reLineEdges       = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
)

// normalizeWhitespace collapses spaces, keeps single tabs between words and newlines.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reHorizontalSpace.ReplaceAllString(s, " ")
	s = reTabRun.ReplaceAllString(s, "\t")
	s = reLineEdges.ReplaceAllString(s, "")
	// Preserve newlines but collapse runs
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// EstimatePages approximates a page count for formats without one.
func EstimatePages(text string) int {
	return len(text)/3000 + 1
}

// PageCount prefers the reader's count over the estimate.
func (t Text) PageCount() int {
	if t.Pages > 0 {
		return t.Pages
	}
	return EstimatePages(t.Content)
}
