package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/resumecompare/api/http/middleware"
	"github.com/artem13815/resumecompare/pkg/comparison"
	"github.com/artem13815/resumecompare/pkg/resume"
	"github.com/artem13815/resumecompare/pkg/resume/nlpparser"
	"github.com/artem13815/resumecompare/pkg/resume/regexparser"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "results", "about"}

// WebHandler serves the HTML upload form and the side-by-side results page.
type WebHandler struct {
	upload *UploadHandler
	pages  map[string]*template.Template
}

func NewWebHandler(upload *UploadHandler) (*WebHandler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &WebHandler{upload: upload, pages: pages}, nil
}

type indexView struct {
	Error   string
	MaxSize string
	Allowed string
}

type parserView struct {
	Key    string
	Title  string
	Error  string
	Fields []resume.Field
}

type resultsView struct {
	Filename string
	Size     string
	Cached   bool
	ID       string
	Parsers  []parserView
}

// Index renders the upload form.
func (h *WebHandler) Index(c *fiber.Ctx) error {
	return h.render(c, http.StatusOK, "index", h.indexView(""))
}

func (h *WebHandler) About(c *fiber.Ctx) error {
	return h.render(c, http.StatusOK, "about", nil)
}

// Upload handles the form post and renders both results side by side.
func (h *WebHandler) Upload(c *fiber.Ctx) error {
	cmp, err := h.upload.compare(c)
	if err != nil {
		return h.RenderError(c, uploadStatus(err), uploadMessage(err, h.upload.maxBytes))
	}
	setComparisonHeaders(c, cmp)

	view := resultsView{
		Filename: cmp.Filename,
		Size:     humanSize(cmp.Size),
		Cached:   cmp.Cached,
	}
	if cmp.ID != uuid.Nil {
		view.ID = cmp.ID.String()
	}
	for _, p := range []struct {
		key, title string
		out        comparison.Outcome
	}{
		{regexparser.Name, "Regex Parser", cmp.Response.Regex},
		{nlpparser.Name, "NLP Parser", cmp.Response.NLP},
	} {
		pv := parserView{Key: p.key, Title: p.title, Error: p.out.Error}
		if p.out.OK() {
			fields, err := resume.Display(p.out.Result)
			if err != nil {
				middleware.Logger(c).Error("display result", zap.String("parser", p.key), zap.Error(err))
				pv.Error = "failed to display result"
			}
			pv.Fields = fields
		}
		view.Parsers = append(view.Parsers, pv)
	}
	return h.render(c, http.StatusOK, "results", view)
}

// RenderError shows the upload form again with a message.
func (h *WebHandler) RenderError(c *fiber.Ctx, status int, message string) error {
	return h.render(c, status, "index", h.indexView(message))
}

func (h *WebHandler) indexView(msg string) indexView {
	return indexView{
		Error:   msg,
		MaxSize: humanSize(h.upload.maxBytes),
		Allowed: allowedList(),
	}
}

func (h *WebHandler) render(c *fiber.Ctx, status int, page string, data any) error {
	var buf bytes.Buffer
	if err := h.pages[page].Execute(&buf, data); err != nil {
		middleware.Logger(c).Error("render page", zap.String("page", page), zap.Error(err))
		return fiber.NewError(http.StatusInternalServerError, "failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
