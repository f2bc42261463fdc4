package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/resumecompare/api/http/middleware"
	"github.com/artem13815/resumecompare/api/http/presenter"
	"github.com/artem13815/resumecompare/pkg/comparison"
	"github.com/artem13815/resumecompare/pkg/document"
	"github.com/artem13815/resumecompare/pkg/security/jwt"
)

const (
	HeaderComparisonID = "X-Comparison-ID"
	HeaderCache        = "X-Cache"
)

var (
	errNoFile       = errors.New("no file provided")
	errNoFileChosen = errors.New("no file selected")
	errOpenUpload   = errors.New("failed to open uploaded file")
)

// UploadHandler принимает резюме и возвращает результаты обоих парсеров.
type UploadHandler struct {
	svc      comparison.UseCase
	maxBytes int64
}

func NewUploadHandler(svc comparison.UseCase, maxBytes int64) *UploadHandler {
	return &UploadHandler{svc: svc, maxBytes: maxBytes}
}

// Upload сравнивает результаты regex и NLP парсеров для загруженного резюме.
// @Summary     Сравнить парсеры резюме
// @Description Принимает multipart/form-data с полем file (PDF, DOCX или DOC) и возвращает результаты обоих парсеров.
// @Tags        Сравнение
// @Accept      mpfd
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "Файл резюме (.pdf, .docx, .doc)"
// @Success     200 {object} comparison.Response
// @Failure     400 {object} presenter.UploadErrorResponse
// @Failure     413 {object} presenter.UploadErrorResponse
// @Failure     500 {object} presenter.UploadErrorResponse
// @Failure     504 {object} presenter.UploadErrorResponse
// @Router      /api/upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	cmp, err := h.compare(c)
	if err != nil {
		return presenter.UploadError(c, uploadStatus(err), uploadMessage(err, h.maxBytes))
	}
	setComparisonHeaders(c, cmp)
	return presenter.JSON(c, http.StatusOK, cmp.Response)
}

// compare reads the "file" form field and runs the comparison on it.
func (h *UploadHandler) compare(c *fiber.Ctx) (comparison.Comparison, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return comparison.Comparison{}, errNoFile
	}
	if strings.TrimSpace(fh.Filename) == "" {
		return comparison.Comparison{}, errNoFileChosen
	}
	// отсекаем лишнее до того, как что-то попадёт на диск
	if _, err := document.ValidateFilename(fh.Filename); err != nil {
		return comparison.Comparison{}, err
	}
	if err := document.ValidateSize(fh.Size, h.maxBytes); err != nil {
		return comparison.Comparison{}, err
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Logger(c).Warn("open multipart file", zap.Error(err))
		return comparison.Comparison{}, errOpenUpload
	}
	defer f.Close()

	cmp, err := h.svc.Compare(c.UserContext(), comparison.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Body:     f,
		OwnerID:  jwt.UserID(c),
	})
	if err != nil {
		if uploadStatus(err) >= http.StatusInternalServerError {
			middleware.Logger(c).Error("compare upload", zap.String("filename", fh.Filename), zap.Error(err))
		}
		return comparison.Comparison{}, err
	}
	return cmp, nil
}

func setComparisonHeaders(c *fiber.Ctx, cmp comparison.Comparison) {
	if cmp.ID != uuid.Nil {
		c.Set(HeaderComparisonID, cmp.ID.String())
	}
	if cmp.Cached {
		c.Set(HeaderCache, "HIT")
	} else {
		c.Set(HeaderCache, "MISS")
	}
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, errNoFile), errors.Is(err, errNoFileChosen), errors.Is(err, errOpenUpload),
		errors.Is(err, document.ErrUnsupportedFormat), errors.Is(err, document.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, document.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func uploadMessage(err error, maxBytes int64) string {
	switch {
	case errors.Is(err, document.ErrUnsupportedFormat):
		return "Invalid file type. Allowed types: " + allowedList()
	case errors.Is(err, document.ErrTooLarge):
		return TooLargeMessage(maxBytes)
	case errors.Is(err, document.ErrEmptyFile):
		return "Uploaded file is empty"
	case errors.Is(err, errNoFile), errors.Is(err, errNoFileChosen), errors.Is(err, errOpenUpload):
		return strings.ToUpper(err.Error()[:1]) + err.Error()[1:]
	case errors.Is(err, context.DeadlineExceeded):
		return "Parsing took too long"
	default:
		return "Failed to process file"
	}
}

// TooLargeMessage is shown when an upload exceeds maxBytes.
func TooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("File is too large. Maximum size is %s", humanSize(maxBytes))
}

func allowedList() string {
	exts := make([]string, 0, len(document.AllowedExtensions))
	for _, e := range document.AllowedExtensions {
		exts = append(exts, string(e))
	}
	return strings.Join(exts, ", ")
}

func humanSize(n int64) string {
	const mb = 1 << 20
	const kb = 1 << 10
	switch {
	case n >= mb && n%mb == 0:
		return fmt.Sprintf("%dMB", n/mb)
	case n >= kb:
		return fmt.Sprintf("%.1fKB", float64(n)/kb)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
