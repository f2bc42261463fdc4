package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a supported resume file format, named by its extension without the dot.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
)

// AllowedExtensions lists accepted upload extensions.
var AllowedExtensions = []Format{FormatPDF, FormatDOCX, FormatDOC}

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx and doc are allowed")
	ErrTooLarge          = errors.New("file too large")
	ErrEmptyFile         = errors.New("file is empty")
)

// Ext returns the extension with a leading dot.
func (f Format) Ext() string { return "." + string(f) }

// ValidateFilename returns the format of name or ErrUnsupportedFormat.
func ValidateFilename(name string) (Format, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: no filename", ErrUnsupportedFormat)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, f := range AllowedExtensions {
		if ext == string(f) {
			return f, nil
		}
	}
	return "", ErrUnsupportedFormat
}

// ValidateSize checks a declared upload size against max.
func ValidateSize(size, max int64) error {
	if size > max {
		return fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, max)
	}
	if size == 0 {
		return ErrEmptyFile
	}
	return nil
}
