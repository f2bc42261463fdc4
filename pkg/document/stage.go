package document

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// StagedFile is an upload copied to a temporary file for the duration of parsing.
type StagedFile struct {
	Path     string
	Size     int64
	Checksum string // hex sha256 of the content
}

// Stage copies r into a new temp file in dir. At most max bytes are accepted:
// a larger body fails with ErrTooLarge and leaves nothing behind.
// The file name is random; the client filename is never used as a path.
func Stage(dir string, r io.Reader, format Format, max int64) (*StagedFile, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "upload-*"+format.Ext())
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, h), io.LimitReader(r, max+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	switch {
	case err != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("write temp file: %w", err)
	case n > max:
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, max)
	case n == 0:
		_ = os.Remove(path)
		return nil, ErrEmptyFile
	}

	return &StagedFile{Path: path, Size: n, Checksum: hex.EncodeToString(h.Sum(nil))}, nil
}

// Remove deletes the staged file. Safe to call more than once.
func (s *StagedFile) Remove() error {
	if s == nil || s.Path == "" {
		return nil
	}
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
