package checkers

import (
	"context"
	"fmt"
	"os"
)

// UploadDirChecker verifies that the staging directory is writable.
type UploadDirChecker struct {
	dir string
}

func NewUploadDirChecker(dir string) *UploadDirChecker {
	return &UploadDirChecker{dir: dir}
}

func (c *UploadDirChecker) Name() string { return "uploads" }

func (c *UploadDirChecker) Check(ctx context.Context) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return err
	}
	f, err := os.CreateTemp(c.dir, "probe-*")
	if err != nil {
		return fmt.Errorf("upload dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
