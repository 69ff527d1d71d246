package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"partshelf/internal/logger"

	"github.com/google/uuid"
)

// Images is a managed directory for product and supplier artwork. Files are
// copied in under generated names so the catalog never depends on the
// original location staying alive.
type Images struct {
	dir string
}

func NewImages(dir string) (*Images, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &Images{dir: dir}, nil
}

func (im *Images) Dir() string {
	return im.dir
}

// Import copies the file at src into the managed directory under a fresh
// uuid-based name, preserving the extension, and returns the new path.
func (im *Images) Import(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", src, err)
	}
	defer in.Close()

	dst := filepath.Join(im.dir, uuid.NewString()+filepath.Ext(src))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create image %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to copy image to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to close image %s: %w", dst, err)
	}
	return dst, nil
}

// ImportBytes writes raw image data (a downloaded product photo) into the
// managed directory and returns the new path.
func (im *Images) ImportBytes(data []byte, ext string) (string, error) {
	if ext == "" {
		ext = ".png"
	}
	dst := filepath.Join(im.dir, uuid.NewString()+ext)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", dst, err)
	}
	return dst, nil
}

// Remove deletes a managed image. Best effort: a failure is logged, never
// surfaced, since a leftover file is harmless.
func (im *Images) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to delete image", "path", path, "error", err)
	}
}
