// Package encode writes rendered frames as WebP, TGA or PNG.
package encode

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an output image container.
type Format string

const (
	WebP Format = "webp"
	TGA  Format = "tga"
	PNG  Format = "png"
)

// ErrUnknownFormat is returned for unsupported extensions or format names.
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat accepts a format name, case-insensitively, with or without a
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case WebP, TGA, PNG:
		return f, nil
	}
	return "", fmt.Errorf("encode: %q: %w", s, ErrUnknownFormat)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Write encodes img to w.
func Write(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	case PNG:
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("encode: %q: %w", f, ErrUnknownFormat)
	}
	if err != nil {
		return fmt.Errorf("encode: %s: %w", f, err)
	}
	return nil
}

// Save writes img to path, creating parent directories. The format comes
// from the extension.
func Save(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := Write(out, img, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
