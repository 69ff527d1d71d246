package labels

import (
	"fmt"
	"image"
	"strings"

	"partshelf/internal/catalog"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const (
	minQRSize     = 64
	defaultQRSize = 256
	maxQRSize     = 2048
)

// GenerateQR renders content as a QR raster of size x size pixels.
// level selects the error-correction level: L, M, Q or H (default M).
func GenerateQR(content string, size int, level string) (image.Image, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("QR content is required: %w", catalog.ErrValidation)
	}

	correction, err := parseCorrectionLevel(level)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = defaultQRSize
	}
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	code, err := qr.Encode(content, correction, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR content: %w", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR code to %dpx: %w", size, err)
	}
	return scaled, nil
}

func parseCorrectionLevel(level string) (qr.ErrorCorrectionLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "", "M":
		return qr.M, nil
	case "L":
		return qr.L, nil
	case "Q":
		return qr.Q, nil
	case "H":
		return qr.H, nil
	default:
		return qr.M, fmt.Errorf("unknown error correction level %q: %w", level, catalog.ErrValidation)
	}
}
