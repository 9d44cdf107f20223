package spayd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultQRSize is the square pixel size banking apps expect.
const DefaultQRSize = 256

// EncodeQR renders the descriptor into a QR code with medium error
// correction and returns it as a PNG data URI ready for embedding. size <= 0
// falls back to DefaultQRSize.
func EncodeQR(opts Options, size int) (string, error) {
	payload, err := Encode(opts)
	if err != nil {
		return "", err
	}
	if size <= 0 {
		size = DefaultQRSize
	}

	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}

	code, err = barcode.Scale(code, size, size)
	if err != nil {
		return "", fmt.Errorf("scale qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return "", fmt.Errorf("render qr png: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
