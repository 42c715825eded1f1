package wallet

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRCodePNG renders content (usually a public key) as a square PNG of size pixels.
func QRCodePNG(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("create QR code: %w", err)
	}

	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("render QR PNG: %w", err)
	}

	return png, nil
}
