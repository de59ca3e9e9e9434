// file: internals/features/exams/service/qr.go
package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrDefaultSize = 300
	qrQuietZone   = 16
)

// QRDataURL renders content as a QR code and returns it as a lossless WebP
// data URL, small enough to embed in the hall ticket row.
func QRDataURL(content string, size int) (string, error) {
	if content == "" {
		return "", fmt.Errorf("qr: empty content")
	}
	if size <= 0 {
		size = qrDefaultSize
	}

	qr, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return "", fmt.Errorf("qr: encode: %w", err)
	}
	qr.DisableBorder = true

	canvas := withQuietZone(qr.Image(size), qrQuietZone)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, canvas, &webp.Options{Lossless: true}); err != nil {
		return "", fmt.Errorf("qr: webp: %w", err)
	}
	return "data:image/webp;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func withQuietZone(img image.Image, margin int) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx()+2*margin, b.Dy()+2*margin, color.White)
	return imaging.Paste(bg, img, image.Pt(margin, margin))
}
