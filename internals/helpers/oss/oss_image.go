package oss

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	maxUploadSize = int64(5 * 1024 * 1024)

	webpMaxW    = 1600
	webpMaxH    = 1600
	webpQuality = float32(80)
)

// UploadImageWebP membaca file multipart, re-encode ke WebP (resize
// keep-aspect bila melebihi batas), lalu upload ke OSS.
func (c *Client) UploadImageWebP(dir string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("ukuran file melebihi %d MB", maxUploadSize/(1024*1024))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("gagal membaca file gambar: %w", err)
	}

	payload, err := encodeWebP(raw)
	if err != nil {
		return "", err
	}
	return c.UploadBytes(dir, ".webp", "image/webp", payload)
}

// UploadDataURI menerima data URI (base64) — dipakai frontend saat mengirim
// hasil render sertifikat — dan menyimpan artefaknya apa adanya.
func (c *Client) UploadDataURI(dir string, dataURI string) (string, error) {
	contentType, b64, ok := splitDataURI(dataURI)
	if !ok {
		return "", fmt.Errorf("data URI tidak valid")
	}
	payload, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("payload base64 tidak valid: %w", err)
	}
	if int64(len(payload)) > maxUploadSize {
		return "", fmt.Errorf("ukuran file melebihi %d MB", maxUploadSize/(1024*1024))
	}

	ext := ".bin"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	case "application/pdf":
		ext = ".pdf"
	}
	return c.UploadBytes(dir, ext, contentType, payload)
}

func encodeWebP(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("format gambar tidak dikenali: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > webpMaxW || b.Dy() > webpMaxH {
		img = imaging.Fit(img, webpMaxW, webpMaxH, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp gagal: %w", err)
	}
	return buf.Bytes(), nil
}

// "data:image/png;base64,AAAA..." → ("image/png", "AAAA...", true)
func splitDataURI(s string) (contentType, b64 string, ok bool) {
	if !strings.HasPrefix(s, "data:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(s, "data:")
	i := strings.Index(rest, ";base64,")
	if i < 0 {
		return "", "", false
	}
	return rest[:i], rest[i+len(";base64,"):], true
}
