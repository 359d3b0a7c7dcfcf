// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"lokasiku_backend/internals/configs"
)

// Client OSS untuk foto lokasi (form ULOK). Objek disimpan dengan konvensi
// path: {ulokId}/{section}/{timestamp}_{field}{ext}.

func newBucket() (*oss.Bucket, error) {
	endpoint := configs.GetEnv("OSS_ENDPOINT")
	keyID := configs.GetEnv("OSS_ACCESS_KEY_ID")
	keySecret := configs.GetEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := configs.GetEnv("OSS_BUCKET")
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("konfigurasi OSS belum lengkap")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("gagal init OSS client: %w", err)
	}
	return client.Bucket(bucketName)
}

// ObjectKey membentuk key sesuai konvensi upload form ULOK.
func ObjectKey(ulokID, section, field, origFilename string) string {
	ext := strings.ToLower(filepath.Ext(origFilename))
	if ext == "" {
		ext = ".webp"
	}
	ts := time.Now().UnixMilli()
	return fmt.Sprintf("%s/%s/%d_%s%s", ulokID, section, ts, field, ext)
}

// UploadUlokPhoto: baca file multipart, konversi ke WebP (resize keep-aspect
// max 1600px, quality 80), upload, kembalikan key + URL publik.
func UploadUlokPhoto(ulokID, section, field string, fh *multipart.FileHeader) (string, string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return "", "", fmt.Errorf("gagal membaca file: %w", err)
	}

	body, key := raw, ObjectKey(ulokID, section, field, fh.Filename)
	contentType := http.DetectContentType(firstN(raw, 512))

	if img, derr := decodeImage(raw, fh.Filename); derr == nil {
		converted, cerr := toWebP(img)
		if cerr == nil {
			body = converted
			contentType = "image/webp"
			key = strings.TrimSuffix(key, filepath.Ext(key)) + ".webp"
		}
		// gagal konversi → upload apa adanya
	}

	bucket, err := newBucket()
	if err != nil {
		return "", "", err
	}
	if err := bucket.PutObject(key, bytes.NewReader(body), oss.ContentType(contentType)); err != nil {
		return "", "", fmt.Errorf("gagal upload ke OSS: %w", err)
	}

	url, err := bucket.SignURL(key, oss.HTTPGet, 3600)
	if err != nil {
		// key tetap tersimpan, URL menyusul bisa diminta ulang
		return key, "", nil
	}
	return key, url, nil
}

// SignedURL untuk download/preview file yang sudah tersimpan.
func SignedURL(key string, expireSeconds int64) (string, error) {
	bucket, err := newBucket()
	if err != nil {
		return "", err
	}
	return bucket.SignURL(key, oss.HTTPGet, expireSeconds)
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	ct := http.DetectContentType(firstN(all, 512))

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	// fallback by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("format tidak didukung: %s", ct)
}

func toWebP(img image.Image) ([]byte, error) {
	const maxW, maxH = 1600, 1600
	b := img.Bounds()
	if b.Dx() > maxW || b.Dy() > maxH {
		img = imaging.Fit(img, maxW, maxH, imaging.CatmullRom)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func firstN(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
