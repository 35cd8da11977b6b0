package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akinalp/loqui/pkg"
)

// ImageStore, profil resmi barındıran external collaborator'ın soyutlamasıdır.
//
// Upload, client'ın gönderdiği base64 data URL'i alır ve kalıcı,
// servis edilebilir bir URL döner. Yavaş ve hata üretebilir kabul edilir —
// çağıran taraf (AuthService) zaten authenticate olmuş durumdadır.
type ImageStore interface {
	Upload(ctx context.Context, dataURL string) (string, error)
}

// allowedImageMimes, profil resmi olarak kabul edilen MIME type'lar.
// Video/pdf/text kabul edilmez — avatar sadece resimdir.
var allowedImageMimes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// localImageStore, ImageStore'un yerel disk implementasyonu.
// Dosyalar uploadDir altına yazılır ve /api/uploads/ üzerinden servis edilir.
type localImageStore struct {
	uploadDir string
	maxSize   int64
}

// NewLocalImageStore, constructor.
func NewLocalImageStore(uploadDir string, maxSize int64) ImageStore {
	return &localImageStore{
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}
}

// Upload, data URL'i doğrular, decode eder ve diske kaydeder.
//
// Data URL formatı: "data:image/png;base64,iVBORw0KGgo..."
// Dosya adı {random_hex}{ext} — çakışma ve path traversal'a kapalı,
// client'tan gelen hiçbir string dosya yoluna girmez.
func (s *localImageStore) Upload(ctx context.Context, dataURL string) (string, error) {
	mimeType, payload, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext, ok := allowedImageMimes[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: image type not allowed: %s", pkg.ErrBadRequest, mimeType)
	}

	// Base64 ~%33 şişirir — decode öncesi kaba boyut kontrolü,
	// dev bir payload'ı belleğe açmadan reddeder.
	if int64(len(payload))/4*3 > s.maxSize {
		return "", fmt.Errorf("%w: image too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 image data", pkg.ErrBadRequest)
	}

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate image filename: %w", err)
	}
	filename := hex.EncodeToString(randomBytes) + ext

	destPath := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return "/api/uploads/" + filename, nil
}

// parseDataURL, "data:{mime};base64,{payload}" formatını parçalar.
func parseDataURL(dataURL string) (mimeType, payload string, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", "", fmt.Errorf("%w: profile pic must be a base64 data URL", pkg.ErrBadRequest)
	}

	meta, payload, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found {
		return "", "", fmt.Errorf("%w: malformed data URL", pkg.ErrBadRequest)
	}

	mimeType, encoding, found := strings.Cut(meta, ";")
	if !found || encoding != "base64" {
		return "", "", fmt.Errorf("%w: data URL must be base64 encoded", pkg.ErrBadRequest)
	}

	return mimeType, payload, nil
}
