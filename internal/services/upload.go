package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/squadforge/squadforge/internal/config"
	"github.com/squadforge/squadforge/pkg/logger"
	"github.com/squadforge/squadforge/pkg/response"
)

// Upload size limits.
const (
	MaxProfileImageSize = 2 << 20 // 2MB
	MaxMediaSize        = 5 << 20 // 5MB
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadService stores uploaded images under the configured public
// directory and returns their serving URL.
type UploadService struct {
	cfg *config.UploadsConfig
}

func NewUploadService(cfg *config.UploadsConfig) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveProfileImage validates and stores a profile avatar.
func (s *UploadService) SaveProfileImage(file *multipart.FileHeader) (string, error) {
	return s.save(file, "profiles", MaxProfileImageSize)
}

// SaveMedia validates and stores a project cover or screenshot.
func (s *UploadService) SaveMedia(file *multipart.FileHeader) (string, error) {
	return s.save(file, "screenshots", MaxMediaSize)
}

func (s *UploadService) save(file *multipart.FileHeader, subdir string, maxSize int64) (string, error) {
	if file == nil {
		return "", response.NewBadRequest("no file provided")
	}
	if file.Size > maxSize {
		return "", response.NewBadRequest(fmt.Sprintf("file too large, maximum size is %dMB", maxSize>>20))
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", response.NewBadRequest("invalid file type, only JPEG, PNG, and WebP are allowed")
	}

	dir := filepath.Join(s.cfg.Dir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(dir, filename)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}

	url := s.cfg.PublicURL + "/" + subdir + "/" + filename
	logger.Info().Str("url", url).Int64("size", file.Size).Msg("file uploaded")
	return url, nil
}
