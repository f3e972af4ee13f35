package portfolio

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxItems         = 10
	RecommendedItems = 6
)

var (
	ErrTooManyItems       = errors.New("portfolio item limit exceeded")
	ErrUnsupportedContent = errors.New("unsupported portfolio content type")
	ErrObjectNotFound     = errors.New("storage object not found")
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

var contentTypes = map[string]struct {
	media MediaType
	ext   string
}{
	"image/jpeg":      {MediaImage, ".jpg"},
	"image/png":       {MediaImage, ".png"},
	"image/webp":      {MediaImage, ".webp"},
	"image/gif":       {MediaImage, ".gif"},
	"video/mp4":       {MediaVideo, ".mp4"},
	"video/quicktime": {MediaVideo, ".mov"},
	"video/webm":      {MediaVideo, ".webm"},
}

type Item struct {
	ID          string
	CreatorID   string
	StoragePath string
	MediaURL    string
	MediaType   MediaType
	ContentType string
	Position    int
	CreatedAt   time.Time
}

// ClassifyContentType returns the media kind and file extension for an
// accepted upload content type.
func ClassifyContentType(contentType string) (MediaType, string, error) {
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(normalized, ";"); idx >= 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	info, ok := contentTypes[normalized]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedContent, contentType)
	}
	return info.media, info.ext, nil
}
