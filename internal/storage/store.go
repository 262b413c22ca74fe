// Package storage persists uploaded media on disk, content-addressed by hash,
// with webp thumbnails generated at upload time.
package storage

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kyutaku/internal/middleware"
	"kyutaku/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMediaDir  = "/tmp/kyutaku/media"
	DefaultMaxSizeMB = 10
	ThumbnailMaxPx   = 256
	WebPQuality      = 70
	JPEGQuality      = 82
)

// Storage kinds mirror the upload categories; each gets its own subdirectory.
const (
	KindProfile = "profiles"
	KindAlbum   = "albums"
	KindPost    = "posts"
)

// Saved describes a stored media asset.
type Saved struct {
	URL      string
	ThumbURL string
}

// Store writes media files under a root directory and serves them at /media.
type Store struct {
	dir      string
	maxBytes int64
}

// New returns a Store rooted at dir; zero values fall back to defaults.
func New(dir string, maxMB int) *Store {
	if dir == "" {
		dir = DefaultMediaDir
	}
	if maxMB <= 0 {
		maxMB = DefaultMaxSizeMB
	}
	return &Store{dir: dir, maxBytes: int64(maxMB) * 1024 * 1024}
}

// Root returns the directory the store writes into.
func (s *Store) Root() string {
	return s.dir
}

// Save validates, decodes and persists an uploaded image under the given kind.
// The original and a webp thumbnail are both written before Save returns.
func (s *Store) Save(kind string, data []byte) (*Saved, error) {
	start := time.Now()

	if len(data) == 0 {
		return nil, models.NewValidationError("No image provided")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(data)
	if !strings.HasPrefix(detectedType, "image/") {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	ext := extensionFor(format)

	kindDir := filepath.Join(s.dir, kind)
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		return nil, models.NewInternalError(err)
	}

	originalName := hash + ext
	if err := os.WriteFile(filepath.Join(kindDir, originalName), data, 0o644); err != nil {
		return nil, models.NewInternalError(err)
	}

	thumbName := hash + "_thumb.webp"
	if err := s.writeThumbnail(filepath.Join(kindDir, thumbName), decoded); err != nil {
		return nil, err
	}

	middleware.MediaProcessingDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	return &Saved{
		URL:      "/media/" + kind + "/" + originalName,
		ThumbURL: "/media/" + kind + "/" + thumbName,
	}, nil
}

func (s *Store) writeThumbnail(path string, src image.Image) error {
	thumb := resizeToFit(src, ThumbnailMaxPx)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: WebPQuality}); err != nil {
		// webp encoding failure falls back to jpeg rather than losing the upload
		buf.Reset()
		if jerr := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: JPEGQuality}); jerr != nil {
			return models.NewInternalError(jerr)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// resizeToFit scales src so its longest side is maxPx, preserving aspect ratio.
// Images already within bounds are returned unchanged.
func resizeToFit(src image.Image, maxPx int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPx && h <= maxPx {
		return src
	}

	var tw, th int
	if w >= h {
		tw = maxPx
		th = h * maxPx / w
	} else {
		th = maxPx
		tw = w * maxPx / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func extensionFor(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	case "webp":
		return ".webp"
	default:
		return ".img"
	}
}
