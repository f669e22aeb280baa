package services

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"menucatalog/config"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

// Some image hosts reject requests without a browser-like user agent.
const imageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// ImageService downloads remote images and stores them under
// <media-root>/menu_images/<folder-slug>/. All failures are soft: they are
// logged and reported as an empty path, never as an error to the caller.
type ImageService struct {
	cfg    *config.Settings
	client *http.Client
}

func NewImageService(cfg *config.Settings) *ImageService {
	return &ImageService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.ImageTimeout},
	}
}

// Fetch downloads rawURL into the folder derived from folderName and
// returns the stored path relative to the media root (forward slashes).
// Empty URL, network errors, non-2xx responses, non-image content types
// and write failures all yield "".
func (s *ImageService) Fetch(rawURL, folderName string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		logrus.WithField("url", rawURL).WithError(err).Warn("image download: bad url")
		return ""
	}
	req.Header.Set("User-Agent", imageUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithField("url", rawURL).WithError(err).Warn("image download failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{"url": rawURL, "status": resp.StatusCode}).Warn("image download: bad status")
		return ""
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "image") {
		logrus.WithFields(logrus.Fields{"url": rawURL, "content_type": contentType}).Warn("image download: not an image")
		return ""
	}

	folder := slug.Make(folderName)
	destDir := filepath.Join(s.cfg.MediaRoot, "menu_images", folder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		logrus.WithField("dir", destDir).WithError(err).Warn("image download: mkdir failed")
		return ""
	}

	base := slug.Make(lastURLSegment(rawURL))
	if base == "" {
		base = folder
	}
	dest := filepath.Join(destDir, base+"."+extensionFor(contentType))

	out, err := os.Create(dest)
	if err != nil {
		logrus.WithField("path", dest).WithError(err).Warn("image download: create failed")
		return ""
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		logrus.WithField("path", dest).WithError(err).Warn("image download: write failed")
		return ""
	}
	out.Close()

	rel, err := filepath.Rel(s.cfg.MediaRoot, dest)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}

// Remove deletes a previously stored image; missing files are fine.
func (s *ImageService) Remove(relPath string) {
	if relPath == "" {
		return
	}
	full := filepath.Join(s.cfg.MediaRoot, filepath.FromSlash(relPath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		logrus.WithField("path", full).WithError(err).Warn("image remove failed")
	}
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	default:
		return "jpg"
	}
}

func lastURLSegment(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	parts := strings.Split(rawURL, "/")
	return parts[len(parts)-1]
}
