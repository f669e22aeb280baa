package services

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// Smallest valid-enough payload; the fetcher trusts Content-Type, not bytes.
var fakePNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestFetchStoresImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a user agent header")
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(fakePNG)
	}))
	defer srv.Close()

	cfg := newTestSettings(t)
	svc := NewImageService(cfg)

	rel := svc.Fetch(srv.URL+"/img/cake-photo.png", "Grand Palace")
	if rel != "menu_images/grand-palace/cake-photo-png.png" {
		t.Fatalf("rel = %q", rel)
	}
	if _, err := os.Stat(filepath.Join(cfg.MediaRoot, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestFetchContentTypeExtensions(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":                 "jpg",
		"image/jpg":                  "jpg",
		"image/png":                  "png",
		"image/gif":                  "gif",
		"image/webp":                 "jpg",
		"image/jpeg; charset=binary": "jpg",
	}
	for ct, want := range cases {
		if got := extensionFor(ct); got != want {
			t.Errorf("extensionFor(%q) = %q, want %q", ct, got, want)
		}
	}
}

func TestFetchSoftFailures(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFound.Close()

	html := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer html.Close()

	cfg := newTestSettings(t)
	svc := NewImageService(cfg)

	cases := map[string]string{
		"empty url":     "",
		"bad status":    notFound.URL + "/x.png",
		"not an image":  html.URL + "/x.png",
		"unreachable":   "http://127.0.0.1:1/x.png",
		"malformed url": "http://[::1]:bad/x.png",
	}
	for name, u := range cases {
		if got := svc.Fetch(u, "Grand Palace"); got != "" {
			t.Errorf("%s: Fetch = %q, want empty", name, got)
		}
	}

	// Nothing should have been written for any of the failures.
	entries, err := os.ReadDir(filepath.Join(cfg.MediaRoot, "menu_images", "grand-palace"))
	if err == nil && len(entries) > 0 {
		t.Fatalf("unexpected stored files: %v", entries)
	}
}

func TestRemove(t *testing.T) {
	cfg := newTestSettings(t)
	svc := NewImageService(cfg)

	dir := filepath.Join(cfg.MediaRoot, "menu_images", "h")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "x.jpg")
	if err := os.WriteFile(path, fakePNG, 0o644); err != nil {
		t.Fatal(err)
	}

	svc.Remove("menu_images/h/x.jpg")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file should be gone")
	}

	// Missing files and empty paths are not errors.
	svc.Remove("menu_images/h/x.jpg")
	svc.Remove("")
}
