package utils

import (
	"net/http/httptest"
	"testing"
)

func TestRequestBaseURL(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.example.com/api/menu/all", nil)
	if got := RequestBaseURL(r); got != "http://api.example.com" {
		t.Fatalf("base url = %q", got)
	}

	r.Header.Set("X-Forwarded-Proto", "https")
	if got := RequestBaseURL(r); got != "https://api.example.com" {
		t.Fatalf("forwarded base url = %q", got)
	}
}

func TestMediaURL(t *testing.T) {
	got := MediaURL("http://example.com", "/media/", "menu_images/h/cake.jpg")
	if got != "http://example.com/media/menu_images/h/cake.jpg" {
		t.Fatalf("media url = %q", got)
	}
	if MediaURL("http://example.com", "/media/", "") != "" {
		t.Fatal("empty path should yield an empty url")
	}
	got = MediaURL("http://example.com", "/media", "/menu_images/h/cake.jpg")
	if got != "http://example.com/media/menu_images/h/cake.jpg" {
		t.Fatalf("slash handling: %q", got)
	}
}
