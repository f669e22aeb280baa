package utils

import (
	"net/http"
	"strings"
)

// RequestBaseURL reconstructs scheme://host for the incoming request so
// responses can carry absolute media URLs.
func RequestBaseURL(r *http.Request) string {
	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// MediaURL joins a base URL, the media prefix and a stored relative path.
func MediaURL(baseURL, mediaPrefix, rel string) string {
	if rel == "" {
		return ""
	}
	return baseURL + strings.TrimSuffix(mediaPrefix, "/") + "/" + strings.TrimPrefix(rel, "/")
}
