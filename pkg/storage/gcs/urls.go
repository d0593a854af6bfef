package gcs

import (
	"net/url"
	"strings"
)

// ObjectKeyFromURL extracts the bucket-relative object key from a stored media
// URL. Three URL shapes are recognized:
//
//	https://firebasestorage.googleapis.com/v0/b/<bucket>/o/<url-encoded key>?alt=media
//	https://storage.googleapis.com/<bucket>/<key>
//	https://<project>.firebasestorage.app/<key>
//
// Unrecognized URLs return ok=false so callers can skip the delete instead of
// failing the request.
func ObjectKeyFromURL(raw, bucket string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", false
	}

	path := strings.TrimPrefix(parsed.Path, "/")

	// Firebase download URLs carry the key URL-encoded after an /o/ segment.
	// EscapedPath preserves the %2F separators that Parse would decode away.
	escaped := parsed.EscapedPath()
	if idx := strings.Index(escaped, "/o/"); idx >= 0 {
		encoded := escaped[idx+len("/o/"):]
		key, err := url.PathUnescape(encoded)
		if err != nil || key == "" {
			return "", false
		}
		return key, true
	}

	if parsed.Host == "storage.googleapis.com" {
		rest, found := strings.CutPrefix(path, bucket+"/")
		if !found || rest == "" {
			return "", false
		}
		key, err := url.PathUnescape(rest)
		if err != nil {
			return "", false
		}
		return key, true
	}

	if strings.HasSuffix(parsed.Host, ".firebasestorage.app") {
		if path == "" {
			return "", false
		}
		key, err := url.PathUnescape(path)
		if err != nil {
			return "", false
		}
		return key, true
	}

	return "", false
}
