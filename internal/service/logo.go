package service

import (
	"encoding/base64"
	"net/http"
	"os"
	"strings"
)

// MaxLogoBytes caps a tenant logo read from disk.
const MaxLogoBytes = 2 * 1024 * 1024

// resolveLogo classifies a logo reference. Data URIs go out as logo data,
// http(s) URLs as a logo URL, and anything else is read as a local file
// and inlined as a data URI.
func resolveLogo(ref string) (data, url string, err error) {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	switch {
	case ref == "":
		return "", "", nil
	case strings.HasPrefix(lower, "data:image/"):
		return ref, "", nil
	case strings.HasPrefix(lower, "data:"):
		return "", "", invalid("tenant_logo", "Logo must be an image file.")
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return "", ref, nil
	}

	info, err := os.Stat(ref)
	if err != nil || info.IsDir() {
		return "", "", invalid("tenant_logo", "Failed to load logo image.")
	}
	if info.Size() > MaxLogoBytes {
		return "", "", invalid("tenant_logo", "Logo file is too large. Max size is 2MB.")
	}
	raw, err := os.ReadFile(ref)
	if err != nil {
		return "", "", invalid("tenant_logo", "Failed to read logo image.")
	}
	contentType := http.DetectContentType(raw)
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", invalid("tenant_logo", "Logo must be an image file.")
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw), "", nil
}
