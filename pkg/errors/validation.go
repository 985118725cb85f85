package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxLayoutNameLength bounds layout names accepted from external callers.
const maxLayoutNameLength = 256

// ValidateLayoutName checks a layout name received from outside the process
// (an HTTP path segment, a CLI flag) before it is looked up in a registry.
//
// Layout hints inside slide content are not validated here; they pass
// through the selector untouched.
func ValidateLayoutName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "layout name cannot be empty")
	}

	if len(name) > maxLayoutNameLength {
		return New(ErrCodeInvalidName, "layout name too long (max %d characters)", maxLayoutNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "layout name contains invalid control characters")
		}
	}

	return nil
}

// ValidateSinkURL checks that an audit sink URL uses a supported scheme.
func ValidateSinkURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidSink, err, "malformed sink URL")
	}

	switch u.Scheme {
	case "file", "redis", "rediss", "mongodb", "mongodb+srv":
		return nil
	case "":
		return New(ErrCodeInvalidSink, "sink URL needs a scheme (file, redis, mongodb)")
	default:
		return New(ErrCodeInvalidSink, "unsupported sink scheme: %q", u.Scheme)
	}
}
