package errors

import (
	"net"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// ValidateOutputBase validates the base path that output file names are
// derived from, e.g. "out/graph" for "out/graph_3d.html".
//
// The validation rules are intentionally conservative:
//   - No empty base
//   - No control characters or null bytes
//   - No trailing path separator (the base must name a file stem)
//   - Maximum length of 500 characters
func ValidateOutputBase(base string) error {
	if base == "" {
		return New(ErrCodeInvalidPath, "output base cannot be empty")
	}

	const maxPathLength = 500
	if len(base) > maxPathLength {
		return New(ErrCodeInvalidPath, "output base too long (max %d characters)", maxPathLength)
	}

	for _, r := range base {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output base contains invalid characters")
		}
	}

	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output base must name a file, not a directory: %q", base)
	}

	return nil
}

// ValidateFormat checks that format is one of allowed, ignoring case.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unknown format %q (valid: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateHexColor checks for a "#rrggbb" color string.
func ValidateHexColor(s string) error {
	if len(s) != 7 || s[0] != '#' {
		return New(ErrCodeInvalidInput, "invalid color %q (expected #rrggbb)", s)
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return New(ErrCodeInvalidInput, "invalid color %q (expected #rrggbb)", s)
		}
	}
	return nil
}

// ValidateListenAddr checks a host:port listen address for the HTTP viewer.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidOption, "listen address cannot be empty")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return Wrap(ErrCodeInvalidOption, err, "invalid listen address %q", addr)
	}
	return nil
}
