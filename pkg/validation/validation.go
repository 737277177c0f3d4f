package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex    = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,62}[a-z0-9])?$`)
	unsafeKeyRun = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	return emailRegex.MatchString(email)
}

// ValidateSlug validates a tenant slug (lowercase alphanumeric plus hyphens)
func ValidateSlug(slug string) bool {
	return slugRegex.MatchString(strings.TrimSpace(slug))
}

// SanitizeFilename makes a client-supplied filename safe for use inside a
// storage key: every character outside [A-Za-z0-9._-] becomes an underscore.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	// strip any path the client sent along
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "\x00", "")
	return unsafeKeyRun.ReplaceAllString(name, "_")
}

// ValidatePartNumber checks an S3 multipart part number (1-indexed, S3 caps at 10000)
func ValidatePartNumber(n int) bool {
	return n >= 1 && n <= 10000
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
