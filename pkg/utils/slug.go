package utils

import "strings"

// Slugify derives the URL-safe identifier for a space from its display name:
// lower-cased, trimmed, every run of characters outside [a-z0-9] collapsed to a
// single hyphen, leading and trailing hyphens removed. Idempotent, and empty
// for names that contain no usable characters at all.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
