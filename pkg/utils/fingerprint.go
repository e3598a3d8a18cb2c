package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// ProductFingerprint derives a stable identity for a catalog row from
// the fields that survive re-scraping. Price and link are volatile and
// deliberately excluded.
func ProductFingerprint(category, capacity, code, name string) string {
	parts := []string{
		normalize(category),
		normalize(capacity),
		normalize(code),
		normalize(name),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
