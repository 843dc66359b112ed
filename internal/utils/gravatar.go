package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// GravatarHash returns the avatar lookup hash for an email address,
// following the gravatar convention: md5 of the trimmed, lowercased
// address, hex encoded.
func GravatarHash(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
