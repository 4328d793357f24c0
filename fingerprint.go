package rintercept

import (
	"crypto/sha1" //nolint:gosec
	"encoding/base64"
	"strconv"
	"strings"
)

// Fingerprint computes the entity tag of a serialized payload: the hexadecimal byte length and a
// truncated base64 SHA-1 digest, quoted. Equal bytes always produce the same tag.
func Fingerprint(data []byte) string {
	sum := sha1.Sum(data) //nolint:gosec
	hash := base64.StdEncoding.EncodeToString(sum[:])[:27]

	return `"` + strconv.FormatInt(int64(len(data)), 16) + "-" + hash + `"`
}

// MatchesNoneMatch reports whether an If-None-Match header value matches the entity tag. Weak
// comparison is used and "*" matches any tag.
func MatchesNoneMatch(header, tag string) bool {
	header = strings.TrimSpace(header)
	if header == "" || tag == "" {
		return false
	}

	if header == "*" {
		return true
	}

	tag = strings.TrimPrefix(tag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == tag {
			return true
		}
	}

	return false
}
