package internal

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"
)

const (
	// DigestLength is the hex length of a SHA-1 digest.
	DigestLength = 40
	// PrefixLength is the range-query prefix length of the k-anonymity
	// protocol; the remaining 35 characters form the suffix and never
	// leave the process.
	PrefixLength = 5
)

var errInvalidDigest = errors.New("digest must be 40 uppercase hex characters")

// SHA1Hex returns the SHA-1 digest of the UTF-8 bytes of text, rendered as
// exactly 40 uppercase hexadecimal characters.
func SHA1Hex(text string) string {
	sum := sha1.Sum([]byte(text))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SplitDigest partitions a digest into its range-query key:
// prefix (first 5 hex chars) and suffix (remaining 35). The concatenation
// prefix+suffix always equals the input digest.
func SplitDigest(digest string) (prefix, suffix string, err error) {
	if !ValidDigest(digest) {
		return "", "", errInvalidDigest
	}
	return digest[:PrefixLength], digest[PrefixLength:], nil
}

// ValidDigest reports whether digest is a well-formed uppercase hex SHA-1.
func ValidDigest(digest string) bool {
	if len(digest) != DigestLength {
		return false
	}
	return isUpperHex(digest)
}

// ValidPrefix reports whether prefix is a well-formed 5-character range key.
func ValidPrefix(prefix string) bool {
	if len(prefix) != PrefixLength {
		return false
	}
	return isUpperHex(prefix)
}

func isUpperHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
