// Package password implements the local half of the password assessment:
// the SHA-1 fingerprint used for k-anonymity breach lookups, the additive
// strength score, and the offline fallback check.
package password

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// prefixLen is the number of leading fingerprint characters sent to the
// breach lookup service. The remaining suffix never leaves the process.
const prefixLen = 5

// Fingerprint is the uppercase hex SHA-1 digest of a password, split into
// the shareable prefix and the private suffix.
type Fingerprint struct {
	Prefix string
	Suffix string
}

// NewFingerprint hashes the password and splits the 40-character digest.
func NewFingerprint(password string) Fingerprint {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return Fingerprint{
		Prefix: digest[:prefixLen],
		Suffix: digest[prefixLen:],
	}
}

// String returns the full 40-character digest.
func (f Fingerprint) String() string {
	return f.Prefix + f.Suffix
}
