package scene

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
)

// fingerprintLen is the number of hex characters kept from the digest.
const fingerprintLen = 12

// Fingerprint returns a short content digest of the image at path, or the
// empty string when the file is missing or unreadable. The value identifies
// one version of the scene and keys its session state.
func Fingerprint(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
