// services/fingerprint.go
package services

import (
	"crypto/md5"
	"encoding/hex"
)

// Fingerprint returns the lowercase hex MD5 digest of data.
func Fingerprint(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
