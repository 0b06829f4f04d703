// Package digest fingerprints domain sets so runs can be compared at a
// glance.
package digest

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"urllistsync/internal/domain"
)

// Fingerprint returns a short hex digest of set.
//
// It hashes the newline-joined entries with BLAKE2b-256 and truncates to
// 10 bytes (20 hex chars). Equal sets give equal fingerprints.
func Fingerprint(set domain.DomainSet) string {
	h, _ := blake2b.New256(nil)
	for _, d := range set {
		_, _ = h.Write([]byte(d))
		_, _ = h.Write([]byte{'\n'})
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:10])
}
