package mods

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DisabledMarker is the reversible suffix carried by a disabled mod's
// primary file. Identity derivation strips it so enabling or disabling a mod
// never changes its identifier.
const DisabledMarker = ".disabled"

// IdentifierForPath derives the stable identifier for a mod file from its
// full path. The path string is normalized by removing the disabled marker,
// then hashed; the identifier is the first 16 hex characters of the SHA-256
// digest.
//
// The same file name installed at a different location hashes to a different
// identifier, which keeps metadata from colliding across installs. The path
// is hashed as-is: no case or separator canonicalization is applied, so the
// identifier is only stable for the exact path string the scanner produces.
func IdentifierForPath(path string) string {
	normalized := strings.ReplaceAll(path, DisabledMarker, "")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:16]
}

// IdentifierForFileName is the legacy identifier scheme, derived from the
// bare file name only. Kept for the one-time sidecar migration; new sidecars
// are always keyed by IdentifierForPath.
func IdentifierForFileName(fileName string) string {
	sum := sha256.Sum256([]byte(fileName))
	return hex.EncodeToString(sum[:])[:16]
}

// StripDisabledMarker returns the clean form of a file name or path with the
// disabled marker removed.
func StripDisabledMarker(name string) string {
	return strings.ReplaceAll(name, DisabledMarker, "")
}
