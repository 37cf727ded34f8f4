package iface

import (
	"encoding/hex"
	"hash/fnv"
)

// Digest computes a deterministic content digest for i, matching the
// hash/fnv precedent already used by internal/synth's identityHash rather
// than reaching for a hashing library the retrieval pack never imports.
// It hashes i's normalized JSON with Digest left blank, so the digest never
// depends on itself.
func Digest(i *Iface) string {
	undigested := *i
	undigested.Digest = ""
	bytes, err := (&undigested).ToNormalizedJSON()
	if err != nil {
		return ""
	}
	h := fnv.New128a()
	_, _ = h.Write(bytes)
	return hex.EncodeToString(h.Sum(nil))
}
