package iface

import "github.com/klauspost/compress/zstd"

// WriteCache serializes i to its normalized JSON form and zstd-compresses
// it, for persisting the interface artifact to an on-disk build cache (spec
// §6.3's "consumed by downstream modules to build analysis contexts
// without re-parsing source"). Mirrors how the teacher's own internal/iface
// package persists interfaces for downstream modules; compression matters
// here because a module with many generated reflection entries (spec
// §4.8's dispatch tables) can produce a sizeable interface document.
func WriteCache(i *Iface) ([]byte, error) {
	raw, err := i.ToNormalizedJSON()
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// ReadCache decompresses a build-cache entry produced by WriteCache back
// into its normalized JSON bytes.
func ReadCache(compressed []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(compressed, nil)
}
