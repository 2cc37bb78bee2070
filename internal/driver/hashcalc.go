package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"maps"
	"slices"
	"strconv"

	"macroessentials/internal/source"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). Части уже в детерминированном порядке.
func combineDigest(content [32]byte, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = h.Write(n[:])
		_, _ = h.Write([]byte(p))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey covers the file content and every option that changes the result.
func cacheKey(file *source.File, opts *Options) Digest {
	parts := []string{
		"schema", strconv.FormatUint(uint64(diskCacheSchemaVersion), 10),
		"domain", opts.session().Domain(),
		"max", strconv.Itoa(opts.MaxDiagnostics),
	}
	macros := slices.Clone(opts.Macros)
	slices.Sort(macros)
	parts = append(parts, "macros")
	parts = append(parts, macros...)

	parts = append(parts, "requires")
	for _, macro := range slices.Sorted(maps.Keys(opts.Requires)) {
		parts = append(parts, macro, opts.Requires[macro])
	}
	// nil означает список по умолчанию, пустой — отсутствие конструкторов
	if opts.Constructors == nil {
		parts = append(parts, "constructors-default")
	} else {
		ctors := slices.Clone(opts.Constructors)
		slices.Sort(ctors)
		parts = append(parts, "constructors")
		parts = append(parts, ctors...)
	}
	return combineDigest(file.Hash, parts...)
}
