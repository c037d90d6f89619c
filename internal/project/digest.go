package project

import (
	"encoding/hex"
	"os"
	"slices"

	"github.com/zeebo/xxh3"
)

// Digest is an xxh3-128 hash. It matches source.File.Hash.
type Digest [16]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// DigestOf hashes parts as one length-prefixed stream, so ("ab", "c") and
// ("a", "bc") differ.
func DigestOf(parts ...[]byte) Digest {
	h := xxh3.New()
	var n [8]byte
	for _, p := range parts {
		l := uint64(len(p))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	return h.Sum128().Bytes()
}

// Combine builds a derived digest: H(content || dep1 || dep2 ...). The
// order of deps matters.
func Combine(content Digest, deps ...Digest) Digest {
	h := xxh3.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	return h.Sum128().Bytes()
}

// StringsDigest hashes a set of names independent of their order.
func StringsDigest(names []string) Digest {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	parts := make([][]byte, len(sorted))
	for i, s := range sorted {
		parts[i] = []byte(s)
	}
	return DigestOf(parts...)
}

// Digest hashes the bytes of every manifest in the graph.
func (g *Graph) Digest() (Digest, error) {
	parts := make([][]byte, 0, len(g.Packages))
	for _, m := range g.Packages {
		data, err := os.ReadFile(m.Path)
		if err != nil {
			return Digest{}, err
		}
		parts = append(parts, data)
	}
	return DigestOf(parts...), nil
}
