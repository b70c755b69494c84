package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

// Fingerprint returns a SHA-256 hex digest of the graph's structure and
// metadata. Two graphs built from identical records have identical
// fingerprints; node and edge order are part of the digest because they
// determine component numbering and layout.
func Fingerprint(g *Graph) string {
	h := sha256.New()
	for _, n := range g.nodes {
		h.Write([]byte("n\x00" + n.ID + "\x00"))
		for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
			v, err := json.Marshal(n.Meta[k])
			if err != nil {
				v = []byte(formatValue(n.Meta[k]))
			}
			h.Write([]byte(k + "=" + string(v) + "\x00"))
		}
	}
	for _, e := range g.edges {
		h.Write([]byte("e\x00" + e.Source + "\x00" + e.Target + "\x00" +
			strconv.FormatFloat(e.Weight, 'g', -1, 64) + "\x00"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
