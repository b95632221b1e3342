package graph

import (
	"crypto/sha256"
	"encoding/hex"
)

// dataKeyCache is the reserved node data key holding memoized
// generative results, keyed by content fingerprint. The cache is scoped
// to the node instance and never evicted; duplicating a node does not
// share cache contents unless the caller copies data explicitly.
const dataKeyCache = "cache"

// Fingerprint derives a cache key from a generative executor's mode and
// every input that influences the result (payload bytes, prompt text).
// Byte-identical inputs always produce the same key.
func Fingerprint(mode string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(mode))
	for _, part := range parts {
		h.Write([]byte{0}) // separator, prevents boundary collisions
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// cacheGet looks up a memoized value on the node. Tolerates the cache
// key being absent or of a foreign shape (after a JSON reload the map
// is rebuilt on the next store).
func cacheGet(n *Node, key string) (Value, bool) {
	cache, ok := n.Data[dataKeyCache].(map[string]Value)
	if !ok {
		return Value{}, false
	}
	v, ok := cache[key]
	return v, ok
}

// cachePatch returns a data patch storing v under key, preserving
// existing entries. The runner applies the patch so cache writes flow
// through the same update path as every other result.
func cachePatch(n *Node, key string, v Value) map[string]any {
	cache := make(map[string]Value)
	if existing, ok := n.Data[dataKeyCache].(map[string]Value); ok {
		for k, val := range existing {
			cache[k] = val
		}
	}
	cache[key] = v
	return map[string]any{dataKeyCache: cache}
}
