package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKey derives the cache key for a rendered artifact from the DOT
// text and the output format. Detail level, labels and topology are all
// part of the DOT text, so the key changes whenever the output would.
func ArtifactKey(dot, format string) string {
	return hashKey("artifact", dot, format)
}

// hashKey builds a key of the form prefix:hash(parts...). The full
// SHA-256 hex digest keeps the collision risk negligible.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
