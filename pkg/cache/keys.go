package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey derives the cache key for one rendered artifact. The key
// binds the model fingerprint, the diagram options, and the output
// format, so any change to the input produces a different key.
func ArtifactKey(modelHash, format string, opts any) string {
	return hashKey("artifact", modelHash, format, opts)
}

// DiagramKey derives the cache key for a built (but unrendered) diagram.
func DiagramKey(modelHash string, opts any) string {
	return hashKey("diagram", modelHash, opts)
}

// hashKey generates a key of the form prefix:hash(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}
