package subject

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashID returns the lowercase hex SHA-256 digest of subjectID+extraKey.
//
// The two values are concatenated without a separator. Uniqueness across
// subjects depends on the caller choosing extraKey; for Euclid a good subject
// ID is "Q{N}_R{N}_{tile_index}_{object_id}".
func HashID(subjectID string, extraKey string) string {
	sum := sha256.Sum256([]byte(subjectID + extraKey))
	return hex.EncodeToString(sum[:])
}
