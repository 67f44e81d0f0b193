package helpers

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewUserID returns a 32-character lowercase hex id (128 random bits).
// Ids are opaque; the hex form keeps them safe in URLs and Redis keys.
func NewUserID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
