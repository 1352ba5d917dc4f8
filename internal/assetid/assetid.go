package assetid

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Length is the fixed length of an asset ID in its hex form.
const Length = 32

// ID identifies one asset and every blob derived from it. It is generated
// exactly once at intake and never reused.
type ID string

// New returns a collision-resistant ID: the md5 hex digest of a random UUID.
// The digest keeps ids at a fixed 32-char length regardless of the token
// behind them.
func New() ID {
	sum := md5.Sum([]byte(uuid.NewString()))
	return ID(hex.EncodeToString(sum[:]))
}

// Parse validates the raw string form of an ID.
func Parse(s string) (ID, error) {
	if !IsValid(s) {
		return "", fmt.Errorf("invalid asset id %q", s)
	}
	return ID(s), nil
}

// IsValid reports whether s is a well-formed ID: exactly 32 lowercase hex
// characters.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (id ID) String() string {
	return string(id)
}
