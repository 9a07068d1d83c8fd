// internal/daily/daily.go
//
// Daily number mode: every player gets the same secret number on a given
// UTC date. The number is derived from HMAC-SHA256(salt, "YYYY-MM-DD"), so
// it is stable across restarts and replicas but unguessable without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Target returns the daily number for date in [min, max].
func Target(date time.Time, salt string, min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("daily: min %d above max %d", min, max)
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	span := uint64(max-min) + 1
	return min + int(n%span), nil
}
