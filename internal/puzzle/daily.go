// internal/puzzle/daily.go
//
// Deterministic daily board selection.
// Every client asking for "today's board" on the same date gets the same
// board, without any server-side state: the index is HMAC(salt, YYYY-MM-DD)
// reduced modulo the packaged board count.

package puzzle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailyIndex returns a deterministic board index for a date using
// HMAC(salt, YYYY-MM-DD) % boardCount.
func DailyIndex(date time.Time, salt string, boardCount int) int {
	if boardCount <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(boardCount))
}
