package momo

import (
	"fmt"
	"sync/atomic"
	"time"
)

const referencePrefix = "MOM"

// referenceCounter is seeded from the wall clock and only ever increments, so
// references stay unique within a process and collide across restarts only if
// two restarts land inside the same millisecond window.
var referenceCounter atomic.Int64

func init() {
	referenceCounter.Store(time.Now().UnixMilli())
}

// NewReference returns a human-readable transaction token: "MOM" followed by
// the last eight digits of a timestamp-derived counter.
func NewReference() string {
	n := referenceCounter.Add(1)
	digits := fmt.Sprintf("%d", n)
	if len(digits) > 8 {
		digits = digits[len(digits)-8:]
	}
	return referencePrefix + digits
}
