package stores

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// TempIDPrefix marks identifiers the client invented for optimistic inserts.
const TempIDPrefix = "tmp-"

// TempIDs issues temporary identifiers from a clock reading in nanoseconds.
// Readings never repeat: when the clock has not advanced past the last
// issued value the generator steps by one.
type TempIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewTempIDs(now func() time.Time) *TempIDs {
	if now == nil {
		now = time.Now
	}
	return &TempIDs{now: now}
}

func (g *TempIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.now().UnixNano()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return TempIDPrefix + strconv.FormatInt(n, 10)
}

// IsTempID reports whether id was issued by a TempIDs generator.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}
