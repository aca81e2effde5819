package services

import (
	"fmt"
	"sync"
	"time"
)

// OrderIDGenerator hands out `ORD-<epoch-millis>` identifiers. Within one
// process the millisecond part strictly increases, so two orders submitted
// in the same millisecond still get distinct identifiers.
type OrderIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewOrderIDGenerator(now func() time.Time) *OrderIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &OrderIDGenerator{now: now}
}

// Next returns a fresh identifier and the instant it encodes.
func (g *OrderIDGenerator) Next() (string, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return fmt.Sprintf("ORD-%d", ms), time.UnixMilli(ms).UTC()
}
