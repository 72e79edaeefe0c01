// Package chat runs the periodic history retention sweep.
package chat

import (
	"context"
	"log"
	"time"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 5 * time.Minute

// Sweep truncates every room's history to the retention bound and returns the
// number of entries dropped. It takes the same mutex as live mutations, so a
// sweep can never interleave with an in-flight append.
func (c *Coordinator) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for _, room := range c.rooms.order {
		dropped += room.compact(historyCompactTo)
	}
	return dropped
}

// RunSweeper sweeps on a fixed interval until the context is canceled. It is
// pure housekeeping: nothing is announced to clients.
func (c *Coordinator) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := c.Sweep(); dropped > 0 {
				log.Printf("Retention sweep dropped %d messages", dropped)
			}
		}
	}
}
