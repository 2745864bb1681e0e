package wordnode

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gitlab.com/pnathan/trieit/src/lib/log"
)

// Process flushes the pool every interval, and early whenever the pool
// passes half its capacity. It flushes one last time when ctx ends.
func (n *Node) Process(ctx context.Context, interval time.Duration) error {
	log.Info("record processor...", zap.Duration("time between flushes", interval),
		zap.Int("pool capacity", n.pool.Capacity()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			n.Flush()
			return ctx.Err()
		case <-ticker.C:
			n.Flush()
		case <-n.full:
			n.Flush()
		}
	}
}
