package collect

import (
	"context"
	"time"

	"github.com/calebstern/sysdash/internal/logger"
)

// Collector periodically runs a sampling function and publishes successful
// snapshots into its mailbox. A failed sample leaves the mailbox untouched;
// the next tick simply tries again.
type Collector[T any] struct {
	name     string
	interval time.Duration
	sample   func() (T, error)
	mailbox  *Mailbox[T]
	log      logger.Logger
}

func New[T any](name string, interval time.Duration, sample func() (T, error)) *Collector[T] {
	return &Collector[T]{
		name:     name,
		interval: interval,
		sample:   sample,
		mailbox:  NewMailbox[T](),
		log:      logger.FromEnv("[" + name + "]"),
	}
}

// Mailbox exposes the collector's output slot for non-blocking reads.
func (c *Collector[T]) Mailbox() *Mailbox[T] { return c.mailbox }

// Run loops until ctx is cancelled. It samples once immediately so the first
// frame is not empty for a full interval, then on every tick.
func (c *Collector[T]) Run(ctx context.Context) {
	c.once()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.once()
		}
	}
}

// Start launches Run on its own goroutine.
func (c *Collector[T]) Start(ctx context.Context) {
	go c.Run(ctx)
}

func (c *Collector[T]) once() {
	snapshot, err := c.sample()
	if err != nil {
		c.log.Warn("sample failed: %v", err)
		return
	}
	c.mailbox.Publish(snapshot)
}
