// Package syncmode derives the single online-mode flag that gates remote
// writes: the user is authenticated, the subscription is premium, and
// connectivity is available.
package syncmode

import (
	"context"
	"log"
	"sync"
	"time"
)

const TierPremium = "premium"

type Controller struct {
	mu            sync.Mutex
	authenticated bool
	premium       bool
	connected     bool
	onOnline      func()
}

func New() *Controller {
	return &Controller{}
}

// OnOnline registers a callback fired on every transition of online mode
// from false to true. The callback runs synchronously on the goroutine that
// flipped the last input.
func (c *Controller) OnOnline(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOnline = fn
}

func (c *Controller) SetAuthenticated(v bool) {
	c.set(func() { c.authenticated = v })
}

func (c *Controller) SetPremium(v bool) {
	c.set(func() { c.premium = v })
}

func (c *Controller) SetConnected(v bool) {
	c.set(func() { c.connected = v })
}

func (c *Controller) set(apply func()) {
	c.mu.Lock()
	wasOnline := c.online()
	apply()
	nowOnline := c.online()
	fn := c.onOnline
	c.mu.Unlock()

	if !wasOnline && nowOnline && fn != nil {
		fn()
	}
}

// Online reports whether writes should also hit the remote store. Advisory,
// not transactional: a remote failure after a local commit leaves the record
// pending.
func (c *Controller) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online()
}

func (c *Controller) online() bool {
	return c.authenticated && c.premium && c.connected
}

// Watch probes connectivity on an interval and feeds the result into the
// controller until the context is cancelled.
func (c *Controller) Watch(ctx context.Context, interval time.Duration, probe func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := probe(ctx)
			if err != nil {
				log.Printf("connectivity probe failed: %v", err)
			}
			c.SetConnected(err == nil)
		}
	}
}
