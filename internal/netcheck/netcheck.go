// Package netcheck answers whether the paste service is reachable.
package netcheck

import (
	"context"
	"log/slog"
	"net"
	"sync/atomic"
	"time"
)

// DefaultInterval is how often Start re-probes the host.
const DefaultInterval = 15 * time.Second

// Checker dials a host in the background and caches the result, so
// Reachable never blocks.
type Checker struct {
	addr    string
	timeout time.Duration
	dial    func(network, addr string, timeout time.Duration) (net.Conn, error)
	logger  *slog.Logger

	up atomic.Bool
}

// New returns a checker for addr ("host:port"). Until the first probe
// completes the host is assumed reachable.
func New(addr string, timeout time.Duration, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	c := &Checker{
		addr:    addr,
		timeout: timeout,
		dial:    net.DialTimeout,
		logger:  logger,
	}
	c.up.Store(true)
	return c
}

// Reachable returns the result of the latest probe.
func (c *Checker) Reachable() bool {
	return c.up.Load()
}

// Probe dials the host now, stores the result and returns it.
func (c *Checker) Probe() bool {
	up := true
	conn, err := c.dial("tcp", c.addr, c.timeout)
	if err != nil {
		c.logger.Debug("reachability check failed", "addr", c.addr, "err", err)
		up = false
	} else {
		conn.Close()
	}
	if c.up.Swap(up) != up {
		c.logger.Info("reachability changed", "addr", c.addr, "reachable", up)
	}
	return up
}

// Start probes immediately and then every interval on its own goroutine
// until ctx is done.
func (c *Checker) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		c.Probe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Probe()
			}
		}
	}()
}
