// Package host owns the process-wide context: the shared collaborators built
// at launch and torn down at exit.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marcus/quickeys/internal/config"
	"github.com/marcus/quickeys/internal/destinations"
	"github.com/marcus/quickeys/internal/history"
	"github.com/marcus/quickeys/internal/hotkey"
)

// ToggleShortcut is the name of the global popover shortcut.
const ToggleShortcut = "toggle"

// shutdownTimeout bounds the control server's graceful stop.
const shutdownTimeout = 2 * time.Second

// Context is constructed once in main and closed on exit.
type Context struct {
	Config       *config.Config
	Logger       *slog.Logger
	Destinations *destinations.FileStore
	Hotkeys      *hotkey.Registry
	History      *history.Store // nil when disabled or unavailable

	mu        sync.Mutex
	control   *hotkey.Server
	terminate []func()
	closed    bool
}

// New builds the context. An unusable destination list is fatal; a history
// database that cannot be opened only disables history.
func New(cfg *config.Config, logger *slog.Logger) (*Context, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := destinations.NewFileStore(cfg.Destinations.Path)
	if err != nil {
		return nil, fmt.Errorf("destination list: %w", err)
	}

	c := &Context{
		Config:       cfg,
		Logger:       logger,
		Destinations: store,
		Hotkeys:      hotkey.NewRegistry(),
	}

	if cfg.History.Enabled {
		h, err := history.Open(cfg.History.DBPath)
		if err != nil {
			logger.Warn("paste history disabled", "err", err)
		} else {
			c.History = h
		}
	}
	return c, nil
}

// StartControl registers the toggle shortcut and serves the control
// endpoint. toggle runs on the server's goroutine.
func (c *Context) StartControl(toggle func()) error {
	if err := c.Hotkeys.Register(ToggleShortcut, c.Config.Control.ToggleShortcut, toggle); err != nil {
		return fmt.Errorf("register toggle shortcut: %w", err)
	}
	srv, err := hotkey.Serve(c.Config.Control.Addr, c.Hotkeys, c.Logger)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.control = srv
	c.mu.Unlock()
	c.Logger.Info("control endpoint listening", "addr", srv.Addr(), "shortcut", c.Config.Control.ToggleShortcut)
	return nil
}

// OnTerminate registers fn to run first during Close, in registration order.
func (c *Context) OnTerminate(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.terminate = append(c.terminate, fn)
}

// Close runs the terminate hooks, unregisters shortcuts, stops the control
// server and closes the history database. Later calls do nothing.
func (c *Context) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	hooks := c.terminate
	srv := c.control
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	c.Hotkeys.UnregisterAll()

	var errs []error
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop control server: %w", err))
		}
	}
	if c.History != nil {
		if err := c.History.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close history: %w", err))
		}
	}
	return errors.Join(errs...)
}
