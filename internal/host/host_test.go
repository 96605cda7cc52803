package host

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcus/quickeys/internal/config"
	"github.com/marcus/quickeys/internal/hotkey"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Destinations.Path = filepath.Join(dir, "urls.json")
	cfg.History.DBPath = filepath.Join(dir, "history.db")
	cfg.Control.Addr = "127.0.0.1:0"
	return cfg
}

func TestNew_SeedsDestinationsAndOpensHistory(t *testing.T) {
	c, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	targets, err := c.Destinations.Load()
	if err != nil || len(targets) == 0 {
		t.Errorf("destinations not seeded: %v, %v", targets, err)
	}
	if c.History == nil {
		t.Error("history should be open when enabled")
	}
}

func TestNew_HistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = false

	c, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.History != nil {
		t.Error("history should be nil when disabled")
	}
}

func TestStartControl_TogglesAndCloses(t *testing.T) {
	c, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	toggled := make(chan struct{}, 1)
	if err := c.StartControl(func() { toggled <- struct{}{} }); err != nil {
		t.Fatalf("StartControl failed: %v", err)
	}
	addr := c.control.Addr()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := hotkey.Trigger(ctx, addr, ToggleShortcut); err != nil {
		t.Fatalf("Trigger failed: %v", err)
	}
	select {
	case <-toggled:
	case <-time.After(time.Second):
		t.Fatal("toggle not delivered")
	}

	var order []string
	c.OnTerminate(func() { order = append(order, "save") })
	c.OnTerminate(func() { order = append(order, "second") })

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if len(order) != 2 || order[0] != "save" {
		t.Errorf("terminate hooks ran as %v", order)
	}
	if len(c.Hotkeys.List()) != 0 {
		t.Error("shortcuts should be unregistered on close")
	}
	if err := hotkey.Trigger(ctx, addr, ToggleShortcut); err == nil {
		t.Error("control endpoint should be down after Close")
	}

	// Second close is a no-op.
	if err := c.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if len(order) != 2 {
		t.Error("hooks should run once")
	}
}

func TestStartControl_BadShortcut(t *testing.T) {
	cfg := testConfig(t)
	cfg.Control.ToggleShortcut = "8"

	c, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.StartControl(func() {}); !errors.Is(err, hotkey.ErrInvalidBinding) {
		t.Errorf("error = %v, want ErrInvalidBinding", err)
	}
}
