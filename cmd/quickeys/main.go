package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/app"
	"github.com/marcus/quickeys/internal/browser"
	"github.com/marcus/quickeys/internal/config"
	"github.com/marcus/quickeys/internal/destinations"
	"github.com/marcus/quickeys/internal/history"
	"github.com/marcus/quickeys/internal/host"
	"github.com/marcus/quickeys/internal/hotkey"
	"github.com/marcus/quickeys/internal/keymap"
	"github.com/marcus/quickeys/internal/netcheck"
	"github.com/marcus/quickeys/internal/paste"
	"github.com/marcus/quickeys/internal/sound"
	"github.com/marcus/quickeys/internal/state"
	"github.com/marcus/quickeys/internal/styles"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("quickeys version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "":
	case "toggle":
		os.Exit(runToggle(cfg))
	case "history":
		os.Exit(runHistory(cfg, flag.Args()[1:]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(runUI(cfg))
}

// runUI runs the menu-bar program and returns the exit code. Deferred
// cleanup runs before the caller exits.
func runUI(cfg *config.Config) int {
	// The terminal belongs to the UI, so logs go to a file.
	logger, closeLog := setupLogging(*debugFlag)
	defer closeLog()

	if *configPath == "" {
		if seeded, err := config.SeedDefault(); err != nil {
			logger.Warn("write default config", "err", err)
		} else if seeded {
			logger.Info("wrote default config", "path", config.ConfigPath())
		}
	}

	styles.ApplyTheme(cfg.UI.Theme, cfg.UI.Accent)
	logger.Debug("theme applied", "theme", styles.GetCurrentThemeName())

	// Load persistent state (ignore errors - state is optional)
	if err := state.Init(); err != nil {
		logger.Warn("state unavailable", "err", err)
	}

	hc, err := host.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}

	// Create keymap registry
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	km.ApplyOverrides(cfg.Keymap.Overrides)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan destinations.ChangedMsg
	if cfg.Destinations.Watch {
		changes, err = destinations.Watch(hc.Destinations.Path(), ctx.Done())
		if err != nil {
			logger.Warn("destination watch disabled", "err", err)
		}
	}

	reach := netcheck.New(cfg.Network.ReachabilityHost, cfg.Network.Timeout, logger)
	reach.Start(ctx, netcheck.DefaultInterval)

	deps := app.Deps{
		Config:  cfg,
		Keymap:  km,
		Logger:  logger,
		Store:   hc.Destinations,
		Changes: changes,
		Opener:  browser.New(),
		Paster: paste.New(paste.Options{
			Endpoint: cfg.Paste.Endpoint,
			DevKey:   cfg.Paste.DevKey,
			Expire:   cfg.Paste.Expire,
			Private:  cfg.Paste.Private,
			Timeout:  cfg.Paste.Timeout,
			Logger:   logger,
		}),
		Reach: reach,
		Cue:   sound.New(os.Stderr, logger),
	}
	if hc.History != nil {
		deps.History = hc.History
	}

	model := app.New(deps)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if err := hc.StartControl(func() { p.Send(app.ToggleMsg{}) }); err != nil {
		logger.Warn("global shortcut unavailable", "err", err)
	}
	hc.OnTerminate(model.SaveNote)

	_, runErr := p.Run()
	if err := hc.Close(); err != nil {
		logger.Warn("shutdown", "err", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", runErr)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// setupLogging writes structured logs to quickeys.log in the config
// directory, falling back to discarding them.
func setupLogging(debugOn bool) (*slog.Logger, func()) {
	logLevel := slog.LevelInfo
	if debugOn {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}

	dir := config.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "quickeys.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	logger := slog.New(slog.NewTextHandler(f, opts))
	slog.SetDefault(logger)
	return logger, func() { f.Close() }
}

// runToggle asks the running instance to toggle its popover.
func runToggle(cfg *config.Config) int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := hotkey.Trigger(ctx, cfg.Control.Addr, host.ToggleShortcut); err != nil {
		fmt.Fprintf(os.Stderr, "toggle: %v\n", err)
		return 1
	}
	return 0
}

// runHistory prints the most recent pastes, newest first.
func runHistory(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("n", 10, "number of pastes to show")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
		return 1
	}
	if len(records) == 0 {
		fmt.Println("No pastes yet.")
		return 0
	}
	for _, r := range records {
		fmt.Printf("%s  %s  %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"), r.URL, r.Excerpt)
	}
	return 0
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	ver := "devel+" + revision
	if len(ver) > 20 {
		ver = ver[:20]
	}
	if dirty {
		ver += "+dirty"
	}
	return ver
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: quickeys [options] [toggle | history [-n N]]\n\n")
		fmt.Fprintf(os.Stderr, "A menu-bar notepad that searches the web or pastes what you type.\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  toggle     show or hide the running instance's popover\n")
		fmt.Fprintf(os.Stderr, "  history    list recent pastes\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
