// Package app is the root Bubble Tea model: the menu bar row with its status
// icon, and the popover holding the note editor or the preferences pane.
package app

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/config"
	"github.com/marcus/quickeys/internal/destinations"
	"github.com/marcus/quickeys/internal/dispatch"
	"github.com/marcus/quickeys/internal/keymap"
	"github.com/marcus/quickeys/internal/mouse"
	"github.com/marcus/quickeys/internal/notepad"
	"github.com/marcus/quickeys/internal/popover"
	"github.com/marcus/quickeys/internal/prefs"
	"github.com/marcus/quickeys/internal/state"
	"github.com/marcus/quickeys/internal/styles"
)

// Deps are the collaborators the model is built from. Changes and History
// may be nil.
type Deps struct {
	Config  *config.Config
	Keymap  *keymap.Registry
	Logger  *slog.Logger
	Store   destinations.Store
	Changes <-chan destinations.ChangedMsg

	Opener    dispatch.Opener
	Paster    dispatch.Paster
	Reach     dispatch.Reachability
	Cue       dispatch.Cue
	Clipboard dispatch.Clipboard
	History   dispatch.Recorder
}

// Model is the root Bubble Tea model.
type Model struct {
	// Configuration
	cfg    *config.Config
	keymap *keymap.Registry
	logger *slog.Logger

	// Components
	popover    *popover.Controller
	monitor    *mouse.Monitor
	mouse      *mouse.Handler
	notes      *notepad.Model
	preview    *notepad.Preview
	menu       *destinations.Menu
	store      destinations.Store
	pane       *prefs.Pane
	dispatcher *dispatch.Dispatcher
	clipboard  dispatch.Clipboard
	spinner    spinner.Model
	changes    <-chan destinations.ChangedMsg

	// UI state
	width, height int
	showPreview   bool

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool
}

// New creates the application model, restoring the saved note and popover
// height and populating the destination menu.
func New(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	km := deps.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}
	clip := deps.Clipboard
	if clip == nil {
		clip = dispatch.ClipboardFunc(clipboard.WriteAll)
	}

	notes := notepad.New(notepad.KeyMapFromRegistry(km))
	notes.Restore(state.GetNoteText())

	menu := destinations.NewMenu()
	if targets, err := deps.Store.Load(); err != nil {
		logger.Warn("load destinations", "err", err)
	} else {
		menu.Populate(targets)
	}
	if label := state.GetSelectedTarget(); label != "" {
		menu.SelectLabel(label)
	}

	dispatcher := dispatch.New(dispatch.Deps{
		Text:      &notes,
		Opener:    deps.Opener,
		Paster:    deps.Paster,
		Reach:     deps.Reach,
		Cue:       deps.Cue,
		Clipboard: clip,
		History:   deps.History,
		Logger:    logger,
	})

	pane := prefs.New(deps.Store, menu, dispatcher, logger)
	pane.SetKeyMap(prefs.KeyMapFromRegistry(km))

	height := cfg.Popover.InitialHeight
	if saved := state.GetPopoverHeight(); saved > 0 {
		height = saved
	}
	monitor := mouse.NewMonitor()
	ctrl := popover.New(monitor, popover.Bounds{
		Width:     cfg.Popover.Width,
		MinHeight: cfg.Popover.MinHeight,
		MaxHeight: cfg.Popover.MaxHeight,
	}, height)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Muted

	m := Model{
		cfg:        cfg,
		keymap:     km,
		logger:     logger,
		popover:    ctrl,
		monitor:    monitor,
		mouse:      mouse.NewHandler(),
		notes:      &notes,
		preview:    notepad.NewPreview(styles.GetMarkdownTheme()),
		menu:       menu,
		store:      deps.Store,
		pane:       pane,
		dispatcher: dispatcher,
		clipboard:  clip,
		spinner:    sp,
		changes:    deps.Changes,
	}
	ctrl.OnHide(m.onHide)
	return m
}

// Init initializes the model and returns initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForChange(m.changes))
}

// SaveNote writes the note text to the state file. It runs when the popover
// hides and when the process terminates.
func (m Model) SaveNote() {
	changed, err := state.SetNoteText(m.notes.AllText())
	if err != nil {
		m.logger.Warn("save note", "err", err)
		return
	}
	if changed {
		m.logger.Debug("note saved")
	}
}

// onHide is the popover's hide hook.
func (m Model) onHide() {
	m.notes.Blur()
	m.SaveNote()
}

// Popover exposes the popover controller.
func (m Model) Popover() *popover.Controller { return m.popover }

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = false
}

// ShowErrorToast displays a temporary error message.
func (m *Model) ShowErrorToast(msg string, duration time.Duration) {
	m.ShowToast(msg, duration)
	m.statusIsError = true
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}
