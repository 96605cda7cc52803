// Package dispatch runs the note's external actions: searching a destination
// website and pasting to the paste service.
package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/quickeys/internal/msg"
)

// Paste button captions.
const (
	RestingCaption = "Pastebin"
	SuccessCaption = "Copied!"
	FailureCaption = "Error"
)

// ResetDelay is how long a paste outcome stays on the button.
const ResetDelay = 2 * time.Second

// TextSource supplies the text an action works on.
type TextSource interface {
	SelectionOrAllText() string
}

// Selector supplies the selected destination URL template.
type Selector interface {
	SelectedURL() (string, error)
}

// Opener asks the OS to open a URL.
type Opener interface {
	Open(url string) error
}

// Paster submits already-encoded text and returns the paste URL, or "" on
// failure.
type Paster interface {
	Submit(ctx context.Context, encoded string) string
}

// Reachability reports whether the network is reachable now.
type Reachability interface {
	Reachable() bool
}

// Cue plays the audible failure cue.
type Cue interface {
	Fail()
}

// Clipboard receives the paste URL on success.
type Clipboard interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(string) error

// WriteAll calls f.
func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// Recorder stores successful pastes.
type Recorder interface {
	Record(ctx context.Context, url, text string) error
}

// Deps are the dispatcher's collaborators. Clipboard and History may be nil.
type Deps struct {
	Text      TextSource
	Opener    Opener
	Paster    Paster
	Reach     Reachability
	Cue       Cue
	Clipboard Clipboard
	History   Recorder
	Logger    *slog.Logger
}

// Button is the paste control's visible state.
type Button struct {
	Label   string
	Enabled bool
	Busy    bool
}

// PasteDoneMsg carries a paste outcome back to the update loop.
type PasteDoneMsg struct {
	ID   uint64
	URL  string
	Text string // the text that was submitted, before encoding
}

// ResetMsg fires ResetDelay after a paste outcome is shown.
type ResetMsg struct {
	ID uint64
}

// SearchDoneMsg reports a browser-open attempt.
type SearchDoneMsg struct {
	URL string
	Err error
}

// Dispatcher orchestrates search and paste. All methods run on the update
// loop; only the network call and browser launch run in commands.
type Dispatcher struct {
	deps   Deps
	logger *slog.Logger

	button       Button
	opID         uint64
	resetPending bool
	prefsActive  bool
}

// New returns a dispatcher with the paste button at rest.
func New(deps Deps) *Dispatcher {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		deps:   deps,
		logger: logger,
		button: Button{Label: RestingCaption, Enabled: true},
	}
}

// Button returns the paste button state.
func (d *Dispatcher) Button() Button { return d.button }

// Search opens template followed by the encoded selection (or all text).
func (d *Dispatcher) Search(template string) tea.Cmd {
	dest := template + Encode(d.deps.Text.SelectionOrAllText())
	opener := d.deps.Opener
	logger := d.logger

	return func() tea.Msg {
		if err := opener.Open(dest); err != nil {
			logger.Warn("browser failed to open", "err", err)
			return SearchDoneMsg{URL: dest, Err: err}
		}
		logger.Info("browser opened successfully")
		logger.Debug("search", "url", dest)
		return SearchDoneMsg{URL: dest}
	}
}

// SearchSelected searches the destination chosen in sel. An empty menu is
// reported and otherwise ignored.
func (d *Dispatcher) SearchSelected(sel Selector) tea.Cmd {
	template, err := sel.SelectedURL()
	if err != nil {
		d.logger.Info("search skipped", "reason", err)
		return msg.ShowToast("No search targets", ResetDelay)
	}
	return d.Search(template)
}

// Paste submits the selection (or all text) to the paste service. With no
// network or blank text it plays the failure cue and does nothing else.
func (d *Dispatcher) Paste() tea.Cmd {
	if !d.button.Enabled {
		return nil
	}
	if !d.deps.Reach.Reachable() {
		d.logger.Info("no internet connection")
		d.deps.Cue.Fail()
		return nil
	}
	text := d.deps.Text.SelectionOrAllText()
	if strings.TrimSpace(text) == "" {
		d.deps.Cue.Fail()
		return nil
	}

	d.opID++
	id := d.opID
	d.resetPending = false
	d.button = Button{Label: "", Enabled: false, Busy: true}

	encoded := Encode(text)
	paster := d.deps.Paster
	return func() tea.Msg {
		return PasteDoneMsg{ID: id, URL: paster.Submit(context.Background(), encoded), Text: text}
	}
}

// HandlePasteDone shows the outcome and schedules the reset. Outcomes of a
// superseded paste are dropped.
func (d *Dispatcher) HandlePasteDone(m PasteDoneMsg) tea.Cmd {
	if m.ID != d.opID || !d.button.Busy {
		return nil
	}
	d.button.Busy = false

	var cmds []tea.Cmd
	if m.URL == "" {
		d.logger.Warn("paste failed")
		d.button.Label = FailureCaption
	} else {
		d.logger.Info("paste created", "url", m.URL)
		d.button.Label = SuccessCaption
		if d.deps.Clipboard != nil {
			if err := d.deps.Clipboard.WriteAll(m.URL); err != nil {
				d.logger.Warn("copy paste url", "err", err)
			}
		}
		if d.deps.History != nil {
			cmds = append(cmds, d.record(m.URL, m.Text))
		}
	}

	d.resetPending = true
	id := m.ID
	cmds = append(cmds, tea.Tick(ResetDelay, func(time.Time) tea.Msg {
		return ResetMsg{ID: id}
	}))
	return tea.Batch(cmds...)
}

func (d *Dispatcher) record(url, text string) tea.Cmd {
	history := d.deps.History
	logger := d.logger
	return func() tea.Msg {
		if err := history.Record(context.Background(), url, text); err != nil {
			logger.Warn("record paste", "err", err)
		}
		return nil
	}
}

// HandleReset restores the resting caption. The button is re-enabled unless
// preferences mode is active.
func (d *Dispatcher) HandleReset(m ResetMsg) {
	if m.ID != d.opID || !d.resetPending {
		return
	}
	d.settle()
}

// PaneToggled applies a preferences mode change to the paste button. A
// pending reset is settled at once and its timer disarmed; otherwise the
// button flips only while showing the resting caption.
func (d *Dispatcher) PaneToggled(active bool) {
	d.prefsActive = active
	if d.resetPending {
		d.settle()
		return
	}
	if d.button.Label == RestingCaption {
		d.button.Enabled = !d.button.Enabled
	}
}

func (d *Dispatcher) settle() {
	d.resetPending = false
	d.button.Label = RestingCaption
	d.button.Enabled = !d.prefsActive
}
