// Package sound plays the audible failure cue.
package sound

import (
	"io"
	"log/slog"
	"os/exec"
	"runtime"
)

// funkSound is the macOS system sound used for failures.
const funkSound = "/System/Library/Sounds/Funk.aiff"

// Player plays cues without blocking the caller.
type Player struct {
	goos   string
	bell   io.Writer
	run    func(name string, args ...string) error
	logger *slog.Logger
}

// New returns a player that rings bell when no system sound is available.
func New(bell io.Writer, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		goos: runtime.GOOS,
		bell: bell,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
		logger: logger,
	}
}

// Fail plays the failure cue.
func (p *Player) Fail() {
	if p.goos == "darwin" {
		go func() {
			if err := p.run("afplay", funkSound); err != nil {
				p.logger.Debug("afplay failed, ringing bell", "err", err)
				p.ring()
			}
		}()
		return
	}
	p.ring()
}

func (p *Player) ring() {
	if p.bell == nil {
		return
	}
	_, _ = io.WriteString(p.bell, "\a")
}
