// Package browser opens URLs in the user's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches the platform's URL handler.
type Opener struct {
	goos  string
	start func(*exec.Cmd) error
}

// New returns an opener for the running platform.
func New() *Opener {
	return &Opener{
		goos:  runtime.GOOS,
		start: (*exec.Cmd).Start,
	}
}

// Open asks the OS to open url. It returns once the handler is launched.
func (o *Opener) Open(url string) error {
	cmd, err := command(o.goos, url)
	if err != nil {
		return err
	}
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("open %s: %w", cmd.Path, err)
	}
	go cmd.Wait()
	return nil
}

func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	default:
		return nil, fmt.Errorf("no browser launcher for %s", goos)
	}
}
