package action

import (
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/friendteaminc/jukebox/payload"
)

// OpenApp launches a local executable on press, grounded on
// original_source/desktop/src/actions/system.rs's SystemOpenApp.
type OpenApp struct {
	Path      string   `json:"path"`
	Arguments []string `json:"arguments,omitempty"`
}

func (a *OpenApp) Kind() Kind { return KindOpenApp }

func (a *OpenApp) OnPress(ctx Context) error {
	if a.Path == "" {
		return nil
	}
	cmd := exec.Command(a.Path, a.Arguments...)
	if err := cmd.Start(); err != nil {
		slog.Warn("open-app action failed to start", "uid", ctx.UID, "slot", ctx.Slot, "path", a.Path, "err", err)
		return err
	}
	return nil
}

func (a *OpenApp) OnRelease(ctx Context) error { return nil }

func (a *OpenApp) DefaultIcon() payload.Icon { return payload.DefaultIcon() }

// OpenWeb opens a URL in the OS default browser on press, grounded on the
// same file's SystemOpenWeb.
type OpenWeb struct {
	URL string `json:"url"`
}

func (a *OpenWeb) Kind() Kind { return KindOpenWeb }

func (a *OpenWeb) OnPress(ctx Context) error {
	if a.URL == "" {
		return nil
	}
	cmd := openURLCommand(a.URL)
	if err := cmd.Start(); err != nil {
		slog.Warn("open-web action failed to start", "uid", ctx.UID, "slot", ctx.Slot, "url", a.URL, "err", err)
		return err
	}
	return nil
}

func (a *OpenWeb) OnRelease(ctx Context) error { return nil }

func (a *OpenWeb) DefaultIcon() payload.Icon { return payload.DefaultIcon() }

// openURLCommand returns the OS-appropriate way to hand a URL to the
// default browser without shelling out through a command interpreter.
func openURLCommand(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
