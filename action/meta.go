package action

import (
	"log/slog"

	"github.com/friendteaminc/jukebox/payload"
)

// NoAction is the default, empty binding — grounded on
// original_source/desktop/src/actions/meta.rs's MetaNoAction.
type NoAction struct{}

func (a *NoAction) Kind() Kind { return KindNoAction }

func (a *NoAction) OnPress(ctx Context) error {
	slog.Debug("no-op action pressed", "uid", ctx.UID, "slot", ctx.Slot)
	return nil
}

func (a *NoAction) OnRelease(ctx Context) error {
	slog.Debug("no-op action released", "uid", ctx.UID, "slot", ctx.Slot)
	return nil
}

func (a *NoAction) DefaultIcon() payload.Icon { return payload.DefaultIcon() }

// SwitchProfile activates a different profile on release, grounded on
// original_source/desktop/src/actions/meta.rs's MetaSwitchProfile (which
// mutates config.current_profile in on_release, not on_press, so a single
// press-and-release doesn't flicker between profiles mid-press).
type SwitchProfile struct {
	Target string `json:"target"`
}

func (a *SwitchProfile) Kind() Kind { return KindSwitchProfile }

func (a *SwitchProfile) OnPress(ctx Context) error { return nil }

func (a *SwitchProfile) OnRelease(ctx Context) error {
	if a.Target == "" {
		return nil
	}
	return ctx.Profiles.SetCurrentProfile(a.Target)
}

func (a *SwitchProfile) DefaultIcon() payload.Icon { return payload.DefaultIcon() }
