package action

import (
	"log/slog"

	"github.com/friendteaminc/jukebox/payload"
)

// Keyboard binds up to 6 simultaneous USB-HID usage codes to a slot.
// Grounded on original_source/desktop/src/actions/input.rs's
// InputKeyboard: on_press/on_release are no-ops on the host side because
// the firmware emits the HID report itself once the matching synthetic
// event has been pushed to the slot via SetKeyboardInput during reconcile
// (spec §8 scenario 2).
type Keyboard struct {
	Keys [6]byte `json:"keys"`
}

func (a *Keyboard) Kind() Kind { return KindKeyboard }

func (a *Keyboard) OnPress(ctx Context) error {
	slog.Debug("keyboard action pressed", "uid", ctx.UID, "slot", ctx.Slot)
	return nil
}

func (a *Keyboard) OnRelease(ctx Context) error {
	slog.Debug("keyboard action released", "uid", ctx.UID, "slot", ctx.Slot)
	return nil
}

func (a *Keyboard) DefaultIcon() payload.Icon { return payload.DefaultIcon() }

// Event renders the synthetic keyboard event reconcile pushes for this slot.
func (a *Keyboard) Event() payload.KeyboardEvent { return payload.KeyboardEvent{Keys: a.Keys} }

// Mouse binds a synthetic mouse event (buttons + relative motion/scroll)
// to a slot. Grounded on the same file's InputMouse.
type Mouse struct {
	Buttons byte `json:"buttons"`
	DX      int8 `json:"dx"`
	DY      int8 `json:"dy"`
	ScrollY int8 `json:"scroll_y"`
	ScrollX int8 `json:"scroll_x"`
}

func (a *Mouse) Kind() Kind { return KindMouse }

func (a *Mouse) OnPress(ctx Context) error {
	slog.Debug("mouse action pressed", "uid", ctx.UID, "slot", ctx.Slot)
	return nil
}

func (a *Mouse) OnRelease(ctx Context) error {
	slog.Debug("mouse action released", "uid", ctx.UID, "slot", ctx.Slot)
	return nil
}

func (a *Mouse) DefaultIcon() payload.Icon { return payload.DefaultIcon() }

// Event renders the synthetic mouse event reconcile pushes for this slot.
func (a *Mouse) Event() payload.MouseEvent {
	return payload.MouseEvent{Buttons: a.Buttons, DX: a.DX, DY: a.DY, ScrollY: a.ScrollY, ScrollX: a.ScrollX}
}
