// Package action implements the polymorphic action sum type described in
// spec §4.6 and §9 ("Polymorphic actions... express actions as a sum type
// ... the dispatch surface is on_press, on_release, serialize, icon"),
// grounded on original_source/desktop/src/actions/types.rs's create_actions!
// macro. Only the core kinds spec §4.6 requires are implemented here —
// meta (NoAction, SwitchProfile) and basic input (Keyboard, Mouse) — plus
// the Launch kind recovered from original_source as a supplemented feature.
// Integrations (Discord, OBS, soundboard) are deliberately NOT implemented;
// Registry is their extension point.
package action

import (
	"fmt"

	"github.com/friendteaminc/jukebox/payload"
)

// Kind identifies which concrete Action variant a value holds. It doubles
// as the JSON discriminator when a Profile is persisted (config package).
type Kind string

const (
	KindNoAction      Kind = "no_action"
	KindSwitchProfile Kind = "switch_profile"
	KindKeyboard      Kind = "keyboard"
	KindMouse         Kind = "mouse"
	KindOpenApp       Kind = "open_app"
	KindOpenWeb       Kind = "open_web"
)

// ProfileSwitcher is the one capability SwitchProfile needs from the
// config store. Action depends on this interface, not on the config
// package, so that config can depend on action (it stores bound Actions
// per slot) without a cycle.
type ProfileSwitcher interface {
	SetCurrentProfile(name string) error
}

// Context is everything an Action needs to run one on_press/on_release
// invocation. Dispatcher builds one per fired action.
type Context struct {
	UID      string
	Slot     int
	Profiles ProfileSwitcher
}

// Action is the capability surface every variant implements: on_press,
// on_release, serialize (via Kind + the concrete struct's own JSON tags),
// and icon (a compiled-in default, overridable per-slot by config).
type Action interface {
	Kind() Kind
	OnPress(ctx Context) error
	OnRelease(ctx Context) error
	DefaultIcon() payload.Icon
}

// Unmarshal-by-kind support: config.Store persists Actions as
// {"kind": "...", "data": {...fields}}. New constructs the zero value for
// a core kind so json.Unmarshal has a concrete type to decode into.
func New(kind Kind) (Action, error) {
	switch kind {
	case KindNoAction:
		return &NoAction{}, nil
	case KindSwitchProfile:
		return &SwitchProfile{}, nil
	case KindKeyboard:
		return &Keyboard{}, nil
	case KindMouse:
		return &Mouse{}, nil
	case KindOpenApp:
		return &OpenApp{}, nil
	case KindOpenWeb:
		return &OpenWeb{}, nil
	default:
		return nil, fmt.Errorf("action: unknown kind %q", kind)
	}
}
