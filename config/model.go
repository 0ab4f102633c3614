// Package config models the host-side profile configuration (§3 "Profile
// config (host)") and its mutex-guarded, atomically-persisted store (§6).
package config

import (
	"encoding/json"
	"fmt"

	"github.com/friendteaminc/jukebox/action"
	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/payload"
)

// IconChoice selects between a user-chosen cached image and an action's
// compiled-in default icon (spec §4.6 "Icon resolution").
type IconChoice struct {
	// CustomIconPath, when non-empty, names a cached image file whose
	// bytes are loaded via payload.IconFromCachedBytes. Empty means "use
	// the bound action's default icon".
	CustomIconPath string `json:"custom_icon_path,omitempty"`
}

// SlotBinding is one key_map entry: the action bound to a slot plus its
// icon choice.
type SlotBinding struct {
	Action action.Action `json:"-"`
	Icon   IconChoice    `json:"icon"`
}

type slotBindingWire struct {
	Action json.RawMessage `json:"action"`
	Icon   IconChoice      `json:"icon"`
}

func (b SlotBinding) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if b.Action != nil {
		encoded, err := action.Marshal(b.Action)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return json.Marshal(slotBindingWire{Action: raw, Icon: b.Icon})
}

func (b *SlotBinding) UnmarshalJSON(data []byte) error {
	var wire slotBindingWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	b.Icon = wire.Icon
	if len(wire.Action) == 0 {
		b.Action = &action.NoAction{}
		return nil
	}
	a, err := action.Unmarshal(wire.Action)
	if err != nil {
		return err
	}
	b.Action = a
	return nil
}

// DeviceProfile is one profile's settings for a single UID: the bound
// slot actions plus the RGB/screen profiles reconcile pushes to the
// device (§3, §4.6 step 7).
type DeviceProfile struct {
	KeyMap map[int]SlotBinding   `json:"key_map"`
	RGB    payload.RGBProfile    `json:"rgb_profile"`
	Screen payload.ScreenProfile `json:"screen_profile"`
}

// Profile is one named configuration: per-UID device settings.
type Profile struct {
	Devices map[string]DeviceProfile `json:"devices"`
}

// Document is the full persisted shape (§6: JSON under
// JukeBoxDesktop/config.json).
type Document struct {
	CurrentProfile string             `json:"current_profile"`
	Profiles       map[string]Profile `json:"profiles"`
}

// NewDocument returns an empty document with a single "Default" profile,
// the shape a fresh install starts from.
func NewDocument() Document {
	return Document{
		CurrentProfile: "Default",
		Profiles: map[string]Profile{
			"Default": {Devices: map[string]DeviceProfile{}},
		},
	}
}

// Snapshot is the read-only view the action dispatcher consumes each tick
// (§4.6 step 1: "(device_type, key_map, profile_name, rgb, screen) :=
// config_snapshot(uid)").
type Snapshot struct {
	DeviceType  devicetype.DeviceType
	ProfileName string
	KeyMap      map[int]SlotBinding
	RGB         payload.RGBProfile
	Screen      payload.ScreenProfile
}

// defaultDeviceProfile seeds a UID's entry the first time it is seen,
// using the device type's default key table (§9 "Default key table").
func defaultDeviceProfile(dt devicetype.DeviceType) DeviceProfile {
	dp := DeviceProfile{
		KeyMap: make(map[int]SlotBinding, dt.InputSlotCount()),
		RGB:    payload.DefaultRGBProfile(),
		Screen: payload.DefaultScreenProfile(),
	}
	for slot := 0; slot < dt.InputSlotCount(); slot++ {
		dp.KeyMap[slot] = SlotBinding{Action: defaultAction(dt, slot)}
	}
	return dp
}

// defaultAction reproduces ActionMap::default_action_config: KeyPad slots
// default to F13..F24 keyboard keys; other device types default to no-op.
func defaultAction(dt devicetype.DeviceType, slot int) action.Action {
	if dt == devicetype.KeyPad && slot < len(payload.F13ThroughF24) {
		return &action.Keyboard{Keys: [6]byte{payload.F13ThroughF24[slot], 0, 0, 0, 0, 0}}
	}
	return &action.NoAction{}
}

func (d Document) profileNames() []string {
	names := make([]string, 0, len(d.Profiles))
	for name := range d.Profiles {
		names = append(names, name)
	}
	return names
}

func (d Document) validateCurrentProfile() error {
	if _, ok := d.Profiles[d.CurrentProfile]; !ok {
		return fmt.Errorf("config: current profile %q not found among %v", d.CurrentProfile, d.profileNames())
	}
	return nil
}
