package firmware

import (
	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/mailbox"
	"github.com/friendteaminc/jukebox/payload"
)

// maxSlots is sized to the 16 switch positions a KeyPad snapshot carries;
// slots beyond a family's InputSlotCount are simply never addressed.
const maxSlots = 16

// Mailboxes is the complete set of inter-core shared state for one device
// (§4.7): current inputs, per-slot synthetic events, RGB and screen
// profiles (each with an implicit dirty flag via mailbox.Mailbox), per-slot
// icons, the profile name banner, and the system-stats telemetry record.
type Mailboxes struct {
	deviceType devicetype.DeviceType

	Inputs          *mailbox.Mailbox[payload.Snapshot]
	KeyboardEvents  [maxSlots]*mailbox.Mailbox[payload.KeyboardEvent]
	MouseEvents     [maxSlots]*mailbox.Mailbox[payload.MouseEvent]
	RGB             *mailbox.Mailbox[payload.RGBProfile]
	Screen          *mailbox.Mailbox[payload.ScreenProfile]
	Icons           [maxSlots]*mailbox.Mailbox[payload.Icon]
	ProfileName     *mailbox.Mailbox[string]
	SystemStats     *mailbox.Mailbox[payload.SystemStats]
}

// NewMailboxes builds a Mailboxes set loaded with built-in defaults for a
// device of type dt.
func NewMailboxes(dt devicetype.DeviceType) *Mailboxes {
	m := &Mailboxes{deviceType: dt}
	m.ResetToDefaults()
	return m
}

func emptySnapshot(dt devicetype.DeviceType) payload.Snapshot {
	switch dt {
	case devicetype.KeyPad:
		return payload.KeyPadSnapshot{}
	case devicetype.KnobPad:
		return payload.KnobPadSnapshot{}
	case devicetype.PedalPad:
		return payload.PedalPadSnapshot{}
	default:
		return payload.KeyPadSnapshot{}
	}
}

func defaultKeyboardEvent(dt devicetype.DeviceType, slot int) payload.KeyboardEvent {
	if dt == devicetype.KeyPad && slot < len(payload.F13ThroughF24) {
		return payload.DefaultKeyboardEvent(payload.F13ThroughF24[slot])
	}
	return payload.KeyboardEvent{}
}

// ResetToDefaults restores every mailbox to its built-in default value and
// raises every dirty flag, matching §4.4's "all peripheral mailboxes
// revert to built-in defaults" and §4.7's "Reset on Disconnected(any)".
func (m *Mailboxes) ResetToDefaults() {
	m.Inputs = mailbox.New(emptySnapshot(m.deviceType))
	for i := 0; i < maxSlots; i++ {
		m.KeyboardEvents[i] = mailbox.New(defaultKeyboardEvent(m.deviceType, i))
		m.MouseEvents[i] = mailbox.New(payload.MouseEvent{})
		m.Icons[i] = mailbox.New(payload.DefaultIcon())
	}
	m.RGB = mailbox.New(payload.DefaultRGBProfile())
	m.Screen = mailbox.New(payload.DefaultScreenProfile())
	m.ProfileName = mailbox.New("")
	m.SystemStats = mailbox.New(payload.SystemStats{})

	// Mailbox.New does not mark its initial value dirty; §4.7 requires all
	// flags raised on reset, so force a Set to raise them.
	m.Inputs.Set(m.Inputs.Consume())
	for i := 0; i < maxSlots; i++ {
		m.KeyboardEvents[i].Set(m.KeyboardEvents[i].Consume())
		m.MouseEvents[i].Set(m.MouseEvents[i].Consume())
		m.Icons[i].Set(m.Icons[i].Consume())
	}
	m.RGB.Set(m.RGB.Consume())
	m.Screen.Set(m.Screen.Consume())
	m.ProfileName.Set(m.ProfileName.Consume())
	m.SystemStats.Set(m.SystemStats.Consume())
}
