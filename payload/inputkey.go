package payload

import "github.com/friendteaminc/jukebox/devicetype"

// InputKey identifies one physical control on a device: a key switch, one
// knob's switch/rotation detents, or one pedal. It is the element type of
// the sets the action dispatcher diffs between successive input snapshots.
type InputKey string

const (
	KeySwitch1  InputKey = "KeySwitch1"
	KeySwitch2  InputKey = "KeySwitch2"
	KeySwitch3  InputKey = "KeySwitch3"
	KeySwitch4  InputKey = "KeySwitch4"
	KeySwitch5  InputKey = "KeySwitch5"
	KeySwitch6  InputKey = "KeySwitch6"
	KeySwitch7  InputKey = "KeySwitch7"
	KeySwitch8  InputKey = "KeySwitch8"
	KeySwitch9  InputKey = "KeySwitch9"
	KeySwitch10 InputKey = "KeySwitch10"
	KeySwitch11 InputKey = "KeySwitch11"
	KeySwitch12 InputKey = "KeySwitch12"

	KnobLeftSwitch             InputKey = "KnobLeftSwitch"
	KnobLeftClockwise          InputKey = "KnobLeftClockwise"
	KnobLeftCounterClockwise   InputKey = "KnobLeftCounterClockwise"
	KnobRightSwitch            InputKey = "KnobRightSwitch"
	KnobRightClockwise         InputKey = "KnobRightClockwise"
	KnobRightCounterClockwise  InputKey = "KnobRightCounterClockwise"

	PedalLeft   InputKey = "PedalLeft"
	PedalMiddle InputKey = "PedalMiddle"
	PedalRight  InputKey = "PedalRight"
)

// KeySwitches is the ordered list of the 12 KeyPad switch slots; index i
// corresponds to synthetic-event slot i.
var KeySwitches = [12]InputKey{
	KeySwitch1, KeySwitch2, KeySwitch3, KeySwitch4,
	KeySwitch5, KeySwitch6, KeySwitch7, KeySwitch8,
	KeySwitch9, KeySwitch10, KeySwitch11, KeySwitch12,
}

// KnobKeys is the ordered list of the 6 KnobPad slots.
var KnobKeys = [6]InputKey{
	KnobLeftSwitch, KnobLeftClockwise, KnobLeftCounterClockwise,
	KnobRightSwitch, KnobRightClockwise, KnobRightCounterClockwise,
}

// PedalKeys is the ordered list of the 3 PedalPad slots.
var PedalKeys = [3]InputKey{PedalLeft, PedalMiddle, PedalRight}

// KeySet is an unordered collection of currently-down InputKeys, the type
// the dispatcher diffs between successive snapshots.
type KeySet map[InputKey]struct{}

// NewKeySet builds a KeySet from a slice of keys.
func NewKeySet(keys ...InputKey) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Difference returns the keys present in s but not in other, matching the
// Rust original's HashSet::difference used by the action dispatcher (§4.6).
func (s KeySet) Difference(other KeySet) KeySet {
	out := make(KeySet)
	for k := range s {
		if _, ok := other[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// SlotKeys returns the ordered InputKeys for a device type; index i is the
// InputKey bound to synthetic-event slot i. Bridges config's slot-indexed
// key_map with the InputKey sets the dispatcher diffs.
func SlotKeys(dt devicetype.DeviceType) []InputKey {
	switch dt {
	case devicetype.KeyPad:
		return KeySwitches[:]
	case devicetype.KnobPad:
		return KnobKeys[:]
	case devicetype.PedalPad:
		return PedalKeys[:]
	default:
		return nil
	}
}

// KeyForSlot returns the InputKey bound to slot on a device of type dt.
func KeyForSlot(dt devicetype.DeviceType, slot int) (InputKey, bool) {
	keys := SlotKeys(dt)
	if slot < 0 || slot >= len(keys) {
		return "", false
	}
	return keys[slot], true
}

// SlotForKey is the inverse of KeyForSlot.
func SlotForKey(dt devicetype.DeviceType, key InputKey) (int, bool) {
	for i, k := range SlotKeys(dt) {
		if k == key {
			return i, true
		}
	}
	return 0, false
}
