package payload

import (
	"fmt"

	"github.com/friendteaminc/jukebox/devicetype"
)

// Snapshot is a device-type-dependent input snapshot: the set of controls
// currently down on one device, as read by GetInputKeys (§4.4) and diffed
// by the action dispatcher (§4.6).
type Snapshot interface {
	// Tag is the 1-byte device-type tag this snapshot is framed with.
	Tag() byte
	// Keys returns the set of currently-down controls.
	Keys() KeySet
	// Encode returns the tag byte followed by the packed snapshot bytes.
	Encode() []byte
}

// KeyPadSnapshot holds 16 boolean switch positions, packed big-endian into
// 16 bits (§3). Only the first 12 are wired to an InputKey; the remaining 4
// are reserved for a larger key-pad variant and are always zero today.
type KeyPadSnapshot struct {
	Switches [16]bool
}

// DecodeKeyPadSnapshot unpacks 2 big-endian bytes into a KeyPadSnapshot.
// Switches[i] is keyN where N = i+1, and keyN packs into bit N-1 (LSB
// first: key1 is bit 0, key16 is bit 15), per §8 scenario 2's worked
// example (wire bytes \x00\x04 == key3 pressed) and
// original_source/util/src/peripheral.rs:170,189.
func DecodeKeyPadSnapshot(b []byte) (KeyPadSnapshot, error) {
	var s KeyPadSnapshot
	if len(b) != 2 {
		return s, fmt.Errorf("payload: keypad snapshot must be 2 bytes, got %d", len(b))
	}
	bits := uint16(b[0])<<8 | uint16(b[1])
	for i := 0; i < 16; i++ {
		s.Switches[i] = bits&(1<<i) != 0
	}
	return s, nil
}

func (s KeyPadSnapshot) Tag() byte { return devicetype.KeyPad.Tag() }

func (s KeyPadSnapshot) Encode() []byte {
	var bits uint16
	for i, down := range s.Switches {
		if down {
			bits |= 1 << i
		}
	}
	return []byte{s.Tag(), byte(bits >> 8), byte(bits)}
}

func (s KeyPadSnapshot) Keys() KeySet {
	out := make(KeySet)
	for i := 0; i < len(KeySwitches); i++ {
		if s.Switches[i] {
			out[KeySwitches[i]] = struct{}{}
		}
	}
	return out
}

// KnobRotation is the direction a knob was turned since the last poll.
type KnobRotation byte

const (
	RotationNone KnobRotation = iota
	RotationClockwise
	RotationCounterClockwise
)

// KnobPadSnapshot holds two (switch, rotation) pairs, packed into one byte:
// bit 7 = left switch, bits 6-5 = left rotation, bit 4 = right switch,
// bits 3-2 = right rotation, bits 1-0 unused.
type KnobPadSnapshot struct {
	LeftSwitch    bool
	LeftRotation  KnobRotation
	RightSwitch   bool
	RightRotation KnobRotation
}

// DecodeKnobPadSnapshot unpacks 1 byte into a KnobPadSnapshot.
func DecodeKnobPadSnapshot(b []byte) (KnobPadSnapshot, error) {
	var s KnobPadSnapshot
	if len(b) != 1 {
		return s, fmt.Errorf("payload: knobpad snapshot must be 1 byte, got %d", len(b))
	}
	v := b[0]
	s.LeftSwitch = v&0x80 != 0
	s.LeftRotation = KnobRotation((v >> 5) & 0x03)
	s.RightSwitch = v&0x10 != 0
	s.RightRotation = KnobRotation((v >> 2) & 0x03)
	return s, nil
}

func (s KnobPadSnapshot) Tag() byte { return devicetype.KnobPad.Tag() }

func (s KnobPadSnapshot) Encode() []byte {
	var v byte
	if s.LeftSwitch {
		v |= 0x80
	}
	v |= byte(s.LeftRotation&0x03) << 5
	if s.RightSwitch {
		v |= 0x10
	}
	v |= byte(s.RightRotation&0x03) << 2
	return []byte{s.Tag(), v}
}

func (s KnobPadSnapshot) Keys() KeySet {
	out := make(KeySet)
	if s.LeftSwitch {
		out[KnobLeftSwitch] = struct{}{}
	}
	switch s.LeftRotation {
	case RotationClockwise:
		out[KnobLeftClockwise] = struct{}{}
	case RotationCounterClockwise:
		out[KnobLeftCounterClockwise] = struct{}{}
	}
	if s.RightSwitch {
		out[KnobRightSwitch] = struct{}{}
	}
	switch s.RightRotation {
	case RotationClockwise:
		out[KnobRightClockwise] = struct{}{}
	case RotationCounterClockwise:
		out[KnobRightCounterClockwise] = struct{}{}
	}
	return out
}

// PedalPadSnapshot holds three boolean pedal positions packed into one
// byte: bit 0 = left, bit 1 = middle, bit 2 = right.
type PedalPadSnapshot struct {
	Left, Middle, Right bool
}

// DecodePedalPadSnapshot unpacks 1 byte into a PedalPadSnapshot.
func DecodePedalPadSnapshot(b []byte) (PedalPadSnapshot, error) {
	var s PedalPadSnapshot
	if len(b) != 1 {
		return s, fmt.Errorf("payload: pedalpad snapshot must be 1 byte, got %d", len(b))
	}
	v := b[0]
	s.Left = v&0x01 != 0
	s.Middle = v&0x02 != 0
	s.Right = v&0x04 != 0
	return s, nil
}

func (s PedalPadSnapshot) Tag() byte { return devicetype.PedalPad.Tag() }

func (s PedalPadSnapshot) Encode() []byte {
	var v byte
	if s.Left {
		v |= 0x01
	}
	if s.Middle {
		v |= 0x02
	}
	if s.Right {
		v |= 0x04
	}
	return []byte{s.Tag(), v}
}

func (s PedalPadSnapshot) Keys() KeySet {
	out := make(KeySet)
	if s.Left {
		out[PedalLeft] = struct{}{}
	}
	if s.Middle {
		out[PedalMiddle] = struct{}{}
	}
	if s.Right {
		out[PedalRight] = struct{}{}
	}
	return out
}

// DecodeSnapshot reads the 1-byte device-type tag and dispatches to the
// matching fixed-length decoder. Any byte sequence not matching the
// declared tag's fixed length is rejected (§3 invariant).
func DecodeSnapshot(b []byte) (Snapshot, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("payload: empty snapshot")
	}
	tag, rest := b[0], b[1:]
	switch devicetype.ParseDeviceType(tag) {
	case devicetype.KeyPad:
		return DecodeKeyPadSnapshot(rest)
	case devicetype.KnobPad:
		return DecodeKnobPadSnapshot(rest)
	case devicetype.PedalPad:
		return DecodePedalPadSnapshot(rest)
	default:
		return nil, fmt.Errorf("payload: unrecognized snapshot tag %q", tag)
	}
}
