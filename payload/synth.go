package payload

import "fmt"

// KeyboardEvent is a synthetic keyboard press bound to one input slot: up
// to 6 simultaneous USB-HID usage codes. Unused slots are 0,
// matching the boot-keyboard 6-key-rollover report shape used elsewhere in
// the HID ecosystem (§3).
type KeyboardEvent struct {
	Keys [6]byte
}

// Encode returns the fixed 6-byte wire representation.
func (k KeyboardEvent) Encode() []byte {
	b := make([]byte, 6)
	copy(b, k.Keys[:])
	return b
}

// DecodeKeyboardEvent decodes the fixed 6-byte wire representation.
func DecodeKeyboardEvent(b []byte) (KeyboardEvent, error) {
	var k KeyboardEvent
	if len(b) != 6 {
		return k, fmt.Errorf("payload: keyboard event must be 6 bytes, got %d", len(b))
	}
	copy(k.Keys[:], b)
	return k, nil
}

// MouseEvent is a synthetic mouse action bound to one input slot: a button
// mask plus relative motion and scroll, each a signed byte (§3).
type MouseEvent struct {
	Buttons byte
	DX      int8
	DY      int8
	ScrollY int8
	ScrollX int8
}

// Encode returns the fixed 5-byte wire representation.
func (m MouseEvent) Encode() []byte {
	return []byte{m.Buttons, byte(m.DX), byte(m.DY), byte(m.ScrollY), byte(m.ScrollX)}
}

// DecodeMouseEvent decodes the fixed 5-byte wire representation.
func DecodeMouseEvent(b []byte) (MouseEvent, error) {
	var m MouseEvent
	if len(b) != 5 {
		return m, fmt.Errorf("payload: mouse event must be 5 bytes, got %d", len(b))
	}
	m.Buttons = b[0]
	m.DX = int8(b[1])
	m.DY = int8(b[2])
	m.ScrollY = int8(b[3])
	m.ScrollX = int8(b[4])
	return m, nil
}

// DefaultKeyboardEvent builds the KeyPad's default per-slot binding: the
// HID usage code for F13..F24, matching
// ActionMap::default_action_config in the original implementation.
func DefaultKeyboardEvent(usageCode byte) KeyboardEvent {
	return KeyboardEvent{Keys: [6]byte{usageCode, 0, 0, 0, 0, 0}}
}

// F13ThroughF24 is the HID usage code table for F13..F24, in slot order,
// used as the KeyPad's 12 default per-slot keyboard bindings.
var F13ThroughF24 = [12]byte{
	0x68, 0x69, 0x6A, 0x6B, 0x6C, 0x6D, 0x6E, 0x6F, 0x70, 0x71, 0x72, 0x73,
}
