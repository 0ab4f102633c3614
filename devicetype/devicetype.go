// Package devicetype holds the small, fixed facts every other package
// needs about a JukeBox device family: its wire tag, its USB VID/PID, and
// its default synthetic-key mapping.
package devicetype

// DeviceType identifies a JukeBox peripheral family. It is transmitted on
// the wire as a single ASCII tag byte.
type DeviceType byte

const (
	KeyPad   DeviceType = 'K'
	KnobPad  DeviceType = 'O'
	PedalPad DeviceType = 'P'
	Unknown  DeviceType = '?'
)

// ParseDeviceType maps a wire tag byte to a DeviceType, defaulting to
// Unknown for anything not recognized rather than failing: an unrecognized
// device type is still addressable, just with an empty default key map.
func ParseDeviceType(tag byte) DeviceType {
	switch DeviceType(tag) {
	case KeyPad, KnobPad, PedalPad:
		return DeviceType(tag)
	default:
		return Unknown
	}
}

func (d DeviceType) String() string {
	switch d {
	case KeyPad:
		return "KeyPad"
	case KnobPad:
		return "KnobPad"
	case PedalPad:
		return "PedalPad"
	default:
		return "Unknown"
	}
}

// Tag returns the single wire tag byte for d.
func (d DeviceType) Tag() byte { return byte(d) }

// USB vendor/product IDs, per §6.
const (
	VendorID uint16 = 0x1209

	ProductUnknown  uint16 = 0xF209
	ProductKeyPad   uint16 = 0xF20A
	ProductKnobPad  uint16 = 0xF20B
	ProductPedalPad uint16 = 0xF20C
)

// ProductID returns the USB product ID advertised by a device of type d.
func (d DeviceType) ProductID() uint16 {
	switch d {
	case KeyPad:
		return ProductKeyPad
	case KnobPad:
		return ProductKnobPad
	case PedalPad:
		return ProductPedalPad
	default:
		return ProductUnknown
	}
}

// ProductIDs is the set of product IDs the host supervisor scans for.
var ProductIDs = []uint16{ProductUnknown, ProductKeyPad, ProductKnobPad, ProductPedalPad}

// DeviceTypeFromProductID is the inverse of ProductID, used when the
// supervisor identifies a candidate port by its USB descriptor before a
// Greeting has confirmed the type over the wire.
func DeviceTypeFromProductID(pid uint16) DeviceType {
	switch pid {
	case ProductKeyPad:
		return KeyPad
	case ProductKnobPad:
		return KnobPad
	case ProductPedalPad:
		return PedalPad
	default:
		return Unknown
	}
}

// InputSlotCount is the number of addressable input slots (and therefore
// synthetic-event slots) a device of type d exposes.
func (d DeviceType) InputSlotCount() int {
	switch d {
	case KeyPad:
		return 12
	case KnobPad:
		return 6
	case PedalPad:
		return 3
	default:
		return 0
	}
}

// HasScreen reports whether this device family carries a display. Only
// KeyPad carries the ST7789 panel; system-stats sends are suppressed for
// device types that return false here (Open Question (b)).
func (d DeviceType) HasScreen() bool {
	return d == KeyPad
}

// Manufacturer is the fixed USB manufacturer string for the whole family.
const Manufacturer = "Friend Team Inc."

// Product returns the device-type-specific USB product string.
func (d DeviceType) Product() string {
	switch d {
	case KeyPad:
		return "JukeBox KeyPad"
	case KnobPad:
		return "JukeBox KnobPad"
	case PedalPad:
		return "JukeBox PedalPad"
	default:
		return "JukeBox"
	}
}

// BcdDevice is the fixed device release reported in the USB descriptor.
const BcdDevice uint16 = 0x0500

// MaxPacketSize is the endpoint max packet size for all JukeBox endpoints.
const MaxPacketSize = 64
