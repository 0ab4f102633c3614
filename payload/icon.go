package payload

import "fmt"

// IconSize is the fixed wire size of an icon: 32x32 pixels at 16 bits
// each, little-endian RGB565, row-major, origin top-left (§3, §6).
const IconSize = 32 * 32 * 2

// iconCacheHeaderSkip is the byte offset a cached icon image must be
// sliced from before the trailing IconSize bytes are the raw bitmap. It
// matches the 0x7A-byte header the original implementation strips from its
// cached BMP-derived byte arrays before transmission.
const iconCacheHeaderSkip = 0x7A

// Icon is a fixed-size 32x32 RGB565 bitmap, addressed by slot on the wire.
type Icon struct {
	Pixels [IconSize]byte
}

// Encode returns the raw 2048-byte wire representation.
func (i Icon) Encode() []byte {
	b := make([]byte, IconSize)
	copy(b, i.Pixels[:])
	return b
}

// DecodeIcon parses the fixed 2048-byte wire representation.
func DecodeIcon(b []byte) (Icon, error) {
	var i Icon
	if len(b) != IconSize {
		return i, fmt.Errorf("payload: icon must be %d bytes, got %d", IconSize, len(b))
	}
	copy(i.Pixels[:], b)
	return i, nil
}

// IconFromCachedBytes builds an Icon from a cached image byte slice. If the
// slice is longer than IconSize it is assumed to carry a header (e.g. a BMP
// file read whole) and the first iconCacheHeaderSkip bytes are dropped
// before the remaining bytes are required to be exactly IconSize long.
func IconFromCachedBytes(cached []byte) (Icon, error) {
	b := cached
	if len(b) > IconSize {
		if len(b) < iconCacheHeaderSkip {
			return Icon{}, fmt.Errorf("payload: cached icon too short to carry a header: %d bytes", len(b))
		}
		b = b[iconCacheHeaderSkip:]
	}
	return DecodeIcon(b)
}

// DefaultIcon is restored on disconnect: a flat mid-gray square.
func DefaultIcon() Icon {
	var i Icon
	gray := RGB565(128, 128, 128)
	lo, hi := byte(gray), byte(gray>>8)
	for p := 0; p < IconSize; p += 2 {
		i.Pixels[p] = lo
		i.Pixels[p+1] = hi
	}
	return i
}
