package payload

import "fmt"

// RGBProfileSize is the fixed wire size of an RGBProfile record (§3).
const RGBProfileSize = 40

// RGBVariant tags which of the seven RGB profile shapes a record carries.
type RGBVariant byte

const (
	RGBOff RGBVariant = iota
	RGBStaticSolid
	RGBStaticPerKey
	RGBWave
	RGBBreathe
	RGBRainbowSolid
	RGBRainbowWave
)

// Color is a 3-byte (R, G, B) tuple, as carried by RGB profile variants.
type Color struct{ R, G, B byte }

// RGBProfile is the tagged union of lighting behaviors a device's RGB
// driver can run. Exactly one of the per-variant fields below is
// meaningful, selected by Variant; all others are left at their zero
// value. Brightness is 0..100 for every variant including Off.
type RGBProfile struct {
	Variant    RGBVariant
	Brightness byte

	// StaticSolid
	Color Color

	// StaticPerKey
	Colors12 [12]Color

	// Wave, Breathe
	SpeedX, SpeedY       int8 // Wave and RainbowWave
	HoldTime, TransTime  byte // Breathe only
	ColorCount           byte
	Colors4              [4]Color

	// RainbowSolid, RainbowWave
	Speed      int8
	Saturation byte
	Value      byte
}

// Encode renders the profile into the fixed 40-byte record described in §3:
// byte 0 is the variant tag, byte 1 is brightness, the rest is
// variant-specific and zero-padded.
func (p RGBProfile) Encode() []byte {
	b := make([]byte, RGBProfileSize)
	b[0] = byte(p.Variant)
	b[1] = p.Brightness

	switch p.Variant {
	case RGBOff:
		// no further fields
	case RGBStaticSolid:
		b[2], b[3], b[4] = p.Color.R, p.Color.G, p.Color.B
	case RGBStaticPerKey:
		for i, c := range p.Colors12 {
			off := 2 + i*3
			b[off], b[off+1], b[off+2] = c.R, c.G, c.B
		}
	case RGBWave:
		b[2] = byte(p.SpeedX)
		b[3] = byte(p.SpeedY)
		b[4] = p.ColorCount
		for i, c := range p.Colors4 {
			off := 5 + i*3
			b[off], b[off+1], b[off+2] = c.R, c.G, c.B
		}
	case RGBBreathe:
		b[2] = p.HoldTime
		b[3] = p.TransTime
		b[4] = p.ColorCount
		for i, c := range p.Colors4 {
			off := 5 + i*3
			b[off], b[off+1], b[off+2] = c.R, c.G, c.B
		}
	case RGBRainbowSolid:
		b[2] = byte(p.Speed)
		b[3] = p.Saturation
		b[4] = p.Value
	case RGBRainbowWave:
		b[2] = byte(p.Speed)
		b[3] = byte(p.SpeedX)
		b[4] = byte(p.SpeedY)
		b[5] = p.Saturation
		b[6] = p.Value
	}
	return b
}

// DecodeRGBProfile parses a 40-byte record. Trailing zero bytes beyond what
// a variant uses are tolerated and ignored, per the §3 invariant that the
// record is fixed-size regardless of variant.
func DecodeRGBProfile(b []byte) (RGBProfile, error) {
	var p RGBProfile
	if len(b) != RGBProfileSize {
		return p, fmt.Errorf("payload: rgb profile must be %d bytes, got %d", RGBProfileSize, len(b))
	}
	p.Variant = RGBVariant(b[0])
	p.Brightness = b[1]

	switch p.Variant {
	case RGBOff:
	case RGBStaticSolid:
		p.Color = Color{b[2], b[3], b[4]}
	case RGBStaticPerKey:
		for i := range p.Colors12 {
			off := 2 + i*3
			p.Colors12[i] = Color{b[off], b[off+1], b[off+2]}
		}
	case RGBWave:
		p.SpeedX = int8(b[2])
		p.SpeedY = int8(b[3])
		p.ColorCount = b[4]
		for i := range p.Colors4 {
			off := 5 + i*3
			p.Colors4[i] = Color{b[off], b[off+1], b[off+2]}
		}
	case RGBBreathe:
		p.HoldTime = b[2]
		p.TransTime = b[3]
		p.ColorCount = b[4]
		for i := range p.Colors4 {
			off := 5 + i*3
			p.Colors4[i] = Color{b[off], b[off+1], b[off+2]}
		}
	case RGBRainbowSolid:
		p.Speed = int8(b[2])
		p.Saturation = b[3]
		p.Value = b[4]
	case RGBRainbowWave:
		p.Speed = int8(b[2])
		p.SpeedX = int8(b[3])
		p.SpeedY = int8(b[4])
		p.Saturation = b[5]
		p.Value = b[6]
	default:
		return p, fmt.Errorf("payload: unrecognized rgb profile variant %d", p.Variant)
	}
	return p, nil
}

// DefaultRGBProfile is restored by the device whenever it reverts to
// built-in defaults on disconnect (§4.4, §4.7): a dim static solid white.
func DefaultRGBProfile() RGBProfile {
	return RGBProfile{
		Variant:    RGBStaticSolid,
		Brightness: 40,
		Color:      Color{R: 255, G: 255, B: 255},
	}
}
