package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPadSnapshotRoundTrip(t *testing.T) {
	s := KeyPadSnapshot{}
	s.Switches[2] = true
	s.Switches[15] = true
	decoded, err := DecodeSnapshot(s.Encode())
	require.NoError(t, err)
	assert.Equal(t, s.Keys(), decoded.Keys())
	assert.Equal(t, byte('K'), decoded.Tag())
}

// TestKeyPadSnapshotDecodesSpecScenario2Literal pins the wire bytes from
// §8 scenario 2 exactly: \x00\x04 means key3 pressed, nothing else.
func TestKeyPadSnapshotDecodesSpecScenario2Literal(t *testing.T) {
	s, err := DecodeKeyPadSnapshot([]byte{0x00, 0x04})
	require.NoError(t, err)
	assert.Equal(t, NewKeySet(KeySwitch3), s.Keys())
}

func TestKnobPadSnapshotRoundTrip(t *testing.T) {
	s := KnobPadSnapshot{LeftSwitch: true, LeftRotation: RotationClockwise, RightRotation: RotationCounterClockwise}
	decoded, err := DecodeSnapshot(s.Encode())
	require.NoError(t, err)
	assert.Equal(t, s.Keys(), decoded.Keys())
}

func TestPedalPadSnapshotRoundTrip(t *testing.T) {
	s := PedalPadSnapshot{Middle: true}
	decoded, err := DecodeSnapshot(s.Encode())
	require.NoError(t, err)
	assert.Equal(t, s.Keys(), decoded.Keys())
}

func TestDecodeSnapshotRejectsWrongLength(t *testing.T) {
	_, err := DecodeSnapshot([]byte{'K', 0x00})
	assert.Error(t, err)
}

func TestKeyboardEventRoundTrip(t *testing.T) {
	k := KeyboardEvent{Keys: [6]byte{0x04, 0x05, 0, 0, 0, 0}}
	decoded, err := DecodeKeyboardEvent(k.Encode())
	require.NoError(t, err)
	assert.Equal(t, k, decoded)
}

func TestMouseEventRoundTrip(t *testing.T) {
	m := MouseEvent{Buttons: 0x01, DX: -5, DY: 3, ScrollY: -1, ScrollX: 0}
	decoded, err := DecodeMouseEvent(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestRGBProfileRoundTripAllVariants(t *testing.T) {
	profiles := []RGBProfile{
		{Variant: RGBOff, Brightness: 0},
		{Variant: RGBStaticSolid, Brightness: 50, Color: Color{1, 2, 3}},
		{Variant: RGBStaticPerKey, Brightness: 80, Colors12: [12]Color{{1, 1, 1}, {2, 2, 2}}},
		{Variant: RGBWave, Brightness: 60, SpeedX: -10, SpeedY: 10, ColorCount: 2, Colors4: [4]Color{{9, 9, 9}}},
		{Variant: RGBBreathe, Brightness: 60, HoldTime: 5, TransTime: 7, ColorCount: 1, Colors4: [4]Color{{3, 4, 5}}},
		{Variant: RGBRainbowSolid, Brightness: 70, Speed: -3, Saturation: 200, Value: 255},
		{Variant: RGBRainbowWave, Brightness: 70, Speed: -3, SpeedX: 4, SpeedY: -4, Saturation: 200, Value: 255},
	}
	for _, p := range profiles {
		enc := p.Encode()
		assert.Len(t, enc, RGBProfileSize)
		decoded, err := DecodeRGBProfile(enc)
		require.NoError(t, err)
		assert.Equal(t, p, decoded)
	}
}

func TestRGBProfileTrailingZeroesTolerated(t *testing.T) {
	enc := RGBProfile{Variant: RGBOff, Brightness: 0}.Encode()
	enc[39] = 0
	_, err := DecodeRGBProfile(enc)
	require.NoError(t, err)
}

func TestScreenProfileRoundTrip(t *testing.T) {
	p := ScreenProfile{Variant: ScreenDisplayStats, Brightness: 90, Primary: RGB565(255, 0, 0), Secondary: RGB565(0, 255, 0)}
	enc := p.Encode()
	assert.Len(t, enc, ScreenProfileSize)
	decoded, err := DecodeScreenProfile(enc)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestIconRoundTrip(t *testing.T) {
	i := DefaultIcon()
	decoded, err := DecodeIcon(i.Encode())
	require.NoError(t, err)
	assert.Equal(t, i, decoded)
}

func TestIconFromCachedBytesSkipsHeader(t *testing.T) {
	header := make([]byte, iconCacheHeaderSkip)
	body := DefaultIcon().Encode()
	cached := append(header, body...)
	icon, err := IconFromCachedBytes(cached)
	require.NoError(t, err)
	assert.Equal(t, body, icon.Encode())
}

func TestIconFromCachedBytesNoHeaderNeeded(t *testing.T) {
	body := DefaultIcon().Encode()
	icon, err := IconFromCachedBytes(body)
	require.NoError(t, err)
	assert.Equal(t, body, icon.Encode())
}

func TestProfileNameRoundTrip(t *testing.T) {
	enc, err := EncodeProfileName("Gaming")
	require.NoError(t, err)
	assert.Len(t, enc, ProfileNameSize)
	name, err := DecodeProfileName(enc)
	require.NoError(t, err)
	assert.Equal(t, "Gaming", name)
}

func TestProfileNameRejectsOverlong(t *testing.T) {
	long := make([]byte, ProfileNameCapacity+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := EncodeProfileName(string(long))
	assert.Error(t, err)
}

func TestSystemStatsRoundTrip(t *testing.T) {
	s := SystemStats{
		CPUName: "Ryzen 7", CPUUsage: "12.3", CPUTemp: "45",
		MemUsed: "8192", MemTotal: "16384", MemUnit: "MB",
		GPUName: "RTX", GPUUsage: "5.0", GPUTemp: "40",
		VRAMUsed: "1024", VRAMTotal: "8192", VRAMUnit: "MB",
	}
	enc, err := s.Encode()
	require.NoError(t, err)
	assert.Len(t, enc, SystemStatsSize())
	decoded, err := DecodeSystemStats(enc)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}
