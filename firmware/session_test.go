package firmware

import (
	"testing"
	"time"

	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/payload"
	"github.com/friendteaminc/jukebox/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() (*Session, *bool) {
	booted := false
	s := NewSession("A1B2C3D4E5F60708", devicetype.KeyPad, "1.2.3", func() { booted = true })
	return s, &booted
}

func TestColdConnectScenario(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()

	resp := s.HandleFrame([]byte{byte(protocol.CmdGreeting)}, now)
	require.True(t, s.Connected())
	require.True(t, len(resp) > 4)
	assert.Equal(t, byte(protocol.RspLinkHeader), resp[0])
	assert.Equal(t, byte(protocol.RspLinkDelim), resp[1])
	assert.Equal(t, byte('K'), resp[2])
	assert.Equal(t, byte(protocol.RspLinkDelim), resp[3])

	rest := string(resp[4:])
	assert.Contains(t, rest, "1.2.3")
	assert.Contains(t, rest, "A1B2C3D4E5F60708")
}

func TestOnlyGreetingOrUpdateLegalWhileDisconnected(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()
	resp := s.HandleFrame([]byte{byte(protocol.CmdGetInputKeys)}, now)
	assert.Equal(t, []byte{byte(protocol.RspUnknown)}, resp)
	assert.False(t, s.Connected())
}

func TestUpdateWhileDisconnectedTriggersBootloaderAndEndsSession(t *testing.T) {
	s, booted := newTestSession()
	resp := s.HandleFrame([]byte{byte(protocol.CmdUpdate)}, time.Now())
	assert.Equal(t, []byte{byte(protocol.RspDisconnected)}, resp)
	assert.True(t, *booted)
	assert.False(t, s.Connected())
}

func TestKeypressRoundTripScenario(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()
	s.HandleFrame([]byte{byte(protocol.CmdGreeting)}, now)

	snap := payload.KeyPadSnapshot{}
	snap.Switches[2] = true // key 3
	s.Mailboxes.Inputs.Set(snap)

	resp := s.HandleFrame([]byte{byte(protocol.CmdGetInputKeys)}, now)
	require.Equal(t, byte(protocol.RspInputHeader), resp[0])
	decoded, err := payload.DecodeSnapshot(resp[1:])
	require.NoError(t, err)
	assert.Contains(t, decoded.Keys(), payload.KeySwitch3)
}

func TestUnknownCommandDoesNotRefreshKeepAlive(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()
	s.HandleFrame([]byte{byte(protocol.CmdGreeting)}, now)
	s.refreshKeepAlive(now) // baseline

	laterButStillAlive := now.Add(500 * time.Millisecond)
	resp := s.HandleFrame([]byte{0x7F}, laterButStillAlive)
	assert.Equal(t, []byte{byte(protocol.RspUnknown)}, resp)
	assert.True(t, s.Connected())

	// Keep-alive was NOT refreshed by the Unknown reply, so checking past
	// the original 1s deadline (measured from `now`, not from the Unknown
	// reply) must disconnect.
	s.CheckKeepAlive(now.Add(1100 * time.Millisecond))
	assert.False(t, s.Connected())
}

func TestKeepAliveExpiryResetsToDefaults(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()
	s.HandleFrame([]byte{byte(protocol.CmdGreeting)}, now)
	s.Mailboxes.RGB.Set(payload.RGBProfile{Variant: payload.RGBOff})

	s.CheckKeepAlive(now.Add(2 * time.Second))
	assert.False(t, s.Connected())
	assert.False(t, s.LastDisconnectWasClean())

	rgb, _ := s.Mailboxes.RGB.Peek()
	assert.Equal(t, payload.DefaultRGBProfile(), rgb)
}

func TestDisconnectCommandIsClean(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()
	s.HandleFrame([]byte{byte(protocol.CmdGreeting)}, now)
	resp := s.HandleFrame([]byte{byte(protocol.CmdDisconnect)}, now)
	assert.Equal(t, []byte{byte(protocol.RspDisconnected)}, resp)
	assert.False(t, s.Connected())
	assert.True(t, s.LastDisconnectWasClean())
}

func TestNegativeAckAbortsSessionWithNoReply(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()
	s.HandleFrame([]byte{byte(protocol.CmdGreeting)}, now)
	resp := s.HandleFrame([]byte{byte(protocol.CmdNegativeAck)}, now)
	assert.Nil(t, resp)
	assert.False(t, s.Connected())
	assert.False(t, s.LastDisconnectWasClean())
}

func TestSetRgbModeAck(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()
	s.HandleFrame([]byte{byte(protocol.CmdGreeting)}, now)

	profile := payload.RGBProfile{Variant: payload.RGBStaticSolid, Brightness: 50, Color: payload.Color{R: 1, G: 2, B: 3}}
	resp := s.HandleFrame(append([]byte{byte(protocol.CmdSetRgbMode)}, profile.Encode()...), now)
	assert.Equal(t, []byte{byte(protocol.RspAck)}, resp)

	got, _ := s.Mailboxes.RGB.Peek()
	assert.Equal(t, profile, got)
}

func TestIdentifyArmsBlinkForThreeSeconds(t *testing.T) {
	s, _ := newTestSession()
	now := time.Now()
	s.HandleFrame([]byte{byte(protocol.CmdGreeting)}, now)
	s.HandleFrame([]byte{byte(protocol.CmdIdentify)}, now)
	assert.True(t, s.Identifying(now.Add(2*time.Second)))
	assert.False(t, s.Identifying(now.Add(4*time.Second)))
}
