// Package hostsession is the host-side mirror of the firmware session
// state machine (§4.3): typed command methods built over protocol.Transport,
// grounded on the same "low-level Transport, high-level typed Client"
// split used elsewhere in this codebase, and on the send/expect helpers in
// the original implementation's desktop serial module.
package hostsession

import (
	"context"
	"fmt"
	"time"

	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/payload"
	"github.com/friendteaminc/jukebox/protocol"
)

// DeviceInfo is what a successful Greeting reveals about the far end.
type DeviceInfo struct {
	DeviceType      devicetype.DeviceType
	FirmwareVersion string
	UID             string
}

// Session is the host-side view of one device connection: a Transport plus
// the Disconnected/Connected bookkeeping §4.3 assigns to "both sides,
// mirror-symmetric".
type Session struct {
	transport *protocol.Transport
	connected bool
}

// New wraps an already-open Transport (typically one built over an
// *os.File for a serial port, or a net.Conn in tests).
func New(t *protocol.Transport) *Session {
	return &Session{transport: t}
}

// Connected reports whether Greet has succeeded and no terminal response
// has been seen since.
func (s *Session) Connected() bool { return s.connected }

func (s *Session) sendCommand(cmd protocol.Command, payload []byte) error {
	return s.transport.Send(append([]byte{byte(cmd)}, payload...), true)
}

// expect reads one response frame and requires its tag to be want.
func (s *Session) expect(want protocol.Response) ([]byte, error) {
	raw, err := s.transport.Recv(false)
	if err != nil {
		if protocol.IsDisconnect(err) {
			s.connected = false
			return nil, protocol.Wrap(protocol.KindTransport, "hostsession.expect", err)
		}
		return nil, protocol.Wrap(protocol.KindFraming, "hostsession.expect", err)
	}
	if len(raw) == 0 || protocol.Response(raw[0]) != want {
		if len(raw) > 0 && protocol.Response(raw[0]) == protocol.RspUnknown {
			return nil, protocol.Wrap(protocol.KindProtocol, "hostsession.expect", fmt.Errorf("device replied Unknown"))
		}
		return nil, protocol.Wrap(protocol.KindProtocol, "hostsession.expect", fmt.Errorf("unexpected response tag"))
	}
	return raw[1:], nil
}

// sendExpectAck sends cmd+body and requires an Ack in reply — the shape
// every Set* command shares (§4.4).
func (s *Session) sendExpectAck(cmd protocol.Command, body []byte) error {
	if err := s.sendCommand(cmd, body); err != nil {
		return protocol.Wrap(protocol.KindTransport, "hostsession.sendExpectAck", err)
	}
	_, err := s.expect(protocol.RspAck)
	return err
}

// Greet sends the Greeting command and parses the device's Link reply,
// promoting this session to Connected on success (§4.3).
func (s *Session) Greet(ctx context.Context) (DeviceInfo, error) {
	var info DeviceInfo
	if err := s.sendCommand(protocol.CmdGreeting, nil); err != nil {
		return info, protocol.Wrap(protocol.KindTransport, "hostsession.Greet", err)
	}
	raw, err := s.transport.Recv(false)
	if err != nil {
		return info, protocol.Wrap(protocol.KindTransport, "hostsession.Greet", err)
	}
	info, err = parseLinkFrame(raw)
	if err != nil {
		return info, protocol.Wrap(protocol.KindProtocol, "hostsession.Greet", err)
	}
	s.connected = true
	return info, nil
}

// parseLinkFrame parses LinkHeader, LinkDelimiter, device_type_tag,
// LinkDelimiter, firmware_version, LinkDelimiter, device_uid, LinkDelimiter.
func parseLinkFrame(raw []byte) (DeviceInfo, error) {
	var info DeviceInfo
	delim := byte(protocol.RspLinkDelim)
	if len(raw) < 4 || raw[0] != byte(protocol.RspLinkHeader) || raw[1] != delim {
		return info, fmt.Errorf("hostsession: malformed link frame header")
	}
	info.DeviceType = devicetype.ParseDeviceType(raw[2])
	rest := raw[3:]
	if len(rest) == 0 || rest[0] != delim {
		return info, fmt.Errorf("hostsession: malformed link frame after device type")
	}
	rest = rest[1:]

	verEnd := indexByte(rest, delim)
	if verEnd < 0 {
		return info, fmt.Errorf("hostsession: missing firmware version delimiter")
	}
	info.FirmwareVersion = string(rest[:verEnd])
	rest = rest[verEnd+1:]

	uidEnd := indexByte(rest, delim)
	if uidEnd < 0 {
		return info, fmt.Errorf("hostsession: missing uid delimiter")
	}
	info.UID = string(rest[:uidEnd])
	return info, nil
}

func indexByte(b []byte, target byte) int {
	for i, c := range b {
		if c == target {
			return i
		}
	}
	return -1
}

// GetInputKeys polls the current input snapshot (§4.4).
func (s *Session) GetInputKeys() (payload.Snapshot, error) {
	if err := s.sendCommand(protocol.CmdGetInputKeys, nil); err != nil {
		return nil, protocol.Wrap(protocol.KindTransport, "hostsession.GetInputKeys", err)
	}
	raw, err := s.expect(protocol.RspInputHeader)
	if err != nil {
		return nil, err
	}
	snap, err := payload.DecodeSnapshot(raw)
	if err != nil {
		return nil, protocol.Wrap(protocol.KindFraming, "hostsession.GetInputKeys", err)
	}
	return snap, nil
}

// SetKeyboardInput replaces one slot's synthetic keyboard event.
func (s *Session) SetKeyboardInput(slot byte, ev payload.KeyboardEvent) error {
	return s.sendExpectAck(protocol.CmdSetKeyboardInput, append([]byte{slot}, ev.Encode()...))
}

// SetMouseInput replaces one slot's synthetic mouse event.
func (s *Session) SetMouseInput(slot byte, ev payload.MouseEvent) error {
	return s.sendExpectAck(protocol.CmdSetMouseInput, append([]byte{slot}, ev.Encode()...))
}

// SetRgbMode atomically swaps the RGB driver profile.
func (s *Session) SetRgbMode(p payload.RGBProfile) error {
	return s.sendExpectAck(protocol.CmdSetRgbMode, p.Encode())
}

// SetScrMode atomically swaps the screen profile.
func (s *Session) SetScrMode(p payload.ScreenProfile) error {
	return s.sendExpectAck(protocol.CmdSetScrMode, p.Encode())
}

// SetScrIcon atomically swaps one slot's icon.
func (s *Session) SetScrIcon(slot byte, icon payload.Icon) error {
	return s.sendExpectAck(protocol.CmdSetScrIcon, append([]byte{slot}, icon.Encode()...))
}

// SetProfileName updates the display banner.
func (s *Session) SetProfileName(name string) error {
	body, err := payload.EncodeProfileName(name)
	if err != nil {
		return protocol.Wrap(protocol.KindFraming, "hostsession.SetProfileName", err)
	}
	return s.sendExpectAck(protocol.CmdSetProfileName, body)
}

// SetSystemStats updates the telemetry display.
func (s *Session) SetSystemStats(stats payload.SystemStats) error {
	body, err := stats.Encode()
	if err != nil {
		return protocol.Wrap(protocol.KindFraming, "hostsession.SetSystemStats", err)
	}
	return s.sendExpectAck(protocol.CmdSetSystemStats, body)
}

// Identify arms the 3-second LED attention blink.
func (s *Session) Identify() error {
	return s.sendExpectAck(protocol.CmdIdentify, nil)
}

// Update requests reboot to bootloader; the device replies Disconnected
// and this session is no longer usable afterward.
func (s *Session) Update() error {
	if err := s.sendCommand(protocol.CmdUpdate, nil); err != nil {
		return protocol.Wrap(protocol.KindTransport, "hostsession.Update", err)
	}
	_, err := s.expect(protocol.RspDisconnected)
	s.connected = false
	return err
}

// Disconnect performs a clean teardown.
func (s *Session) Disconnect() error {
	if err := s.sendCommand(protocol.CmdDisconnect, nil); err != nil {
		return protocol.Wrap(protocol.KindTransport, "hostsession.Disconnect", err)
	}
	_, err := s.expect(protocol.RspDisconnected)
	s.connected = false
	return err
}

// heartbeatInterval is the host's optimistic 1Hz GetInputKeys poll, which
// both reads input and satisfies the device's keep-alive (§4.3).
const heartbeatInterval = 1 * time.Second

// HeartbeatInterval exposes heartbeatInterval to the supervisor package.
func HeartbeatInterval() time.Duration { return heartbeatInterval }
