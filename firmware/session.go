// Package firmware is a pure-Go simulation of the device-side session
// state machine described in §4.3/§4.4/§4.7. It exists because this repo
// cannot cross-compile to the RP2040 target; it models the same
// Disconnected/Connected state machine and the same mailbox reset-on-
// disconnect behavior as the real firmware's serial task
// (original_source/firmware/src/serial.rs), driven over any io.ReadWriter
// — typically one half of a net.Pipe in tests, or a real os.File opened on
// the device's own CDC-ACM port when cross-compiled under TinyGo.
package firmware

import (
	"sync"
	"time"

	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/payload"
	"github.com/friendteaminc/jukebox/protocol"
)

// KeepAlive is the inactivity deadline after which a Connected session
// autonomously disconnects (§4.3, §5).
const KeepAlive = 1 * time.Second

// IdentifyDuration is how long an Identify command arms the attention LED
// blink for (§4.4).
const IdentifyDuration = 3 * time.Second

// Session is the firmware-side mirror of the protocol state machine for
// one device. It is not itself concurrent; callers drive it by feeding it
// frames (via HandleFrame) and clock ticks (via CheckKeepAlive), mirroring
// the cooperative, non-preemptive scheduling model described in §5.
type Session struct {
	UID             string
	DeviceType      devicetype.DeviceType
	FirmwareVersion string
	Mailboxes       *Mailboxes

	// Bootloader is invoked when an Update command is accepted, in either
	// state. It stands in for the real firmware's reboot-to-PICOBOOT call.
	Bootloader func()

	mu                 sync.Mutex
	connected          bool
	lastDisconnectWasClean bool
	keepAliveDeadline  time.Time
	identifyUntil      time.Time
}

// NewSession builds a Session starting in Disconnected(clean=true), with
// every mailbox at its built-in default.
func NewSession(uid string, dt devicetype.DeviceType, firmwareVersion string, bootloader func()) *Session {
	return &Session{
		UID:                    uid,
		DeviceType:             dt,
		FirmwareVersion:        firmwareVersion,
		Mailboxes:              NewMailboxes(dt),
		Bootloader:             bootloader,
		lastDisconnectWasClean: true,
	}
}

// Connected reports whether the session is currently in the Connected
// state.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// LastDisconnectWasClean reports whether the most recent transition into
// Disconnected was a clean Disconnect command (true) or a NegativeAck /
// keep-alive expiry / Update (false). A transport failure in Serve does
// not change it.
func (s *Session) LastDisconnectWasClean() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDisconnectWasClean
}

// Identifying reports whether the 3-second attention blink is currently
// armed, as of now.
func (s *Session) Identifying(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Before(s.identifyUntil)
}

func (s *Session) refreshKeepAlive(now time.Time) {
	s.mu.Lock()
	s.keepAliveDeadline = now.Add(KeepAlive)
	s.mu.Unlock()
}

// CheckKeepAlive transitions Connected -> Disconnected(false) and resets
// every mailbox if the keep-alive deadline has passed. It is a no-op
// otherwise, including while Disconnected. Callers invoke this once per
// scheduler tick, matching the real firmware's task loop.
func (s *Session) CheckKeepAlive(now time.Time) {
	s.mu.Lock()
	expired := s.connected && !now.Before(s.keepAliveDeadline)
	if expired {
		s.connected = false
		s.lastDisconnectWasClean = false
	}
	s.mu.Unlock()
	if expired {
		s.Mailboxes.ResetToDefaults()
	}
}

// HandleFrame processes one decoded command frame and returns the raw
// response payload (unframed; the caller frames and writes it). now is the
// clock used for keep-alive bookkeeping, making the method deterministic
// and unit-testable without a wall-clock dependency.
func (s *Session) HandleFrame(frame []byte, now time.Time) []byte {
	if len(frame) == 0 {
		return []byte{byte(protocol.RspUnknown)}
	}
	cmd := protocol.Command(frame[0])
	data := frame[1:]

	s.mu.Lock()
	connected := s.connected
	s.mu.Unlock()

	var resp []byte
	var refresh bool

	if !connected {
		resp, refresh = s.handleDisconnected(cmd)
	} else {
		resp, refresh = s.handleConnected(cmd, data, now)
	}

	if refresh {
		s.refreshKeepAlive(now)
	}
	return resp
}

func (s *Session) handleDisconnected(cmd protocol.Command) (resp []byte, refresh bool) {
	switch cmd {
	case protocol.CmdUpdate:
		if s.Bootloader != nil {
			s.Bootloader()
		}
		return []byte{byte(protocol.RspDisconnected)}, false
	case protocol.CmdGreeting:
		s.mu.Lock()
		s.connected = true
		s.mu.Unlock()
		return s.buildLinkFrame(), true
	default:
		return []byte{byte(protocol.RspUnknown)}, false
	}
}

func (s *Session) handleConnected(cmd protocol.Command, data []byte, now time.Time) (resp []byte, refresh bool) {
	switch cmd {
	case protocol.CmdGetInputKeys:
		snap, _ := s.Mailboxes.Inputs.Peek()
		return append([]byte{byte(protocol.RspInputHeader)}, snap.Encode()...), true

	case protocol.CmdSetKeyboardInput:
		if len(data) != 7 {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		slot := int(data[0])
		ev, err := payload.DecodeKeyboardEvent(data[1:7])
		if err != nil || slot >= maxSlots {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		s.Mailboxes.KeyboardEvents[slot].Set(ev)
		return []byte{byte(protocol.RspAck)}, true

	case protocol.CmdSetMouseInput:
		if len(data) != 6 {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		slot := int(data[0])
		ev, err := payload.DecodeMouseEvent(data[1:6])
		if err != nil || slot >= maxSlots {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		s.Mailboxes.MouseEvents[slot].Set(ev)
		return []byte{byte(protocol.RspAck)}, true

	case protocol.CmdSetRgbMode:
		profile, err := payload.DecodeRGBProfile(data)
		if err != nil {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		s.Mailboxes.RGB.Set(profile)
		return []byte{byte(protocol.RspAck)}, true

	case protocol.CmdSetScrMode:
		profile, err := payload.DecodeScreenProfile(data)
		if err != nil {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		s.Mailboxes.Screen.Set(profile)
		return []byte{byte(protocol.RspAck)}, true

	case protocol.CmdSetScrIcon:
		if len(data) != 1+payload.IconSize {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		slot := int(data[0])
		icon, err := payload.DecodeIcon(data[1:])
		if err != nil || slot >= maxSlots {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		s.Mailboxes.Icons[slot].Set(icon)
		return []byte{byte(protocol.RspAck)}, true

	case protocol.CmdSetProfileName:
		name, err := payload.DecodeProfileName(data)
		if err != nil {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		s.Mailboxes.ProfileName.Set(name)
		return []byte{byte(protocol.RspAck)}, true

	case protocol.CmdSetSystemStats:
		stats, err := payload.DecodeSystemStats(data)
		if err != nil {
			return []byte{byte(protocol.RspUnknown)}, false
		}
		s.Mailboxes.SystemStats.Set(stats)
		return []byte{byte(protocol.RspAck)}, true

	case protocol.CmdIdentify:
		s.mu.Lock()
		s.identifyUntil = now.Add(IdentifyDuration)
		s.mu.Unlock()
		return []byte{byte(protocol.RspAck)}, true

	case protocol.CmdUpdate:
		if s.Bootloader != nil {
			s.Bootloader()
		}
		s.mu.Lock()
		s.connected = false
		s.lastDisconnectWasClean = false
		s.mu.Unlock()
		return []byte{byte(protocol.RspDisconnected)}, false

	case protocol.CmdDisconnect:
		s.mu.Lock()
		s.connected = false
		s.lastDisconnectWasClean = true
		s.mu.Unlock()
		s.Mailboxes.ResetToDefaults()
		return []byte{byte(protocol.RspDisconnected)}, false

	case protocol.CmdNegativeAck:
		s.mu.Lock()
		s.connected = false
		s.lastDisconnectWasClean = false
		s.mu.Unlock()
		s.Mailboxes.ResetToDefaults()
		return nil, false

	default:
		return []byte{byte(protocol.RspUnknown)}, false
	}
}

// buildLinkFrame renders the Greeting reply: LinkHeader, LinkDelimiter,
// device_type_tag, LinkDelimiter, firmware_version, LinkDelimiter,
// device_uid, LinkDelimiter (§4.3).
func (s *Session) buildLinkFrame() []byte {
	var out []byte
	out = append(out, byte(protocol.RspLinkHeader), byte(protocol.RspLinkDelim))
	out = append(out, s.DeviceType.Tag(), byte(protocol.RspLinkDelim))
	out = append(out, []byte(s.FirmwareVersion)...)
	out = append(out, byte(protocol.RspLinkDelim))
	out = append(out, []byte(s.UID)...)
	out = append(out, byte(protocol.RspLinkDelim))
	return out
}
