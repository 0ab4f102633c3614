// Package protocol implements the length-prefixed framing layer and the
// command/response tag vocabulary shared by both ends of the JukeBox wire
// protocol.
package protocol

// Command is a host->device command tag (the payload's first byte).
type Command byte

// Response is a device->host response tag (the payload's first byte).
type Response byte

// Command tags. Values are part of the wire format; they must not change
// without breaking interoperability with deployed firmware.
const (
	CmdGreeting         Command = 0x05
	CmdIdentify         Command = 0x07
	CmdUpdate           Command = 0x0F
	CmdDisconnect       Command = 0x10
	CmdNegativeAck      Command = 0x15
	CmdGetInputKeys     Command = 0x41
	CmdSetKeyboardInput Command = 0x42
	CmdSetMouseInput    Command = 0x43
	CmdSetRgbMode       Command = 0x45
	CmdSetScrMode       Command = 0x46
	CmdSetScrIcon       Command = 0x47
	CmdSetProfileName   Command = 0x48
	CmdSetSystemStats   Command = 0x4A
)

// Response tags.
const (
	RspAck          Response = 0x06
	RspDisconnected Response = 0x04
	RspUnknown      Response = '?'
	RspInputHeader  Response = '!'
	RspLinkHeader   Response = 0x01
	RspLinkDelim    Response = 0x02
)

func (c Command) String() string {
	switch c {
	case CmdGreeting:
		return "Greeting"
	case CmdIdentify:
		return "Identify"
	case CmdUpdate:
		return "Update"
	case CmdDisconnect:
		return "Disconnect"
	case CmdNegativeAck:
		return "NegativeAck"
	case CmdGetInputKeys:
		return "GetInputKeys"
	case CmdSetKeyboardInput:
		return "SetKeyboardInput"
	case CmdSetMouseInput:
		return "SetMouseInput"
	case CmdSetRgbMode:
		return "SetRgbMode"
	case CmdSetScrMode:
		return "SetScrMode"
	case CmdSetScrIcon:
		return "SetScrIcon"
	case CmdSetProfileName:
		return "SetProfileName"
	case CmdSetSystemStats:
		return "SetSystemStats"
	default:
		return "Unknown"
	}
}

func (r Response) String() string {
	switch r {
	case RspAck:
		return "Ack"
	case RspDisconnected:
		return "Disconnected"
	case RspUnknown:
		return "Unknown"
	case RspInputHeader:
		return "InputHeader"
	case RspLinkHeader:
		return "LinkHeader"
	case RspLinkDelim:
		return "LinkDelimiter"
	default:
		return "Unrecognized"
	}
}
