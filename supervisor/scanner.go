package supervisor

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/friendteaminc/jukebox/devicetype"
)

// Candidate is one serial port that looks like a JukeBox device by its
// USB VID/PID, not yet confirmed by a Greeting (§4.5).
type Candidate struct {
	PortName   string
	DeviceType devicetype.DeviceType
	SerialNum  string
}

// PortScanner enumerates candidate ports. The default implementation is
// backed by go.bug.st/serial's enumerator, the real-port analog of the
// original implementation's use of the Rust `serialport` crate
// (original_source/desktop/src/serial.rs).
type PortScanner interface {
	Scan() ([]Candidate, error)
}

// SerialPortScanner is the default PortScanner.
type SerialPortScanner struct{}

func (SerialPortScanner) Scan() ([]Candidate, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("supervisor: list serial ports: %w", err)
	}
	var out []Candidate
	for _, p := range ports {
		if !p.IsUSB {
			continue
		}
		vid, err := strconv.ParseUint(strings.TrimPrefix(p.VID, "0x"), 16, 16)
		if err != nil || uint16(vid) != devicetype.VendorID {
			continue
		}
		pid, err := strconv.ParseUint(strings.TrimPrefix(p.PID, "0x"), 16, 16)
		if err != nil {
			continue
		}
		dt := devicetype.DeviceTypeFromProductID(uint16(pid))
		out = append(out, Candidate{PortName: p.Name, DeviceType: dt, SerialNum: p.SerialNumber})
	}
	return out, nil
}

// Opener opens a candidate port for the protocol transport. The default
// implementation sets the 115200 baud / 250 ms read timeout spec §4.5
// and §5 require.
type Opener interface {
	Open(portName string) (io.ReadWriteCloser, error)
}

// SerialOpener is the default Opener.
type SerialOpener struct{}

// readTimeout is the 250 ms serial read timeout spec §5 fixes.
const readTimeout = 250 * time.Millisecond

func (SerialOpener) Open(portName string) (io.ReadWriteCloser, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: 115200})
	if err != nil {
		return nil, fmt.Errorf("supervisor: open %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("supervisor: set read timeout on %s: %w", portName, err)
	}
	return port, nil
}
