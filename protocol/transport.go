package protocol

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"syscall"
)

// RawLogger receives a trace copy of every frame exchanged over a
// Transport, keyed by direction. Implementations must be safe for
// concurrent use. NewTransport accepts a nil RawLogger and substitutes a
// no-op one.
type RawLogger interface {
	Log(in bool, data []byte)
}

// Transport is the low-level framing layer over a single serial
// connection: it knows how to send and receive frames, but nothing about
// session state or command semantics. Both the firmware-side simulator and
// the host-side session build on top of it, mirroring the split between
// apiclient's low-level request/response plumbing and its typed client
// methods.
type Transport struct {
	rw     io.ReadWriter
	fr     *FrameReader
	mu     sync.Mutex
	raw    RawLogger
	closed bool
}

// NewTransport wraps rw. raw may be nil, in which case frames are not traced.
func NewTransport(rw io.ReadWriter, raw RawLogger) *Transport {
	if raw == nil {
		raw = noopRawLogger{}
	}
	return &Transport{rw: rw, fr: NewFrameReader(rw), raw: raw}
}

// Send frames and writes payload. in indicates direction for tracing: true
// means this side originated the command (host->device), false means this
// side is replying (device->host).
func (t *Transport) Send(payload []byte, in bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.New("protocol: transport closed")
	}
	frame, err := EncodeFrame(payload)
	if err != nil {
		return err
	}
	t.raw.Log(in, payload)
	if _, err := t.rw.Write(frame); err != nil {
		return fmt.Errorf("protocol: write frame: %w", err)
	}
	return nil
}

// Recv reads the next frame's payload.
func (t *Transport) Recv(in bool) ([]byte, error) {
	payload, err := t.fr.ReadFrame()
	if err != nil {
		return nil, err
	}
	t.raw.Log(in, payload)
	return payload, nil
}

// Close marks the transport closed; if the underlying rw is an io.Closer it
// is closed too.
func (t *Transport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	if c, ok := t.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type noopRawLogger struct{}

func (noopRawLogger) Log(bool, []byte) {}

// IsDisconnect reports whether err represents the peer going away rather
// than a protocol-level failure: EOF, a reset/broken-pipe errno, or one of
// the OS-specific string forms those conditions surface as. Session
// implementations use this to classify a read/write failure as a
// Transport error (§7 kind 3) rather than a Framing or Protocol error.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errno, ok := opErr.Err.(syscall.Errno); ok {
			if errno == syscall.ECONNRESET || errno == syscall.EPIPE {
				return true
			}
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "forcibly closed") ||
		strings.Contains(msg, "aborted") ||
		strings.Contains(msg, "broken pipe") {
		return true
	}
	return false
}
