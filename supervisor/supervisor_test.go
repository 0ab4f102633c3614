package supervisor

import (
	"context"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/firmware"
	"github.com/friendteaminc/jukebox/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpener hands out pre-made net.Conn halves by port name for the
// Opener contract (a net.Conn already satisfies io.ReadWriteCloser).
type fakeOpener struct {
	conns map[string]net.Conn
}

func (f *fakeOpener) Open(portName string) (io.ReadWriteCloser, error) {
	c, ok := f.conns[portName]
	if !ok {
		return nil, assert.AnError
	}
	return c, nil
}

type fakeScanner struct {
	mu         sync.Mutex
	candidates []Candidate
}

func (f *fakeScanner) Scan() ([]Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.candidates
	f.candidates = nil
	return out, nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingSink) Handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func TestSupervisorConnectsPollsAndDisconnects(t *testing.T) {
	hostConn, deviceConn := net.Pipe()
	defer hostConn.Close()
	defer deviceConn.Close()

	scanner := &fakeScanner{candidates: []Candidate{{PortName: "fake0", DeviceType: devicetype.KeyPad, SerialNum: "A1B2C3D4E5F60708"}}}
	opener := &fakeOpener{conns: map[string]net.Conn{"fake0": hostConn}}
	sink := &recordingSink{}
	sv := New(sink, WithScanner(scanner), WithOpener(opener))

	ctx, cancel := context.WithCancel(context.Background())
	deviceCtx, deviceCancel := context.WithCancel(context.Background())
	defer deviceCancel()

	deviceSession := firmware.NewSession("A1B2C3D4E5F60708", devicetype.KeyPad, "1.2.3", func() {})
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- deviceSession.Serve(deviceCtx, protocol.NewTransport(deviceConn, nil), nil)
	}()

	runDone := make(chan error, 1)
	go func() { runDone <- sv.Run(ctx) }()

	require.Eventually(t, func() bool {
		for _, e := range sink.snapshot() {
			if _, ok := e.(ConnectedEvent); ok {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		for _, e := range sink.snapshot() {
			if _, ok := e.(InputEvent); ok {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-runDone
	deviceCancel()
	<-serveDone
}
