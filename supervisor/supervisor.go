// Package supervisor is the host serial supervisor of spec §4.5: it
// discovers candidate devices, greets them, spawns one session task per
// UID, and multiplexes host-originated commands into each. Grounded on
// original_source/desktop/src/serial.rs's discovery loop; disconnect
// classification lives in protocol.Transport (protocol.IsDisconnect) and
// is reused here.
package supervisor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/dispatcher"
	"github.com/friendteaminc/jukebox/hostsession"
	ijlog "github.com/friendteaminc/jukebox/internal/log"
	"github.com/friendteaminc/jukebox/payload"
	"github.com/friendteaminc/jukebox/protocol"
	"github.com/friendteaminc/jukebox/telemetry"
)

// Reactor is the action-dispatch side of a connection, driven with the live
// session as its Commander (hostsession.Session satisfies
// dispatcher.Commander directly, so *dispatcher.Dispatcher itself
// implements Reactor with no adapter needed between the two packages).
type Reactor interface {
	OnConnected(uid string, dt devicetype.DeviceType, cmd dispatcher.Commander) error
	OnInput(uid string, dt devicetype.DeviceType, snap payload.Snapshot, cmd dispatcher.Commander) error
	OnLostConnection(uid string)
	OnDisconnected(uid string)
}

// noopReactor is used when no Reactor is configured.
type noopReactor struct{}

func (noopReactor) OnConnected(string, devicetype.DeviceType, dispatcher.Commander) error {
	return nil
}
func (noopReactor) OnInput(string, devicetype.DeviceType, payload.Snapshot, dispatcher.Commander) error {
	return nil
}
func (noopReactor) OnLostConnection(string) {}
func (noopReactor) OnDisconnected(string)   {}

// rescanBackoff is the delay between scans when nothing new was found, or
// a greeting attempt failed (§4.5, §5).
const rescanBackoff = 1 * time.Second

// statsInterval gates how often SetSystemStats is sent (§4.5 step 2).
const statsInterval = 1 * time.Second

// Supervisor owns device discovery and the set of currently connected
// UIDs, mirroring §5's "the map UID->command-sender is likewise
// mutex-guarded and read once per command fan-out".
type Supervisor struct {
	scanner   PortScanner
	opener    Opener
	sink      Sink
	reactor   Reactor
	sampler   telemetry.Sampler
	logger    *slog.Logger
	rawLogger ijlog.RawLogger

	mu       sync.Mutex
	uids     map[string]struct{}
	commands map[string]chan Command
}

// Option configures a Supervisor at construction time.
type Option func(*Supervisor)

// WithScanner overrides the default PortScanner (tests use a fake).
func WithScanner(s PortScanner) Option { return func(sv *Supervisor) { sv.scanner = s } }

// WithOpener overrides the default Opener (tests use a net.Pipe fake).
func WithOpener(o Opener) Option { return func(sv *Supervisor) { sv.opener = o } }

// WithSampler overrides the default telemetry.Sampler.
func WithSampler(s telemetry.Sampler) Option { return func(sv *Supervisor) { sv.sampler = s } }

// WithLogger overrides the default slog.Logger.
func WithLogger(l *slog.Logger) Option { return func(sv *Supervisor) { sv.logger = l } }

// WithReactor wires the action dispatcher into every session's lifecycle
// and input polls (§4.6). Without one, sessions just publish Events.
func WithReactor(r Reactor) Option { return func(sv *Supervisor) { sv.reactor = r } }

// WithRawLogger wires a frame-level trace logger into every transport
// this Supervisor opens.
func WithRawLogger(rl ijlog.RawLogger) Option {
	return func(sv *Supervisor) { sv.rawLogger = rl }
}

// New builds a Supervisor that publishes every Event to sink (typically a
// MultiSink fanning out to a logger and a GUI/TUI); the dispatcher is
// attached separately with WithReactor.
func New(sink Sink, opts ...Option) *Supervisor {
	sv := &Supervisor{
		scanner:  SerialPortScanner{},
		opener:   SerialOpener{},
		sink:     sink,
		reactor:  noopReactor{},
		sampler:  telemetry.StaticSampler{},
		logger:   slog.Default(),
		uids:     make(map[string]struct{}),
		commands: make(map[string]chan Command),
	}
	for _, opt := range opts {
		opt(sv)
	}
	return sv
}

// SendCommand routes a host-originated command to uid's session task, if
// one is currently running. Returns false if uid is not connected.
func (sv *Supervisor) SendCommand(uid string, kind CommandKind) bool {
	sv.mu.Lock()
	ch, ok := sv.commands[uid]
	sv.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case ch <- Command{Kind: kind}:
		return true
	default:
		return false
	}
}

// ConnectedUIDs returns a snapshot of the currently connected device UIDs.
func (sv *Supervisor) ConnectedUIDs() []string {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	out := make([]string, 0, len(sv.uids))
	for uid := range sv.uids {
		out = append(out, uid)
	}
	return out
}

// Run drives the discovery loop until ctx is cancelled. On cancellation,
// it broadcasts Disconnect to every active session and waits up to the
// session grace period before returning (§5 "Cancellation").
func (sv *Supervisor) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer func() {
		sv.broadcastDisconnect()
		done := make(chan struct{})
		go func() { wg.Wait(); close(done) }()
		select {
		case <-done:
		case <-time.After(1 * time.Second):
			sv.logger.Warn("supervisor: grace period elapsed before all sessions exited")
		}
	}()

	ticker := time.NewTicker(rescanBackoff)
	defer ticker.Stop()

	for {
		sv.scanAndLaunch(ctx, &wg)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (sv *Supervisor) broadcastDisconnect() {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	for _, ch := range sv.commands {
		select {
		case ch <- Command{Kind: CommandDisconnect}:
		default:
		}
	}
}

func (sv *Supervisor) scanAndLaunch(ctx context.Context, wg *sync.WaitGroup) {
	candidates, err := sv.scanner.Scan()
	if err != nil {
		sv.logger.Warn("supervisor: scan failed", "err", err)
		return
	}

	for _, c := range candidates {
		sv.mu.Lock()
		_, alreadyConnected := sv.uids[c.SerialNum]
		sv.mu.Unlock()
		if c.SerialNum != "" && alreadyConnected {
			continue
		}

		rw, err := sv.opener.Open(c.PortName)
		if err != nil {
			sv.logger.Debug("supervisor: open failed", "port", c.PortName, "err", err)
			continue
		}

		transport := protocol.NewTransport(rw, sv.rawLogger)
		sess := hostsession.New(transport)
		info, err := sess.Greet(ctx)
		if err != nil {
			sv.logger.Debug("supervisor: greeting failed", "port", c.PortName, "err", err)
			rw.Close()
			continue
		}

		sv.mu.Lock()
		if _, exists := sv.uids[info.UID]; exists {
			sv.mu.Unlock()
			rw.Close()
			continue
		}
		sv.uids[info.UID] = struct{}{}
		cmdCh := make(chan Command, 8)
		sv.commands[info.UID] = cmdCh
		sv.mu.Unlock()

		sv.sink.Handle(ConnectedEvent{UID: info.UID, DeviceType: info.DeviceType})
		if err := sv.reactor.OnConnected(info.UID, info.DeviceType, sess); err != nil {
			sv.logger.Warn("supervisor: reactor OnConnected failed", "uid", info.UID, "err", err)
		}

		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			sv.runSession(ctx, sess, rw, uid, info.DeviceType, cmdCh)
		}(info.UID)
	}
}

func (sv *Supervisor) cleanup(uid string) {
	sv.mu.Lock()
	delete(sv.uids, uid)
	delete(sv.commands, uid)
	sv.mu.Unlock()
}
