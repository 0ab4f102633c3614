package supervisor

import (
	"context"
	"io"
	"time"

	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/hostsession"
)

// runSession drives one connected device's task loop (§4.5):
//  1. poll GetInputKeys and publish an InputEvent,
//  2. send SetSystemStats at 1 Hz if the device has a screen,
//  3. drain pending host commands non-blockingly,
//  4. on Update/Disconnect (or any I/O error) clean up and return.
func (sv *Supervisor) runSession(ctx context.Context, sess *hostsession.Session, rw io.ReadWriteCloser, uid string, dt devicetype.DeviceType, cmds chan Command) {
	defer rw.Close()
	defer sv.cleanup(uid)

	lastStats := time.Time{}
	heartbeat := time.NewTicker(hostsession.HeartbeatInterval())
	defer heartbeat.Stop()

	var terminal Event = DisconnectedEvent{UID: uid}
	defer func() {
		switch terminal.(type) {
		case LostConnectionEvent:
			sv.reactor.OnLostConnection(uid)
		case DisconnectedEvent:
			sv.reactor.OnDisconnected(uid)
		}
		sv.sink.Handle(terminal)
	}()

	for {
		select {
		case <-ctx.Done():
			// Shutdown (§5 "Cancellation"): end with a clean Disconnect
			// frame here. broadcastDisconnect's Command is queued only
			// after Run has seen the same cancellation, by which time this
			// task may already have returned. Run's 1 s grace period
			// bounds how long this exchange can hold up shutdown.
			_ = sess.Disconnect()
			return
		case <-heartbeat.C:
		case cmd := <-cmds:
			if sv.handleCommand(sess, cmd, uid, &terminal) {
				return
			}
			continue
		}

		snap, err := sess.GetInputKeys()
		if err != nil {
			// Any I/O error during the loop is a lost connection, whether
			// it classifies as a clean peer hangup or a framing failure
			// (§4.5 "On any I/O error... the task emits LostConnection").
			terminal = LostConnectionEvent{UID: uid}
			return
		}
		sv.sink.Handle(InputEvent{UID: uid, DeviceType: dt, Snapshot: snap})
		if err := sv.reactor.OnInput(uid, dt, snap, sess); err != nil {
			sv.logger.Warn("supervisor: reactor OnInput failed", "uid", uid, "err", err)
		}

		if dt.HasScreen() && time.Since(lastStats) >= statsInterval {
			if stats, err := sv.sampler.Sample(); err == nil {
				_ = sess.SetSystemStats(stats)
			}
			lastStats = time.Now()
		}

		if drained := sv.drainCommands(sess, cmds, uid, &terminal); drained {
			return
		}
	}
}

// handleCommand processes one host command; it returns true if the
// session should end as a result.
func (sv *Supervisor) handleCommand(sess *hostsession.Session, cmd Command, uid string, terminal *Event) bool {
	switch cmd.Kind {
	case CommandIdentify:
		_ = sess.Identify()
		return false
	case CommandUpdate:
		_ = sess.Update()
		*terminal = DisconnectedEvent{UID: uid}
		return true
	case CommandDisconnect:
		_ = sess.Disconnect()
		*terminal = DisconnectedEvent{UID: uid}
		return true
	default:
		return false
	}
}

// drainCommands forwards every currently-queued command non-blockingly
// (§4.5 step 3), returning true if one of them ended the session.
func (sv *Supervisor) drainCommands(sess *hostsession.Session, cmds chan Command, uid string, terminal *Event) bool {
	for {
		select {
		case cmd := <-cmds:
			if sv.handleCommand(sess, cmd, uid, terminal) {
				return true
			}
		default:
			return false
		}
	}
}
