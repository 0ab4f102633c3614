package firmware

import (
	"context"
	"time"

	"github.com/friendteaminc/jukebox/protocol"
)

// keepAlivePollInterval is how often Serve checks the keep-alive deadline
// while waiting for frames. The spec requires detecting expiry "within the
// next 100 ms of its task loop" (§8); 50 ms keeps comfortably inside that.
const keepAlivePollInterval = 50 * time.Millisecond

// Serve drives Session from frames read off t until ctx is cancelled, the
// transport errors, or the device processes an Update command (which ends
// the session by design — the real firmware reboots to bootloader and
// stops serving entirely). clock defaults to time.Now when nil; tests pass
// a fake clock instead.
func (s *Session) Serve(ctx context.Context, t *protocol.Transport, clock func() time.Time) error {
	if clock == nil {
		clock = time.Now
	}

	frames := make(chan []byte)
	errs := make(chan error, 1)
	go func() {
		for {
			f, err := t.Recv(true)
			if err != nil {
				errs <- err
				return
			}
			frames <- f
		}
	}()

	ticker := time.NewTicker(keepAlivePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			return protocol.Wrap(protocol.KindTransport, "firmware.Serve", err)
		case <-ticker.C:
			s.CheckKeepAlive(clock())
		case frame := <-frames:
			cmd := protocol.Command(0)
			if len(frame) > 0 {
				cmd = protocol.Command(frame[0])
			}
			resp := s.HandleFrame(frame, clock())
			if resp != nil {
				if err := t.Send(resp, false); err != nil {
					return protocol.Wrap(protocol.KindTransport, "firmware.Serve", err)
				}
			}
			if cmd == protocol.CmdUpdate {
				return nil
			}
		}
	}
}
