// Package telemetry feeds the "System stats" payload (spec §3) from the
// host machine. It is deliberately a thin collaborator: spec §1 excludes
// in-app telemetry collection from the core, so this package is optional
// wiring a daemon may skip entirely (no component in protocol/, payload/,
// firmware/, or hostsession/ imports it).
package telemetry

import (
	"fmt"

	"github.com/friendteaminc/jukebox/payload"
)

// Sampler produces one SystemStats reading. cmd/jukeboxd wires GopsutilSampler
// by default; tests and alternate backends can supply their own.
type Sampler interface {
	Sample() (payload.SystemStats, error)
}

// StaticSampler always returns the same reading, useful in tests and as a
// fallback when no real sampler is configured.
type StaticSampler struct {
	Stats payload.SystemStats
}

func (s StaticSampler) Sample() (payload.SystemStats, error) { return s.Stats, nil }

func formatPercent(p float64) string {
	return fmt.Sprintf("%.0f", p)
}
