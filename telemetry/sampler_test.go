package telemetry

import (
	"testing"

	"github.com/friendteaminc/jukebox/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSamplerReturnsConfiguredStats(t *testing.T) {
	want := payload.SystemStats{CPUName: "Test CPU", CPUUsage: "12"}
	s := StaticSampler{Stats: want}
	got, err := s.Sample()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGopsutilSamplerProducesEncodableStats(t *testing.T) {
	stats, err := GopsutilSampler{}.Sample()
	require.NoError(t, err)
	_, err = stats.Encode()
	assert.NoError(t, err)
}
