package config

import (
	"path/filepath"
	"testing"

	"github.com/friendteaminc/jukebox/action"
	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaultDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "Default", s.CurrentProfileName())
}

func TestSnapshotSeedsDefaultKeyPadKeyMap(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(filepath.Join(dir, "config.json"))
	require.NoError(t, err)

	snap := s.Snapshot("A1B2C3D4E5F60708", devicetype.KeyPad)
	require.Len(t, snap.KeyMap, 12)
	kb, ok := snap.KeyMap[2].Action.(*action.Keyboard)
	require.True(t, ok)
	assert.Equal(t, byte(0x6A), kb.Keys[0]) // F15
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	s, err := Load(path)
	require.NoError(t, err)
	s.Snapshot("uid1", devicetype.KeyPad)
	require.NoError(t, s.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Default", reloaded.CurrentProfileName())
	snap := reloaded.Snapshot("uid1", devicetype.KeyPad)
	require.Len(t, snap.KeyMap, 12)
}

func TestSetCurrentProfileRejectsUnknownName(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Error(t, s.SetCurrentProfile("DoesNotExist"))
}

func TestSwitchProfileActionMutatesStore(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	s.doc.Profiles["B"] = Profile{Devices: map[string]DeviceProfile{}}

	sp := &action.SwitchProfile{Target: "B"}
	require.NoError(t, sp.OnRelease(action.Context{Profiles: s}))
	assert.Equal(t, "B", s.CurrentProfileName())
}
