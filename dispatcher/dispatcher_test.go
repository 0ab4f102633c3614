package dispatcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/friendteaminc/jukebox/action"
	"github.com/friendteaminc/jukebox/config"
	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommander struct {
	mu          sync.Mutex
	profileName string
	rgb         payload.RGBProfile
	screen      payload.ScreenProfile
	icons       map[byte]payload.Icon
	keyboards   map[byte]payload.KeyboardEvent
	mice        map[byte]payload.MouseEvent
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{
		icons:     make(map[byte]payload.Icon),
		keyboards: make(map[byte]payload.KeyboardEvent),
		mice:      make(map[byte]payload.MouseEvent),
	}
}

func (f *fakeCommander) SetProfileName(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileName = name
	return nil
}
func (f *fakeCommander) SetRgbMode(p payload.RGBProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rgb = p
	return nil
}
func (f *fakeCommander) SetScrMode(p payload.ScreenProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen = p
	return nil
}
func (f *fakeCommander) SetScrIcon(slot byte, icon payload.Icon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.icons[slot] = icon
	return nil
}
func (f *fakeCommander) SetKeyboardInput(slot byte, ev payload.KeyboardEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keyboards[slot] = ev
	return nil
}
func (f *fakeCommander) SetMouseInput(slot byte, ev payload.MouseEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mice[slot] = ev
	return nil
}

func newTestStore(t *testing.T) *config.Store {
	t.Helper()
	s, err := config.Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	return s
}

func TestOnConnectedReconcilesFullState(t *testing.T) {
	store := newTestStore(t)
	d := New(store, nil)
	cmd := newFakeCommander()

	require.NoError(t, d.OnConnected("uid1", devicetype.KeyPad, cmd))
	assert.Equal(t, "Default", cmd.profileName)
	assert.Len(t, cmd.keyboards, 12) // every KeyPad slot defaults to a keyboard action
}

func TestOnInputFiresPressAndReleaseAndReconcilesOnProfileSwitch(t *testing.T) {
	// Profile "A" binds key 12 (slot 11) of uid1 to SwitchProfile{Target: "B"}.
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{"current_profile":"A","profiles":{
		"A":{"devices":{"uid1":{"key_map":{"11":{"action":{"kind":"switch_profile","data":{"target":"B"}},"icon":{}}}}}},
		"B":{"devices":{}}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	store, err := config.Load(path)
	require.NoError(t, err)

	d := New(store, nil)
	cmd := newFakeCommander()
	require.NoError(t, d.OnConnected("uid1", devicetype.KeyPad, cmd))
	assert.Equal(t, "A", cmd.profileName)

	snap1 := payload.KeyPadSnapshot{}
	snap1.Switches[11] = true // key 12 pressed
	require.NoError(t, d.OnInput("uid1", devicetype.KeyPad, snap1, cmd))
	assert.Equal(t, "A", store.CurrentProfileName()) // SwitchProfile acts on release

	snap2 := payload.KeyPadSnapshot{} // key 12 released
	require.NoError(t, d.OnInput("uid1", devicetype.KeyPad, snap2, cmd))
	assert.Equal(t, "B", store.CurrentProfileName())
	assert.Equal(t, "B", cmd.profileName) // reconcile pushed the new profile
}

func TestOnLostConnectionClearsPreviousSnapshot(t *testing.T) {
	store := newTestStore(t)
	d := New(store, nil)
	cmd := newFakeCommander()
	require.NoError(t, d.OnConnected("uid1", devicetype.KeyPad, cmd))

	snap := payload.KeyPadSnapshot{}
	snap.Switches[0] = true
	require.NoError(t, d.OnInput("uid1", devicetype.KeyPad, snap, cmd))

	d.OnLostConnection("uid1")
	d.mu.Lock()
	cleared := d.previous["uid1"]
	d.mu.Unlock()
	assert.Empty(t, cleared)
}

func TestResolveIconFallsBackToActionDefault(t *testing.T) {
	store := newTestStore(t)
	d := New(store, nil)
	binding := config.SlotBinding{Action: &action.NoAction{}}
	icon := d.resolveIcon(binding)
	assert.Equal(t, payload.DefaultIcon(), icon)
}
