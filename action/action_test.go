package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	current string
}

func (f *fakeProfiles) SetCurrentProfile(name string) error {
	f.current = name
	return nil
}

func TestSwitchProfileOnlyMutatesOnRelease(t *testing.T) {
	profiles := &fakeProfiles{current: "A"}
	ctx := Context{UID: "u1", Slot: 11, Profiles: profiles}

	a := &SwitchProfile{Target: "B"}
	require.NoError(t, a.OnPress(ctx))
	assert.Equal(t, "A", profiles.current)

	require.NoError(t, a.OnRelease(ctx))
	assert.Equal(t, "B", profiles.current)
}

func TestKeyboardActionBuildsEvent(t *testing.T) {
	a := &Keyboard{Keys: [6]byte{0x6A, 0, 0, 0, 0, 0}}
	assert.Equal(t, byte(0x6A), a.Event().Keys[0])
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	original := &Keyboard{Keys: [6]byte{0x04, 0, 0, 0, 0, 0}}
	raw, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := Unmarshal(raw)
	require.NoError(t, err)
	kb, ok := decoded.(*Keyboard)
	require.True(t, ok)
	assert.Equal(t, original.Keys, kb.Keys)
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	_, err := Unmarshal([]byte(`{"kind":"does_not_exist"}`))
	assert.Error(t, err)
}

func TestNewRegistryResolvesCoreKinds(t *testing.T) {
	r := NewRegistry()
	for _, k := range []Kind{KindNoAction, KindSwitchProfile, KindKeyboard, KindMouse, KindOpenApp, KindOpenWeb} {
		a, err := r.New(k)
		require.NoError(t, err)
		assert.Equal(t, k, a.Kind())
	}
}
