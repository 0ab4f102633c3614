package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/internal/configpaths"
)

// Store wraps a Document in a mutex, matching §5's "the configuration
// object is wrapped in a mutex; every read takes a short critical
// section." It implements action.ProfileSwitcher so a SwitchProfile
// action's on_release can mutate it without config depending on action.
type Store struct {
	mu   sync.Mutex
	path string
	doc  Document
}

// Load reads path (creating a fresh default document if it doesn't exist
// yet — a first run has nothing to load).
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.doc = NewDocument()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := doc.validateCurrentProfile(); err != nil {
		return nil, err
	}
	s.doc = doc
	return s, nil
}

// LoadDefault loads from the OS-standard path (§6).
func LoadDefault() (*Store, error) {
	path, err := configpaths.ProfileStorePath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Save persists the document atomically: write to a temp file in the same
// directory, then rename over the target, so a crash mid-write preserves
// the previous version (§6 "rename-over").
func (s *Store) Save() error {
	s.mu.Lock()
	doc := s.doc
	path := s.path
	s.mu.Unlock()

	if err := configpaths.EnsureDir(path); err != nil {
		return fmt.Errorf("config: ensure dir for %s: %w", path, err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("config: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("config: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("config: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("config: rename into place: %w", err)
	}
	return nil
}

// CurrentProfileName returns the active profile's name.
func (s *Store) CurrentProfileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.CurrentProfile
}

// SetCurrentProfile switches the active profile, implementing
// action.ProfileSwitcher. Returns an error if the profile does not exist
// rather than silently creating it.
func (s *Store) SetCurrentProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.Profiles[name]; !ok {
		return fmt.Errorf("config: profile %q does not exist", name)
	}
	s.doc.CurrentProfile = name
	return nil
}

// Snapshot returns the current profile's settings for uid, seeding a
// default DeviceProfile (and, if needed, the current profile itself) on
// first access so a freshly connected device is immediately usable.
func (s *Store) Snapshot(uid string, dt devicetype.DeviceType) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.doc.Profiles[s.doc.CurrentProfile]
	if !ok {
		profile = Profile{Devices: map[string]DeviceProfile{}}
		s.doc.Profiles[s.doc.CurrentProfile] = profile
	}
	dp, ok := profile.Devices[uid]
	if !ok {
		dp = defaultDeviceProfile(dt)
		profile.Devices[uid] = dp
	}

	keyMap := make(map[int]SlotBinding, len(dp.KeyMap))
	for slot, binding := range dp.KeyMap {
		keyMap[slot] = binding
	}
	return Snapshot{
		DeviceType:  dt,
		ProfileName: s.doc.CurrentProfile,
		KeyMap:      keyMap,
		RGB:         dp.RGB,
		Screen:      dp.Screen,
	}
}

// ProfileNames lists every configured profile, for the operator console.
func (s *Store) ProfileNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.profileNames()
}
