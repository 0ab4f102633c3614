// Package dispatcher implements the action dispatch engine of spec §4.6:
// diff successive input snapshots into pressed/released sets, fire bound
// actions, and reconcile full device state when the active profile
// changes. Grounded on original_source/software/src/reaction.rs's
// reaction_task.
package dispatcher

import (
	"fmt"
	"os"
	"sync"

	"github.com/friendteaminc/jukebox/action"
	"github.com/friendteaminc/jukebox/config"
	"github.com/friendteaminc/jukebox/devicetype"
	"github.com/friendteaminc/jukebox/payload"
)

// Commander is the device-facing surface the dispatcher pushes reconciled
// state through. *hostsession.Session satisfies this directly.
type Commander interface {
	SetProfileName(name string) error
	SetRgbMode(p payload.RGBProfile) error
	SetScrMode(p payload.ScreenProfile) error
	SetScrIcon(slot byte, icon payload.Icon) error
	SetKeyboardInput(slot byte, ev payload.KeyboardEvent) error
	SetMouseInput(slot byte, ev payload.MouseEvent) error
}

// IconLoader loads a user-chosen cached icon file's raw bytes, given the
// path stored in config.IconChoice. cmd/jukeboxd wires os.ReadFile; tests
// supply a fake.
type IconLoader func(path string) ([]byte, error)

// ReadFileIconLoader is the default IconLoader.
func ReadFileIconLoader(path string) ([]byte, error) { return os.ReadFile(path) }

// Dispatcher maintains the per-UID previous_snapshot (§4.6) and drives
// on_press/on_release/reconcile against a config.Store.
type Dispatcher struct {
	mu       sync.Mutex
	previous map[string]payload.KeySet

	store      *config.Store
	iconLoader IconLoader
}

// New builds a Dispatcher over store. loader may be nil, in which case
// custom icons are never resolved (every slot falls back to its action's
// default icon).
func New(store *config.Store, loader IconLoader) *Dispatcher {
	if loader == nil {
		loader = func(string) ([]byte, error) { return nil, fmt.Errorf("dispatcher: no icon loader configured") }
	}
	return &Dispatcher{
		previous:   make(map[string]payload.KeySet),
		store:      store,
		iconLoader: loader,
	}
}

func (d *Dispatcher) clearPrevious(uid string) {
	d.mu.Lock()
	d.previous[uid] = payload.NewKeySet()
	d.mu.Unlock()
}

// OnConnected clears previous_snapshot for uid and reconciles full device
// state, per §4.6 "On Connected{uid}: clear previous_snapshot for UID;
// run reconcile(uid)".
func (d *Dispatcher) OnConnected(uid string, dt devicetype.DeviceType, cmd Commander) error {
	d.clearPrevious(uid)
	return d.reconcile(uid, dt, cmd)
}

// OnLostConnection clears previous_snapshot, per §4.6.
func (d *Dispatcher) OnLostConnection(uid string) { d.clearPrevious(uid) }

// OnDisconnected clears previous_snapshot, per §4.6.
func (d *Dispatcher) OnDisconnected(uid string) { d.clearPrevious(uid) }

// OnInput runs one full dispatch tick for a GetInputKeys event (§4.6
// steps 1-7): diff against previous_snapshot, fire on_press/on_release for
// every bound action, replace previous_snapshot, and reconcile if the
// active profile changed as a side effect.
func (d *Dispatcher) OnInput(uid string, dt devicetype.DeviceType, snap payload.Snapshot, cmd Commander) error {
	before := d.store.CurrentProfileName()
	cfgSnap := d.store.Snapshot(uid, dt)

	d.mu.Lock()
	prev, ok := d.previous[uid]
	if !ok {
		prev = payload.NewKeySet()
	}
	d.mu.Unlock()

	current := snap.Keys()
	pressed := current.Difference(prev)
	released := prev.Difference(current)

	var errs []error
	runEffects(pressed, released, uid, dt, cfgSnap, d.store, &errs)

	d.mu.Lock()
	d.previous[uid] = current
	d.mu.Unlock()

	after := d.store.CurrentProfileName()
	if after != before {
		// SwitchProfile is the only action capable of mutating config
		// (original_source/software/src/reaction.rs); persist it and push
		// the new profile's full state to the device.
		if err := d.store.Save(); err != nil {
			errs = append(errs, err)
		}
		if err := d.reconcile(uid, dt, cmd); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

// runEffects invokes on_press for every pressed key and on_release for
// every released key that has a bound action, all concurrently, and waits
// for every effect to finish (§4.6 step 5: "Await all effects concurrently").
func runEffects(pressed, released payload.KeySet, uid string, dt devicetype.DeviceType, cfgSnap config.Snapshot, profiles action.ProfileSwitcher, errs *[]error) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	run := func(key payload.InputKey, invoke func(a action.Action, ctx action.Context) error) {
		slot, ok := payload.SlotForKey(dt, key)
		if !ok {
			return
		}
		binding, ok := cfgSnap.KeyMap[slot]
		if !ok || binding.Action == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := action.Context{UID: uid, Slot: slot, Profiles: profiles}
			if err := invoke(binding.Action, ctx); err != nil {
				mu.Lock()
				*errs = append(*errs, err)
				mu.Unlock()
			}
		}()
	}

	for key := range pressed {
		run(key, func(a action.Action, ctx action.Context) error { return a.OnPress(ctx) })
	}
	for key := range released {
		run(key, func(a action.Action, ctx action.Context) error { return a.OnRelease(ctx) })
	}
	wg.Wait()
}

// reconcile pushes the active profile's full state to the device (§4.6
// "reconcile(uid)... send SetProfileName, SetRgbMode, SetScrMode, and all
// SetScrIcon frames"), plus the synthetic keyboard/mouse event for every
// bound input action.
func (d *Dispatcher) reconcile(uid string, dt devicetype.DeviceType, cmd Commander) error {
	snap := d.store.Snapshot(uid, dt)

	var errs []error
	record := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	record(cmd.SetProfileName(snap.ProfileName))
	record(cmd.SetRgbMode(snap.RGB))
	record(cmd.SetScrMode(snap.Screen))

	for slot, binding := range snap.KeyMap {
		icon := d.resolveIcon(binding)
		record(cmd.SetScrIcon(byte(slot), icon))

		switch a := binding.Action.(type) {
		case *action.Keyboard:
			record(cmd.SetKeyboardInput(byte(slot), a.Event()))
		case *action.Mouse:
			record(cmd.SetMouseInput(byte(slot), a.Event()))
		}
	}
	return joinErrors(errs)
}

// resolveIcon loads a custom cached icon if one is configured, falling
// back to the bound action's default icon on any failure (§4.6 "Icon
// resolution").
func (d *Dispatcher) resolveIcon(binding config.SlotBinding) payload.Icon {
	if binding.Icon.CustomIconPath != "" {
		cached, err := d.iconLoader(binding.Icon.CustomIconPath)
		if err == nil {
			if icon, err := payload.IconFromCachedBytes(cached); err == nil {
				return icon
			}
		}
	}
	if binding.Action != nil {
		return binding.Action.DefaultIcon()
	}
	return payload.DefaultIcon()
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	msg := fmt.Sprintf("%d dispatch errors: %v", len(errs), errs[0])
	return fmt.Errorf("%s", msg)
}
