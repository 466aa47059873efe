package hotkey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	claimed  map[string]func(string)
	refuse   map[string]bool
	released []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{claimed: map[string]func(string){}, refuse: map[string]bool{}}
}

func (f *fakeBackend) Register(c Combination, onMatch func(string)) error {
	if f.refuse[c.String()] {
		return errors.New("claimed by another application")
	}
	f.claimed[c.String()] = onMatch
	return nil
}

func (f *fakeBackend) Unregister(c Combination) error {
	delete(f.claimed, c.String())
	f.released = append(f.released, c.String())
	return nil
}

// press simulates the OS reporting a combination.
func (f *fakeBackend) press(t *testing.T, combo string) {
	t.Helper()
	fire, ok := f.claimed[combo]
	require.True(t, ok, "combination %s not claimed", combo)
	fire(combo)
}

func TestRegisterDuplicate(t *testing.T) {
	m := NewManager(newFakeBackend(), nil)

	_, err := m.Register("Ctrl+Alt+Q", Summon(), nil)
	require.NoError(t, err)

	_, err = m.Register("alt+CTRL+q", ProfileSwitch(1), nil)
	require.ErrorIs(t, err, ErrDuplicateBinding)
	assert.NotErrorIs(t, err, ErrRegistrationFailed)

	var be *BindingError
	require.ErrorAs(t, err, &be)
	require.NotNil(t, be.Existing)
	assert.Equal(t, Summon(), *be.Existing)

	assert.Len(t, m.Bindings(), 1)
}

func TestRegisterDuplicateZeroPaddedFunctionKey(t *testing.T) {
	m := NewManager(newFakeBackend(), nil)

	_, err := m.Register("Ctrl+F1", Summon(), nil)
	require.NoError(t, err)
	_, err = m.Register("Ctrl+F01", ProfileSwitch(0), nil)
	require.ErrorIs(t, err, ErrDuplicateBinding)
	assert.Len(t, m.Bindings(), 1)
}

func TestRegisterOSFailure(t *testing.T) {
	fb := newFakeBackend()
	fb.refuse["ctrl+space"] = true
	m := NewManager(fb, nil)

	_, err := m.Register("Ctrl+Space", Summon(), nil)
	require.ErrorIs(t, err, ErrRegistrationFailed)
	assert.NotErrorIs(t, err, ErrDuplicateBinding)
	assert.Empty(t, m.Bindings())

	// The combination was never stored, so a retry after the conflict clears works.
	delete(fb.refuse, "ctrl+space")
	_, err = m.Register("Ctrl+Space", Summon(), nil)
	assert.NoError(t, err)
}

func TestRegisterInvalid(t *testing.T) {
	m := NewManager(newFakeBackend(), nil)
	_, err := m.Register("", Summon(), nil)
	assert.ErrorIs(t, err, ErrInvalidCombination)
}

func TestDispatchIsolation(t *testing.T) {
	fb := newFakeBackend()
	m := NewManager(fb, nil)

	var gotA, gotB int
	_, err := m.Register("Ctrl+1", ProfileSwitch(0), func(Binding) { gotA++ })
	require.NoError(t, err)
	_, err = m.Register("Ctrl+2", ProfileSwitch(1), func(Binding) { gotB++ })
	require.NoError(t, err)

	fb.press(t, "ctrl+1")
	assert.Equal(t, 1, gotA)
	assert.Equal(t, 0, gotB)

	m.Unregister("CTRL+1")
	fb.press(t, "ctrl+2")
	assert.Equal(t, 1, gotA)
	assert.Equal(t, 1, gotB)
	assert.False(t, m.Dispatch("ctrl+1"))
}

func TestDispatchCarriesBinding(t *testing.T) {
	fb := newFakeBackend()
	m := NewManager(fb, nil)

	var got Binding
	_, err := m.Register("Shift+F2", ProfileSwitch(2), func(b Binding) { got = b })
	require.NoError(t, err)

	fb.press(t, "shift+f2")
	assert.Equal(t, ProfileSwitch(2), got.Purpose)
	assert.Equal(t, "Shift+F2", got.Combination.Display())
}

func TestDispatchGoesThroughPost(t *testing.T) {
	fb := newFakeBackend()
	var queued []func()
	m := NewManager(fb, func(fn func()) { queued = append(queued, fn) })

	ran := false
	_, err := m.Register("F11", Summon(), func(Binding) { ran = true })
	require.NoError(t, err)

	fb.press(t, "f11")
	assert.False(t, ran, "handler must wait for the loop")
	require.Len(t, queued, 1)
	queued[0]()
	assert.True(t, ran)
}

func TestUnregisterIdempotent(t *testing.T) {
	fb := newFakeBackend()
	m := NewManager(fb, nil)
	_, err := m.Register("F11", Summon(), nil)
	require.NoError(t, err)

	m.Unregister("F11")
	m.Unregister("F11")
	m.Unregister("not a combo+")
	assert.Equal(t, []string{"f11"}, fb.released)
}

func TestRegisterAllKeepsGoing(t *testing.T) {
	fb := newFakeBackend()
	fb.refuse["ctrl+3"] = true
	m := NewManager(fb, nil)

	ok, err := m.RegisterAll([]Request{
		{Combination: "F11", Purpose: Summon()},
		{Combination: "Ctrl+1", Purpose: ProfileSwitch(0)},
		{Combination: "ctrl+1", Purpose: ProfileSwitch(1)},
		{Combination: "Ctrl+3", Purpose: ProfileSwitch(2)},
		{Combination: "Ctrl+4", Purpose: ProfileSwitch(3)},
	}, nil)

	assert.Len(t, ok, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateBinding)
	assert.ErrorIs(t, err, ErrRegistrationFailed)
}

func TestCloseReleasesEverything(t *testing.T) {
	fb := newFakeBackend()
	m := NewManager(fb, nil)
	_, _ = m.Register("F11", Summon(), nil)
	_, _ = m.Register("Ctrl+1", ProfileSwitch(0), nil)

	m.Close()
	assert.Empty(t, fb.claimed)
	assert.Empty(t, m.Bindings())

	_, err := m.Register("F12", Summon(), nil)
	assert.ErrorIs(t, err, ErrClosed)
}
