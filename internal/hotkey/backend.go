package hotkey

// Backend claims combinations from the operating system. onMatch receives the
// normalized combination each time the OS reports it.
type Backend interface {
	Register(c Combination, onMatch func(combination string)) error
	Unregister(c Combination) error
}

// NopBackend claims every combination and never fires. It is used to check a
// configuration without touching the OS.
type NopBackend struct{}

func (NopBackend) Register(Combination, func(string)) error { return nil }

func (NopBackend) Unregister(Combination) error { return nil }
