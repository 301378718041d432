package theme

import "strings"

// StorageKey is the key the preference is stored under
const StorageKey = "theme"

// Preference is the user's theme choice
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// Preferences lists every choice in display order
var Preferences = []Preference{Light, Dark, System}

// Theme is the theme actually applied
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Parse returns the preference named s, or System if s is not one
func Parse(s string) Preference {
	switch p := Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case Light, Dark, System:
		return p
	default:
		return System
	}
}

// Resolve returns the theme applied for p given the OS color scheme
func Resolve(p Preference, systemDark bool) Theme {
	switch p {
	case Light:
		return ThemeLight
	case Dark:
		return ThemeDark
	default:
		if systemDark {
			return ThemeDark
		}
		return ThemeLight
	}
}

// Store persists the preference between sessions
type Store interface {
	Load() (string, bool)
	Save(value string) error
}

// Tracker holds the preference and the last OS color scheme signal
type Tracker struct {
	store      Store
	pref       Preference
	systemDark bool
}

// NewTracker restores the stored preference, defaulting to System
func NewTracker(store Store, systemDark bool) *Tracker {
	t := &Tracker{store: store, pref: System, systemDark: systemDark}
	if store != nil {
		if v, ok := store.Load(); ok {
			t.pref = Parse(v)
		}
	}
	return t
}

// Preference returns the current choice
func (t *Tracker) Preference() Preference {
	return t.pref
}

// FollowsSystem reports whether OS changes affect the applied theme
func (t *Tracker) FollowsSystem() bool {
	return t.pref == System
}

// Effective returns the theme to apply
func (t *Tracker) Effective() Theme {
	return Resolve(t.pref, t.systemDark)
}

// SystemChanged records a new OS color scheme and returns the theme to
// apply. An explicit preference is not affected.
func (t *Tracker) SystemChanged(dark bool) Theme {
	t.systemDark = dark
	return t.Effective()
}

// Select stores p and returns the theme to apply. Selecting System
// resumes following the OS.
func (t *Tracker) Select(p Preference) (Theme, error) {
	t.pref = Parse(string(p))
	if t.store != nil {
		if err := t.store.Save(string(t.pref)); err != nil {
			return t.Effective(), err
		}
	}
	return t.Effective(), nil
}

// MemoryStore keeps the preference in memory
type MemoryStore struct {
	value string
	set   bool
}

// Load implements Store
func (m *MemoryStore) Load() (string, bool) {
	return m.value, m.set
}

// Save implements Store
func (m *MemoryStore) Save(value string) error {
	m.value = value
	m.set = true
	return nil
}
