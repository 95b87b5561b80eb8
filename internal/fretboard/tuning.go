package fretboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/filipedeo/fretboard-api/internal/theory"
)

// MaxFret is the highest fret any algorithm scans
const MaxFret = 22

// Tuning is an ordered list of open-string pitches, index 0 = lowest string.
// Tunings are immutable: changing instrument or string count builds a new one.
type Tuning struct {
	name  string
	notes []string
}

// NewTuning validates the open-string pitches (each must carry an octave)
func NewTuning(name string, notes ...string) (Tuning, error) {
	if len(notes) == 0 {
		return Tuning{}, fmt.Errorf("tuning %q has no strings", name)
	}
	cp := make([]string, len(notes))
	for i, n := range notes {
		parsed, err := theory.ParseNote(n)
		if err != nil {
			return Tuning{}, fmt.Errorf("tuning %q string %d: %w", name, i, err)
		}
		if _, ok := parsed.MIDI(); !ok {
			return Tuning{}, fmt.Errorf("tuning %q string %d: %q needs an octave in MIDI range", name, i, n)
		}
		cp[i] = strings.TrimSpace(n)
	}
	return Tuning{name: name, notes: cp}, nil
}

// MustTuning is NewTuning for package-level presets
func MustTuning(name string, notes ...string) Tuning {
	t, err := NewTuning(name, notes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the preset name, or "custom"
func (t Tuning) Name() string {
	if t.name == "" {
		return "custom"
	}
	return t.name
}

// Len returns the string count
func (t Tuning) Len() int {
	return len(t.notes)
}

// Open returns the open pitch of a string; false when out of range
func (t Tuning) Open(str int) (string, bool) {
	if str < 0 || str >= len(t.notes) {
		return "", false
	}
	return t.notes[str], true
}

// Notes returns a copy of the open-string pitches
func (t Tuning) Notes() []string {
	cp := make([]string, len(t.notes))
	copy(cp, t.notes)
	return cp
}

// ClampStrings bounds a requested string count to the tuning. Zero or
// negative means "all strings".
func (t Tuning) ClampStrings(stringCount int) int {
	if stringCount <= 0 || stringCount > len(t.notes) {
		return len(t.notes)
	}
	return stringCount
}

// Presets keyed by instrument name
var presets = map[string]Tuning{
	"guitar":        MustTuning("guitar", "E2", "A2", "D3", "G3", "B3", "E4"),
	"guitar-drop-d": MustTuning("guitar-drop-d", "D2", "A2", "D3", "G3", "B3", "E4"),
	"guitar-dadgad": MustTuning("guitar-dadgad", "D2", "A2", "D3", "G3", "A3", "D4"),
	"guitar-7":      MustTuning("guitar-7", "B1", "E2", "A2", "D3", "G3", "B3", "E4"),
	"guitar-8":      MustTuning("guitar-8", "F#1", "B1", "E2", "A2", "D3", "G3", "B3", "E4"),
	"bass":          MustTuning("bass", "E1", "A1", "D2", "G2"),
	"bass-5":        MustTuning("bass-5", "B0", "E1", "A1", "D2", "G2"),
}

// Standard returns the standard six-string guitar tuning
func Standard() Tuning {
	return presets["guitar"]
}

// Lookup returns a preset tuning by instrument name
func Lookup(name string) (Tuning, bool) {
	t, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// PresetNames lists the instrument presets, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
