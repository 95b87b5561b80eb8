package theory

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	semitonesPerOctave = 12
	minMIDI            = 0
	maxMIDI            = 127
)

// letterOrder is the cyclic order of natural note letters used for spelling
const letterOrder = "CDEFGAB"

// Natural note semitone offsets from C
var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var sharpNames = [semitonesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is a parsed pitch name such as "E2", "Bb", "F##3" or "Cb4".
type Note struct {
	Letter     byte // 'A'..'G'
	Accidental int  // +1 per sharp, -1 per flat
	Octave     int
	HasOctave  bool
}

// ParseNote parses a note name. Format: <letter><accidentals?><octave?> where
//   - letter: A-G (case insensitive)
//   - accidentals: any run of '#' (sharp) or 'b' (flat)
//   - octave: optional integer, may be negative (C4 = 60 = middle C)
func ParseNote(name string) (Note, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return Note{}, fmt.Errorf("empty note name")
	}

	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	if _, ok := letterSemitones[letter]; !ok {
		return Note{}, fmt.Errorf("invalid note letter in %q", name)
	}

	n := Note{Letter: letter}
	idx := 1
accidentals:
	for ; idx < len(s); idx++ {
		switch s[idx] {
		case '#':
			n.Accidental++
		case 'b':
			n.Accidental--
		default:
			break accidentals
		}
	}

	if idx < len(s) {
		octave, err := strconv.Atoi(s[idx:])
		if err != nil {
			return Note{}, fmt.Errorf("invalid octave in note name %q: %w", name, err)
		}
		n.Octave = octave
		n.HasOctave = true
	}

	return n, nil
}

// Chroma returns the pitch class of the note (0=C ... 11=B)
func (n Note) Chroma() int {
	return mod12(letterSemitones[n.Letter] + n.Accidental)
}

// MIDI returns the MIDI number of the note. The second result is false when
// the note has no octave or falls outside 0-127.
func (n Note) MIDI() (int, bool) {
	if !n.HasOctave {
		return 0, false
	}
	m := (n.Octave+1)*semitonesPerOctave + letterSemitones[n.Letter] + n.Accidental
	if m < minMIDI || m > maxMIDI {
		return 0, false
	}
	return m, true
}

// PitchClass returns the name without its octave, keeping the original spelling
func (n Note) PitchClass() string {
	return string(n.Letter) + accidentalString(n.Accidental)
}

func (n Note) String() string {
	if !n.HasOctave {
		return n.PitchClass()
	}
	return n.PitchClass() + strconv.Itoa(n.Octave)
}

// Chroma returns the pitch class (0-11) of a note name, or -1 when the name
// cannot be parsed. Every pitch comparison in the engine goes through here:
// spelled names are never compared as strings.
func Chroma(name string) int {
	n, err := ParseNote(name)
	if err != nil {
		return -1
	}
	return n.Chroma()
}

// MIDI converts a note name with octave ("E2", "C#4", "Bb3") to its MIDI number
func MIDI(name string) (int, bool) {
	n, err := ParseNote(name)
	if err != nil {
		return 0, false
	}
	return n.MIDI()
}

// FromMIDI returns the sharp spelling of a MIDI number, e.g. 58 -> "A#3".
// Out of range numbers yield "".
func FromMIDI(m int) string {
	if m < minMIDI || m > maxMIDI {
		return ""
	}
	return sharpNames[m%semitonesPerOctave] + strconv.Itoa(m/semitonesPerOctave-1)
}

// PitchClassName returns the sharp spelling of a pitch class without octave
func PitchClassName(pc int) string {
	return sharpNames[mod12(pc)]
}

// Transpose moves a note by the given number of semitones. Names with an
// octave are transposed through MIDI numbers; bare pitch classes wrap around.
// Invalid input yields "".
func Transpose(name string, semitones int) string {
	n, err := ParseNote(name)
	if err != nil {
		return ""
	}
	if m, ok := n.MIDI(); ok {
		return FromMIDI(m + semitones)
	}
	if n.HasOctave {
		return ""
	}
	return PitchClassName(n.Chroma() + semitones)
}

// SameChroma reports whether two note names share a pitch class
func SameChroma(a, b string) bool {
	ca := Chroma(a)
	return ca >= 0 && ca == Chroma(b)
}

func accidentalString(acc int) string {
	if acc > 0 {
		return strings.Repeat("#", acc)
	}
	return strings.Repeat("b", -acc)
}

func mod12(v int) int {
	return ((v % semitonesPerOctave) + semitonesPerOctave) % semitonesPerOctave
}
