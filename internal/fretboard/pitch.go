package fretboard

import (
	"github.com/filipedeo/fretboard-api/internal/theory"
)

// IntervalLabels are the canonical interval names indexed by semitone distance mod 12
var IntervalLabels = [12]string{"R", "b2", "2", "b3", "3", "4", "b5", "5", "b6", "6", "b7", "7"}

// Position is a (string, fret) pair, optionally annotated with its pitch
type Position struct {
	String int    `json:"string"`
	Fret   int    `json:"fret"`
	Note   string `json:"note,omitempty"`
}

// At builds an unannotated position
func At(str, fret int) Position {
	return Position{String: str, Fret: fret}
}

// NoteAt resolves a position to a pitch name with octave. The open-string
// pitch is returned unchanged at fret 0; other frets are transposed through
// MIDI numbers. Out-of-range strings or negative frets yield "".
func NoteAt(pos Position, t Tuning) string {
	open, ok := t.Open(pos.String)
	if !ok || pos.Fret < 0 {
		return ""
	}
	if pos.Fret == 0 {
		return open
	}
	m, ok := theory.MIDI(open)
	if !ok {
		return ""
	}
	return theory.FromMIDI(m + pos.Fret)
}

// MIDIAt returns the MIDI number sounding at a position
func MIDIAt(pos Position, t Tuning) (int, bool) {
	note := NoteAt(pos, t)
	if note == "" {
		return 0, false
	}
	return theory.MIDI(note)
}

// ChromaAt returns the pitch class at a position, -1 when unresolvable
func ChromaAt(pos Position, t Tuning) int {
	return theory.Chroma(NoteAt(pos, t))
}

// Annotate returns a copy of the positions with their pitch names filled in
func Annotate(positions []Position, t Tuning) []Position {
	out := make([]Position, len(positions))
	for i, p := range positions {
		p.Note = NoteAt(p, t)
		out[i] = p
	}
	return out
}

// PositionsFor lists every position whose pitch shares the pitch class,
// ordered string-major then fret ascending.
func PositionsFor(pitchClass int, t Tuning, stringCount, maxFret int) []Position {
	if pitchClass < 0 || pitchClass > 11 {
		return nil
	}
	stringCount = t.ClampStrings(stringCount)

	var out []Position
	for s := 0; s < stringCount; s++ {
		for f := 0; f <= maxFret; f++ {
			pos := At(s, f)
			if ChromaAt(pos, t) == pitchClass {
				pos.Note = NoteAt(pos, t)
				out = append(out, pos)
			}
		}
	}
	return out
}

// IntervalBetween labels the distance between two positions, octave-invariant.
// "" when either position cannot be resolved.
func IntervalBetween(a, b Position, t Tuning) string {
	ma, ok := MIDIAt(a, t)
	if !ok {
		return ""
	}
	mb, ok := MIDIAt(b, t)
	if !ok {
		return ""
	}
	dist := mb - ma
	if dist < 0 {
		dist = -dist
	}
	return IntervalLabels[dist%12]
}

// IntervalSemitones maps an interval label back to semitones; -1 if unknown
func IntervalSemitones(label string) int {
	for i, l := range IntervalLabels {
		if l == label {
			return i
		}
	}
	return -1
}
