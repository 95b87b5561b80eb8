package models

import (
	"github.com/filipedeo/fretboard-api/internal/progression"
	"github.com/filipedeo/fretboard-api/internal/voicing"
)

// VoicingResolveRequest anchors a voicing shape in a key
type VoicingResolveRequest struct {
	TuningSelector
	Key   string `json:"key" binding:"required"`
	Shape string `json:"shape" binding:"required"`
}

// VoicingResponse is a resolved voicing
type VoicingResponse struct {
	Tuning  string          `json:"tuning"`
	Voicing voicing.Voicing `json:"voicing"`
}

// ProgressionRequest builds chords from degrees or a named preset
type ProgressionRequest struct {
	TuningSelector
	Key        string               `json:"key" binding:"required"`
	Degrees    []progression.Degree `json:"degrees,omitempty"`
	Preset     string               `json:"preset,omitempty"`
	ChordTones bool                 `json:"chord_tones,omitempty"` // include fretboard positions per chord
	Strings    int                  `json:"strings,omitempty"`
	MaxFret    int                  `json:"max_fret,omitempty"`
}

// ChordResponse is one chord with optional fretboard tones
type ChordResponse struct {
	progression.Chord
	Tones []progression.ChordTone `json:"tones,omitempty"`
}

// ProgressionResponse lists the resolved chords
type ProgressionResponse struct {
	Key    string          `json:"key"`
	Chords []ChordResponse `json:"chords"`
}

// ProgressionMIDIRequest renders a progression as a Standard MIDI File
type ProgressionMIDIRequest struct {
	Key           string               `json:"key" binding:"required"`
	Degrees       []progression.Degree `json:"degrees,omitempty"`
	Preset        string               `json:"preset,omitempty"`
	BPM           float64              `json:"bpm,omitempty"`
	Octave        int                  `json:"octave,omitempty"`
	BeatsPerChord int                  `json:"beats_per_chord,omitempty"`
}
