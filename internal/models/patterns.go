package models

import (
	"github.com/filipedeo/fretboard-api/internal/fretboard"
)

// NotesPerStringRequest asks for a K-notes-per-string pattern
type NotesPerStringRequest struct {
	TuningSelector
	Key            string `json:"key" binding:"required"`
	Mode           string `json:"mode" binding:"required"`
	Strings        int    `json:"strings,omitempty"`
	SeedFret       int    `json:"seed_fret"`
	NotesPerString int    `json:"notes_per_string,omitempty"` // 3 when omitted
	Characteristic bool   `json:"characteristic,omitempty"`   // also return the mode's colour tones
}

// PentatonicBoxRequest asks for one pentatonic box or all five
type PentatonicBoxRequest struct {
	TuningSelector
	Key       string `json:"key" binding:"required"`
	ScaleType string `json:"scale_type" binding:"required"` // "minor" or "major"
	Box       *int   `json:"box,omitempty"`                 // all five boxes when omitted
	Strings   int    `json:"strings,omitempty"`
	Extend    bool   `json:"extend,omitempty"`    // add the parent mode's missing tones
	ExtendTo  string `json:"extend_to,omitempty"` // explicit parent mode, e.g. "dorian"
}

// PatternResponse is a computed pattern
type PatternResponse struct {
	Key             string               `json:"key"`
	Mode            string               `json:"mode"`
	Tuning          string               `json:"tuning"`
	Strings         int                  `json:"strings"`
	Positions       []fretboard.Position `json:"positions"`
	DegradedStrings []int                `json:"degraded_strings,omitempty"`
	Characteristic  []fretboard.Position `json:"characteristic,omitempty"`
}

// BoxResponse is one pentatonic box
type BoxResponse struct {
	Box             int                  `json:"box"`
	ReferenceFret   int                  `json:"reference_fret"`
	Positions       []fretboard.Position `json:"positions"`
	Extension       []fretboard.Position `json:"extension,omitempty"`
	DegradedStrings []int                `json:"degraded_strings,omitempty"`
}

// PentatonicResponse holds the requested boxes
type PentatonicResponse struct {
	Key       string        `json:"key"`
	ScaleType string        `json:"scale_type"`
	Tuning    string        `json:"tuning"`
	Strings   int           `json:"strings"`
	Boxes     []BoxResponse `json:"boxes"`
}

// PatternMIDIRequest renders a notes-per-string pattern as MIDI
type PatternMIDIRequest struct {
	NotesPerStringRequest
	BPM float64 `json:"bpm,omitempty"`
}
