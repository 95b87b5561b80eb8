package models

import (
	"github.com/filipedeo/fretboard-api/internal/fretboard"
)

// TuningSelector picks the instrument for a request: an explicit list of open
// pitches wins over a preset name; with neither the server default applies.
type TuningSelector struct {
	Instrument string   `json:"instrument,omitempty" form:"instrument"`
	Tuning     []string `json:"tuning,omitempty" form:"tuning"`
}

// TuningInfo describes a tuning preset
type TuningInfo struct {
	Name      string   `json:"name"`
	Notes     []string `json:"notes"`
	Strings   int      `json:"strings"`
	LowEIndex int      `json:"low_e_index"` // where six-string voicings start
}

// NoteQuery resolves one position
type NoteQuery struct {
	TuningSelector
	String int `form:"string"`
	Fret   int `form:"fret"`
}

// NoteResponse is the pitch at a position
type NoteResponse struct {
	Position fretboard.Position `json:"position"`
	MIDI     int                `json:"midi"`
	Chroma   int                `json:"chroma"`
}

// PositionsQuery finds every position of a pitch class
type PositionsQuery struct {
	TuningSelector
	Note    string `form:"note" binding:"required"`
	Strings int    `form:"strings"`
	MaxFret int    `form:"max_fret"`
}

// PositionsResponse lists positions of one pitch class
type PositionsResponse struct {
	Note      string               `json:"note"`
	Chroma    int                  `json:"chroma"`
	Positions []fretboard.Position `json:"positions"`
}

// IntervalQuery labels the distance between two positions
type IntervalQuery struct {
	TuningSelector
	FromString int `form:"from_string"`
	FromFret   int `form:"from_fret"`
	ToString   int `form:"to_string"`
	ToFret     int `form:"to_fret"`
}

// IntervalResponse is an interval label between two positions
type IntervalResponse struct {
	From     fretboard.Position `json:"from"`
	To       fretboard.Position `json:"to"`
	Interval string             `json:"interval"`
}
