package progression

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/theory"
)

// Quality of a triad
type Quality string

const (
	Major      Quality = "maj"
	Minor      Quality = "min"
	Diminished Quality = "dim"
)

var qualityIntervals = map[Quality][]int{
	Major:      {0, 4, 7},
	Minor:      {0, 3, 7},
	Diminished: {0, 3, 6},
}

// Diatonic triads of the major scale, indexed by degree - 1
var diatonic = [7]struct {
	semitones int
	quality   Quality
	numeral   string
}{
	{0, Major, "I"},
	{2, Minor, "ii"},
	{4, Minor, "iii"},
	{5, Major, "IV"},
	{7, Major, "V"},
	{9, Minor, "vi"},
	{11, Diminished, "vii°"},
}

// Chords borrowed from outside the key, by token
var borrowed = map[string]struct {
	semitones int
	quality   Quality
	numeral   string
}{
	"b7": {10, Major, "bVII"},
	"4m": {5, Minor, "iv"},
	"b2": {1, Major, "bII"},
	"b3": {3, Major, "bIII"},
	"b6": {8, Major, "bVI"},
	"1m": {0, Minor, "i"},
	"5m": {7, Minor, "v"},
}

// Degree is a progression step: a scale degree "1".."7" or a borrowed-chord
// token such as "b7". JSON accepts either a number or a string.
type Degree string

// UnmarshalJSON accepts 4 as well as "4" or "b7"
func (d *Degree) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Degree(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("degree must be a number or string: %w", err)
	}
	*d = Degree(n.String())
	return nil
}

// Degrees converts plain numbers to degree tokens
func Degrees(steps ...int) []Degree {
	out := make([]Degree, len(steps))
	for i, s := range steps {
		out[i] = Degree(strconv.Itoa(s))
	}
	return out
}

// ParseDegrees converts string tokens to degrees
func ParseDegrees(tokens []string) []Degree {
	out := make([]Degree, len(tokens))
	for i, t := range tokens {
		out[i] = Degree(strings.TrimSpace(t))
	}
	return out
}

// Chord is one resolved progression step
type Chord struct {
	Degree    Degree  `json:"degree"`
	Root      string  `json:"root"`
	Quality   Quality `json:"quality"`
	Numeral   string  `json:"numeral"`
	Intervals []int   `json:"intervals"`
}

// resolve maps a token to its offset from the tonic and quality. Unknown
// tokens fall back to the tonic major triad and report false.
func resolve(d Degree) (semitones int, quality Quality, numeral string, known bool) {
	token := strings.ToLower(strings.TrimSpace(string(d)))
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= 7 {
		step := diatonic[n-1]
		return step.semitones, step.quality, step.numeral, true
	}
	if b, ok := borrowed[token]; ok {
		return b.semitones, b.quality, b.numeral, true
	}
	return 0, Major, diatonic[0].numeral, false
}

// IsKnown reports whether the token resolves without falling back
func IsKnown(d Degree) bool {
	_, _, _, known := resolve(d)
	return known
}

// BuildProgressionChords resolves each degree against the key, preserving
// order. Roots are spelled with sharps. Nil when the key is not a pitch.
func BuildProgressionChords(key string, degrees []Degree) []Chord {
	keyPC := theory.Chroma(key)
	if keyPC < 0 {
		return nil
	}

	chords := make([]Chord, 0, len(degrees))
	for _, d := range degrees {
		semis, quality, numeral, _ := resolve(d)
		intervals := make([]int, len(qualityIntervals[quality]))
		copy(intervals, qualityIntervals[quality])
		chords = append(chords, Chord{
			Degree:    d,
			Root:      theory.PitchClassName((keyPC + semis) % 12),
			Quality:   quality,
			Numeral:   numeral,
			Intervals: intervals,
		})
	}
	return chords
}

// Numerals returns the Roman numeral of each degree
func Numerals(degrees []Degree) []string {
	out := make([]string, len(degrees))
	for i, d := range degrees {
		_, _, out[i], _ = resolve(d)
	}
	return out
}

// ChordTone is a fretboard position holding a chord tone
type ChordTone struct {
	fretboard.Position
	Interval string `json:"interval"`
}

// ChordTones lists every position in range sounding a tone of the chord,
// labelled by its interval from the chord root. Ordered string-major.
func ChordTones(chord Chord, t fretboard.Tuning, stringCount, maxFret int) []ChordTone {
	rootPC := theory.Chroma(chord.Root)
	if rootPC < 0 {
		return nil
	}
	var tones [12]bool
	for _, iv := range chord.Intervals {
		tones[((iv%12)+12)%12] = true
	}

	stringCount = t.ClampStrings(stringCount)
	var out []ChordTone
	for s := 0; s < stringCount; s++ {
		for f := 0; f <= maxFret; f++ {
			pos := fretboard.At(s, f)
			pc := fretboard.ChromaAt(pos, t)
			if pc < 0 {
				continue
			}
			iv := ((pc-rootPC)%12 + 12) % 12
			if !tones[iv] {
				continue
			}
			pos.Note = fretboard.NoteAt(pos, t)
			out = append(out, ChordTone{Position: pos, Interval: fretboard.IntervalLabels[iv]})
		}
	}
	return out
}
