package voicing

import (
	"fmt"

	"github.com/filipedeo/fretboard-api/internal/fretboard"
)

// RootLabel marks the root element of a shape
const RootLabel = "R"

// Chord tone sets (semitones from the root) per shape quality
var qualityIntervals = map[string][]int{
	"major":            {0, 4, 7},
	"minor":            {0, 3, 7},
	"diminished":       {0, 3, 6},
	"augmented":        {0, 4, 8},
	"dominant7":        {0, 4, 7, 10},
	"major7":           {0, 4, 7, 11},
	"minor7":           {0, 3, 7, 10},
	"half-diminished7": {0, 3, 6, 10},
	"diminished7":      {0, 3, 6, 9},
}

// Offset places one chord tone relative to the anchor fret
type Offset struct {
	String fretboard.Role `json:"string"`
	Fret   int            `json:"fret"`
}

// Shape is a movable voicing: parallel lists of offsets and interval labels
type Shape struct {
	Name      string   `json:"name"`
	Quality   string   `json:"quality"`
	Inversion string   `json:"inversion"`
	StringSet string   `json:"string_set"`
	Offsets   []Offset `json:"offsets"`
	Intervals []string `json:"intervals"`
}

// Validate checks the shape invariants: parallel lists of equal length,
// exactly one root, known interval labels that belong to the quality.
func (s Shape) Validate() error {
	if len(s.Offsets) == 0 {
		return fmt.Errorf("shape %q has no offsets", s.Name)
	}
	if len(s.Offsets) != len(s.Intervals) {
		return fmt.Errorf("shape %q has %d offsets but %d interval labels", s.Name, len(s.Offsets), len(s.Intervals))
	}

	roots := 0
	allowed := qualityIntervals[s.Quality]
	for i, label := range s.Intervals {
		if label == RootLabel {
			roots++
		}
		semis := fretboard.IntervalSemitones(label)
		if semis < 0 {
			return fmt.Errorf("shape %q element %d: unknown interval %q", s.Name, i, label)
		}
		if allowed != nil && !containsInt(allowed, semis) {
			return fmt.Errorf("shape %q element %d: %q is not a %s chord tone", s.Name, i, label, s.Quality)
		}
	}
	if roots != 1 {
		return fmt.Errorf("shape %q must have exactly one root, has %d", s.Name, roots)
	}
	return nil
}

// RootIndex returns the index of the root element, -1 if there is none
func (s Shape) RootIndex() int {
	for i, label := range s.Intervals {
		if label == RootLabel {
			return i
		}
	}
	return -1
}

// MinFretOffset is the lowest fret offset of the shape
func (s Shape) MinFretOffset() int {
	if len(s.Offsets) == 0 {
		return 0
	}
	lowest := s.Offsets[0].Fret
	for _, o := range s.Offsets[1:] {
		if o.Fret < lowest {
			lowest = o.Fret
		}
	}
	return lowest
}

// MaxFretOffset is the highest fret offset of the shape
func (s Shape) MaxFretOffset() int {
	if len(s.Offsets) == 0 {
		return 0
	}
	highest := s.Offsets[0].Fret
	for _, o := range s.Offsets[1:] {
		if o.Fret > highest {
			highest = o.Fret
		}
	}
	return highest
}

// QualityIntervals returns the chord tones of a quality
func QualityIntervals(quality string) ([]int, bool) {
	iv, ok := qualityIntervals[quality]
	if !ok {
		return nil, false
	}
	out := make([]int, len(iv))
	copy(out, iv)
	return out, true
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
