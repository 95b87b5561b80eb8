package voicing

import (
	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/theory"
)

const (
	// Lowest anchor fret for movable shapes; keeps them off the nut
	minRootFret = 1
	// Highest anchor fret; low enough that every offset stays on the neck
	maxRootFret = 14
)

// Voicing is a shape anchored for a specific key
type Voicing struct {
	Shape     string               `json:"shape"`
	Key       string               `json:"key"`
	RootFret  int                  `json:"root_fret"`
	Positions []fretboard.Position `json:"positions"`
	Intervals []string             `json:"intervals"`
}

// ComputeRootFret finds the anchor fret at which the shape's root sounds the
// key's pitch class. The result is the lowest candidate at or above
// max(1, -min offset, 1 - root offset), which lands at or below 14 for every
// shape whose offsets stay within three frets below the anchor.
// False when the key is invalid, the shape has no root, or the root's string
// does not exist on the tuning.
func ComputeRootFret(key string, shape Shape, t fretboard.Tuning, roles fretboard.StringMap) (int, bool) {
	keyPC := theory.Chroma(key)
	if keyPC < 0 {
		return 0, false
	}
	root := shape.RootIndex()
	if root < 0 || root >= len(shape.Offsets) {
		return 0, false
	}

	rootOffset := shape.Offsets[root]
	idx, ok := roles.Index(rootOffset.String)
	if !ok {
		return 0, false
	}
	open, ok := t.Open(idx)
	if !ok {
		return 0, false
	}
	openPC := theory.Chroma(open)
	if openPC < 0 {
		return 0, false
	}

	distance := mod12(keyPC - openPC)
	candidate := distance - rootOffset.Fret

	floor := minRootFret
	if -shape.MinFretOffset() > floor {
		floor = -shape.MinFretOffset()
	}
	if minRootFret-rootOffset.Fret > floor {
		floor = minRootFret - rootOffset.Fret
	}

	fret := floor + mod12(candidate-floor)
	for fret > maxRootFret && fret-12 >= floor {
		fret -= 12
	}
	return fret, true
}

// Resolve anchors a shape for the key and returns every position of it.
// False when any of the shape's strings is missing on the tuning or a fret
// would fall off the neck.
func Resolve(key string, shape Shape, t fretboard.Tuning, roles fretboard.StringMap) (Voicing, bool) {
	rootFret, ok := ComputeRootFret(key, shape, t, roles)
	if !ok {
		return Voicing{}, false
	}

	positions := make([]fretboard.Position, 0, len(shape.Offsets))
	for _, o := range shape.Offsets {
		idx, ok := roles.Index(o.String)
		if !ok || idx >= t.Len() {
			return Voicing{}, false
		}
		fret := rootFret + o.Fret
		if fret < 0 || fret > fretboard.MaxFret {
			return Voicing{}, false
		}
		positions = append(positions, fretboard.At(idx, fret))
	}

	intervals := make([]string, len(shape.Intervals))
	copy(intervals, shape.Intervals)

	return Voicing{
		Shape:     shape.Name,
		Key:       key,
		RootFret:  rootFret,
		Positions: fretboard.Annotate(positions, t),
		Intervals: intervals,
	}, true
}

func mod12(v int) int {
	return ((v % 12) + 12) % 12
}
