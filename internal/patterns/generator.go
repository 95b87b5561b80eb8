package patterns

import (
	"github.com/filipedeo/fretboard-api/internal/catalog"
	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/theory"
)

// ModeLookup resolves catalog metadata for a mode name
type ModeLookup interface {
	Mode(name string) (catalog.Mode, bool)
}

// Generator computes fretboard patterns. It holds no state beyond its
// collaborators, so one instance can serve concurrent callers.
type Generator struct {
	scales theory.ScaleSource
	modes  ModeLookup
}

// NewGenerator creates a generator over a scale source and mode catalog
func NewGenerator(scales theory.ScaleSource, modes ModeLookup) *Generator {
	return &Generator{
		scales: scales,
		modes:  modes,
	}
}

// pitchSet is a set of pitch classes
type pitchSet [12]bool

func (s pitchSet) has(pc int) bool {
	return pc >= 0 && pc < 12 && s[pc]
}

func (s pitchSet) size() int {
	n := 0
	for _, in := range s {
		if in {
			n++
		}
	}
	return n
}

// minus returns the pitch classes of s that are not in other
func (s pitchSet) minus(other pitchSet) pitchSet {
	var out pitchSet
	for pc := range s {
		out[pc] = s[pc] && !other[pc]
	}
	return out
}

// pitchClasses resolves a scale to its pitch-class set. Spellings returned by
// the source are reduced to chroma so enharmonic variants compare equal.
func (g *Generator) pitchClasses(key, scale string) (pitchSet, bool) {
	var set pitchSet
	notes := g.scales.ScaleNotes(key, scale)
	if len(notes) == 0 {
		return set, false
	}
	for _, n := range notes {
		pc := theory.Chroma(n)
		if pc < 0 {
			continue
		}
		set[pc] = true
	}
	return set, set.size() > 0
}

// scaleFrets lists the frets 0..MaxFret on one string that belong to the set
func scaleFrets(t fretboard.Tuning, str int, set pitchSet) []int {
	var frets []int
	for f := 0; f <= fretboard.MaxFret; f++ {
		if set.has(fretboard.ChromaAt(fretboard.At(str, f), t)) {
			frets = append(frets, f)
		}
	}
	return frets
}

// StringCounts tallies positions per string index
func StringCounts(positions []fretboard.Position) map[int]int {
	counts := make(map[int]int)
	for _, p := range positions {
		counts[p.String]++
	}
	return counts
}

// ShortStrings lists the strings in [0, stringCount) holding fewer than want
// positions. These are the strings a search had to give up on.
func ShortStrings(positions []fretboard.Position, stringCount, want int) []int {
	counts := StringCounts(positions)
	var short []int
	for s := 0; s < stringCount; s++ {
		if counts[s] < want {
			short = append(short, s)
		}
	}
	return short
}

// FretRange returns the lowest and highest fret in the positions
func FretRange(positions []fretboard.Position) (lo, hi int, ok bool) {
	if len(positions) == 0 {
		return 0, 0, false
	}
	lo, hi = positions[0].Fret, positions[0].Fret
	for _, p := range positions[1:] {
		if p.Fret < lo {
			lo = p.Fret
		}
		if p.Fret > hi {
			hi = p.Fret
		}
	}
	return lo, hi, true
}
