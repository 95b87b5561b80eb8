package patterns

import (
	"math"

	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/theory"
)

// BoxCount is the number of conventional pentatonic boxes
const BoxCount = 5

const (
	// Reference frets above this wrap down an octave
	boxWrapFret = 12
	// Window for the first fret of a pair, relative to the reference fret
	windowBelow = 1
	windowAbove = 4
	// Fallback search: widest pair and midpoint bias
	fallbackSpan = 5
	fallbackBias = 1.5
)

type pentatonicType struct {
	scale  string
	parent string
}

var pentatonicTypes = map[string]pentatonicType{
	"minor":            {scale: "minor pentatonic", parent: "aeolian"},
	"minor pentatonic": {scale: "minor pentatonic", parent: "aeolian"},
	"major":            {scale: "major pentatonic", parent: "ionian"},
	"major pentatonic": {scale: "major pentatonic", parent: "ionian"},
}

func lookupPentatonic(scaleType string) (pentatonicType, bool) {
	pt, ok := pentatonicTypes[theory.NormalizeScaleName(scaleType)]
	return pt, ok
}

// IsPentatonicType reports whether the scale type names a supported pentatonic
func IsPentatonicType(scaleType string) bool {
	_, ok := lookupPentatonic(scaleType)
	return ok
}

// pairStrategy picks two consecutive scale frets on one string for a box
// anchored at ref. ok is false when the strategy finds nothing.
type pairStrategy func(frets []int, ref int) (pair [2]int, ok bool)

// Strategies in the order they are tried
var pairStrategies = []pairStrategy{windowedPair, nearestPair}

// windowedPair takes the pair whose first fret lies in [ref-1, ref+4],
// preferring the first fret closest to ref; earlier pairs win ties.
func windowedPair(frets []int, ref int) ([2]int, bool) {
	var best [2]int
	bestDist := -1
	for i := 0; i+1 < len(frets); i++ {
		first := frets[i]
		if first < ref-windowBelow || first > ref+windowAbove {
			continue
		}
		dist := first - ref
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = [2]int{first, frets[i+1]}, dist
		}
	}
	return best, bestDist >= 0
}

// nearestPair takes the pair spanning at most five frets whose midpoint is
// closest to ref+1.5, anywhere on the string.
func nearestPair(frets []int, ref int) ([2]int, bool) {
	var best [2]int
	bestScore := math.Inf(1)
	goal := float64(ref) + fallbackBias
	for i := 0; i+1 < len(frets); i++ {
		lo, hi := frets[i], frets[i+1]
		if hi-lo > fallbackSpan {
			continue
		}
		if score := math.Abs(float64(lo+hi)/2 - goal); score < bestScore {
			best, bestScore = [2]int{lo, hi}, score
		}
	}
	return best, !math.IsInf(bestScore, 1)
}

func choosePair(frets []int, ref int, strategies []pairStrategy) ([2]int, bool) {
	for _, strategy := range strategies {
		if pair, ok := strategy(frets, ref); ok {
			return pair, true
		}
	}
	return [2]int{}, false
}

// BoxReferenceFret locates the anchor fret of a box on the lowest string: the
// (root + box)-th pentatonic fret there, wrapped down an octave above fret 12.
func (g *Generator) BoxReferenceFret(key, scaleType string, box int, t fretboard.Tuning) (int, bool) {
	pt, ok := lookupPentatonic(scaleType)
	if !ok || box < 0 || box >= BoxCount || t.Len() == 0 {
		return 0, false
	}
	set, ok := g.pitchClasses(key, pt.scale)
	if !ok {
		return 0, false
	}
	return referenceFret(t, set, theory.Chroma(key), box)
}

func referenceFret(t fretboard.Tuning, set pitchSet, rootPC, box int) (int, bool) {
	frets := scaleFrets(t, 0, set)
	rootIndex := -1
	for i, f := range frets {
		if fretboard.ChromaAt(fretboard.At(0, f), t) == rootPC {
			rootIndex = i
			break
		}
	}
	if rootIndex < 0 || rootIndex+box >= len(frets) {
		return 0, false
	}
	ref := frets[rootIndex+box]
	if ref > boxWrapFret {
		ref -= 12
	}
	return ref, true
}

// PentatonicBox returns one of the five pentatonic boxes: two consecutive
// scale tones per string near the box's reference fret. Returns nil for an
// unknown scale type, an out-of-range box index or an invalid key.
func (g *Generator) PentatonicBox(key, scaleType string, box int, t fretboard.Tuning, stringCount int) []fretboard.Position {
	pt, ok := lookupPentatonic(scaleType)
	if !ok || box < 0 || box >= BoxCount {
		return nil
	}
	set, ok := g.pitchClasses(key, pt.scale)
	if !ok {
		return nil
	}
	ref, ok := referenceFret(t, set, theory.Chroma(key), box)
	if !ok {
		return nil
	}

	stringCount = t.ClampStrings(stringCount)
	var positions []fretboard.Position
	for s := 0; s < stringCount; s++ {
		pair, ok := choosePair(scaleFrets(t, s, set), ref, pairStrategies)
		if !ok {
			continue
		}
		positions = append(positions, fretboard.At(s, pair[0]), fretboard.At(s, pair[1]))
	}
	return fretboard.Annotate(positions, t)
}

// Boxes returns all five boxes in index order
func (g *Generator) Boxes(key, scaleType string, t fretboard.Tuning, stringCount int) [][]fretboard.Position {
	if !IsPentatonicType(scaleType) {
		return nil
	}
	boxes := make([][]fretboard.Position, BoxCount)
	for i := range boxes {
		boxes[i] = g.PentatonicBox(key, scaleType, i, t, stringCount)
	}
	return boxes
}
