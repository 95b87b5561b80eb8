package patterns

import (
	"math"

	"github.com/filipedeo/fretboard-api/internal/fretboard"
)

// SpanLimit is the widest per-string stretch allowed for K notes per string
func SpanLimit(k int) int {
	switch k {
	case 3:
		return 5
	case 2:
		return 4
	default:
		return k + 2
	}
}

// run is K consecutive scale frets on one string
type run struct {
	frets []int
}

func (r run) min() int { return r.frets[0] }
func (r run) max() int { return r.frets[len(r.frets)-1] }

func (r run) mid() float64 {
	return float64(r.min()+r.max()) / 2
}

// KNotesPerString builds a pattern with k scale tones on each string. Strings
// are walked low to high; on each, the run of k consecutive scale frets whose
// midpoint sits closest to target+k/2 wins, and the target then moves up to the
// run's lowest fret. A string with no run inside the span limit is left empty.
// Returns nil for an unknown mode or a mode with fewer than k pitch classes.
func (g *Generator) KNotesPerString(key, mode string, t fretboard.Tuning, stringCount, seedFret, k int) []fretboard.Position {
	if k < 1 {
		return nil
	}
	set, ok := g.pitchClasses(key, mode)
	if !ok || set.size() < k {
		return nil
	}

	stringCount = t.ClampStrings(stringCount)
	limit := SpanLimit(k)
	bias := float64(k) / 2
	target := seedFret

	var positions []fretboard.Position
	for s := 0; s < stringCount; s++ {
		best, found := bestRun(scaleFrets(t, s, set), k, limit, float64(target)+bias)
		if !found {
			continue
		}
		for _, f := range best.frets {
			positions = append(positions, fretboard.At(s, f))
		}
		if best.min() > target {
			target = best.min()
		}
	}
	return fretboard.Annotate(positions, t)
}

// bestRun scores every run of k consecutive frets within the span limit and
// returns the first one with the smallest distance to the goal.
func bestRun(frets []int, k, limit int, goal float64) (run, bool) {
	var best run
	bestScore := math.Inf(1)
	for i := 0; i+k <= len(frets); i++ {
		r := run{frets: frets[i : i+k]}
		if r.max()-r.min() > limit {
			continue
		}
		if score := math.Abs(r.mid() - goal); score < bestScore {
			best, bestScore = r, score
		}
	}
	return best, !math.IsInf(bestScore, 1)
}

// ThreeNotesPerString is KNotesPerString with k = 3
func (g *Generator) ThreeNotesPerString(key, mode string, t fretboard.Tuning, stringCount, seedFret int) []fretboard.Position {
	return g.KNotesPerString(key, mode, t, stringCount, seedFret, 3)
}

// TwoNotesPerString is KNotesPerString with k = 2
func (g *Generator) TwoNotesPerString(key, mode string, t fretboard.Tuning, stringCount, seedFret int) []fretboard.Position {
	return g.KNotesPerString(key, mode, t, stringCount, seedFret, 2)
}
