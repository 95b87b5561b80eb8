package patterns

import (
	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/theory"
)

// ExtensionPositions grows a pentatonic box into its parent mode (aeolian for
// minor, ionian for major) by adding the two missing tones around the box.
func (g *Generator) ExtensionPositions(box []fretboard.Position, key, scaleType string, t fretboard.Tuning, stringCount int) []fretboard.Position {
	pt, ok := lookupPentatonic(scaleType)
	if !ok {
		return nil
	}
	return g.ExtensionToMode(box, key, scaleType, pt.parent, t, stringCount)
}

// ExtensionToMode adds the tones of parentMode that the pentatonic lacks,
// scanning every string over the box's fret range widened by one fret on
// each side. Results are ordered string-major, fret ascending.
func (g *Generator) ExtensionToMode(box []fretboard.Position, key, scaleType, parentMode string, t fretboard.Tuning, stringCount int) []fretboard.Position {
	pt, ok := lookupPentatonic(scaleType)
	if !ok {
		return nil
	}
	pent, ok := g.pitchClasses(key, pt.scale)
	if !ok {
		return nil
	}
	parent, ok := g.pitchClasses(key, parentMode)
	if !ok {
		return nil
	}
	extra := parent.minus(pent)
	if extra.size() == 0 {
		return nil
	}

	lo, hi, ok := FretRange(box)
	if !ok {
		return nil
	}
	lo, hi = max(lo-1, 0), min(hi+1, fretboard.MaxFret)

	stringCount = t.ClampStrings(stringCount)
	var positions []fretboard.Position
	for s := 0; s < stringCount; s++ {
		for f := lo; f <= hi; f++ {
			pos := fretboard.At(s, f)
			if extra.has(fretboard.ChromaAt(pos, t)) {
				positions = append(positions, pos)
			}
		}
	}
	return fretboard.Annotate(positions, t)
}

// ExtensionPitchClasses lists the pitch classes ExtensionToMode would add
func (g *Generator) ExtensionPitchClasses(key, scaleType, parentMode string) []int {
	pt, ok := lookupPentatonic(scaleType)
	if !ok {
		return nil
	}
	pent, ok := g.pitchClasses(key, pt.scale)
	if !ok {
		return nil
	}
	parent, ok := g.pitchClasses(key, parentMode)
	if !ok {
		return nil
	}
	var out []int
	for pc, in := range parent.minus(pent) {
		if in {
			out = append(out, pc)
		}
	}
	return out
}

// CharacteristicPositions filters a pattern down to the positions carrying
// the mode's characteristic degree, the tone that sets it apart from its
// neighbours. Nil when the mode is not in the catalog.
func (g *Generator) CharacteristicPositions(key, mode string, pattern []fretboard.Position, t fretboard.Tuning) []fretboard.Position {
	if g.modes == nil {
		return nil
	}
	m, ok := g.modes.Mode(mode)
	if !ok {
		return nil
	}
	notes := g.scales.ScaleNotes(key, m.Name)
	if m.CharacteristicDegree >= len(notes) {
		return nil
	}
	target := theory.Chroma(notes[m.CharacteristicDegree])
	if target < 0 {
		return nil
	}

	var out []fretboard.Position
	for _, p := range pattern {
		if fretboard.ChromaAt(p, t) == target {
			p.Note = fretboard.NoteAt(p, t)
			out = append(out, p)
		}
	}
	return out
}
