package theory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Semitone offsets of the major scale degrees 1-7
var majorScaleSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// maxSpelledAccidentals is the largest accidental run used when spelling by letter.
// Beyond it the sharp spelling of the pitch class is used instead.
const maxSpelledAccidentals = 2

// Scale formulas by normalized name. Aliases share a formula.
var scaleFormulas = map[string]string{
	// Diatonic modes
	"major":      "1-2-3-4-5-6-7",
	"ionian":     "1-2-3-4-5-6-7",
	"dorian":     "1-2-b3-4-5-6-b7",
	"phrygian":   "1-b2-b3-4-5-b6-b7",
	"lydian":     "1-2-3-#4-5-6-7",
	"mixolydian": "1-2-3-4-5-6-b7",
	"minor":      "1-2-b3-4-5-b6-b7",
	"aeolian":    "1-2-b3-4-5-b6-b7",
	"locrian":    "1-b2-b3-4-b5-b6-b7",

	// Harmonic minor family
	"harmonic minor":    "1-2-b3-4-5-b6-7",
	"phrygian dominant": "1-b2-3-4-5-b6-b7",

	// Melodic minor family
	"melodic minor":    "1-2-b3-4-5-6-7",
	"dorian b2":        "1-b2-b3-4-5-6-b7",
	"lydian augmented": "1-2-3-#4-#5-6-7",
	"lydian dominant":  "1-2-3-#4-5-6-b7",
	"mixolydian b6":    "1-2-3-4-5-b6-b7",
	"locrian #2":       "1-2-b3-4-b5-b6-b7",
	"altered":          "1-b2-#2-3-#4-b6-b7",

	// Symmetric
	"whole tone":            "1-2-3-#4-#5-b7",
	"diminished":            "1-2-b3-4-b5-b6-6-7",
	"half-whole diminished": "1-b2-#2-3-#4-5-6-b7",
	"chromatic":             "1-b2-2-b3-3-4-b5-5-b6-6-b7-7",

	// Other
	"major pentatonic": "1-2-3-5-6",
	"minor pentatonic": "1-b3-4-5-b7",
	"blues":            "1-b3-4-b5-5-b7",
}

var scaleAliases = map[string]string{
	"natural minor": "minor",
	"whole-tone":    "whole tone",
	"wholetone":     "whole tone",
	"whole-half":    "diminished",
	"half-whole":    "half-whole diminished",
	"super locrian": "altered",
}

// Degree is one step of a scale formula such as "b3" or "#4"
type Degree struct {
	Label     string `json:"label"`
	Number    int    `json:"number"`    // 1-based scale degree number
	Semitones int    `json:"semitones"` // offset from the root
}

// ScaleSource supplies the ordered note names of a scale built on a root.
// An unknown scale or root yields an empty list.
type ScaleSource interface {
	ScaleNotes(root, scale string) []string
}

// Library is the built-in ScaleSource
type Library struct{}

// NewLibrary creates the built-in scale library
func NewLibrary() *Library {
	return &Library{}
}

// ScaleNotes implements ScaleSource
func (l *Library) ScaleNotes(root, scale string) []string {
	return ScaleNotes(root, scale)
}

// NormalizeScaleName lower-cases a scale name, collapses whitespace and
// underscores, and resolves aliases.
func NormalizeScaleName(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, "_", " "))
	s = strings.Join(strings.Fields(s), " ")
	if alias, ok := scaleAliases[s]; ok {
		return alias
	}
	return s
}

// HasScale reports whether the library knows the scale
func HasScale(name string) bool {
	_, ok := scaleFormulas[NormalizeScaleName(name)]
	return ok
}

// ScaleNames returns every scale name known to the library, sorted
func ScaleNames() []string {
	names := make([]string, 0, len(scaleFormulas))
	for name := range scaleFormulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Formula returns the degree formula of a scale ("1-2-b3-4-5-6-b7")
func Formula(scale string) (string, bool) {
	f, ok := scaleFormulas[NormalizeScaleName(scale)]
	return f, ok
}

// Intervals returns the semitone offsets of a scale from its root
func Intervals(scale string) []int {
	formula, ok := Formula(scale)
	if !ok {
		return nil
	}
	degrees, err := ParseFormula(formula)
	if err != nil {
		return nil
	}
	out := make([]int, len(degrees))
	for i, d := range degrees {
		out[i] = d.Semitones
	}
	return out
}

// ParseFormula parses an interval-degree formula. Degrees may be separated by
// '-' or whitespace, each optionally prefixed by '#' or 'b' accidentals.
func ParseFormula(formula string) ([]Degree, error) {
	tokens := strings.FieldsFunc(formula, func(r rune) bool {
		return r == '-' || r == ' ' || r == ',' || r == '\t'
	})
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty formula")
	}

	degrees := make([]Degree, 0, len(tokens))
	for _, tok := range tokens {
		d, err := parseDegree(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid formula %q: %w", formula, err)
		}
		degrees = append(degrees, d)
	}
	return degrees, nil
}

func parseDegree(tok string) (Degree, error) {
	acc := 0
	idx := 0
	for idx < len(tok) && (tok[idx] == '#' || tok[idx] == 'b') {
		if tok[idx] == '#' {
			acc++
		} else {
			acc--
		}
		idx++
	}
	num, err := strconv.Atoi(tok[idx:])
	if err != nil || num < 1 {
		return Degree{}, fmt.Errorf("invalid degree %q", tok)
	}
	step := (num - 1) % len(majorScaleSemitones)
	octaves := (num - 1) / len(majorScaleSemitones)
	return Degree{
		Label:     tok,
		Number:    num,
		Semitones: majorScaleSemitones[step] + octaves*semitonesPerOctave + acc,
	}, nil
}

// ScaleNotes returns the ordered note names of a scale on the given root.
// Notes are spelled letter by letter from the root, so the same pitch class
// can come back as a sharp in one key and a flat in another.
func ScaleNotes(root, scale string) []string {
	formula, ok := Formula(scale)
	if !ok {
		return nil
	}
	r, err := ParseNote(root)
	if err != nil {
		return nil
	}
	degrees, err := ParseFormula(formula)
	if err != nil {
		return nil
	}

	notes := make([]string, 0, len(degrees))
	for _, d := range degrees {
		notes = append(notes, spellDegree(r, d))
	}
	return notes
}

func spellDegree(root Note, d Degree) string {
	rootLetter := strings.IndexByte(letterOrder, root.Letter)
	letter := letterOrder[(rootLetter+d.Number-1)%len(letterOrder)]
	target := mod12(root.Chroma() + d.Semitones)

	acc := target - letterSemitones[letter]
	if acc > semitonesPerOctave/2 {
		acc -= semitonesPerOctave
	}
	if acc < -semitonesPerOctave/2 {
		acc += semitonesPerOctave
	}
	if acc > maxSpelledAccidentals || acc < -maxSpelledAccidentals {
		return PitchClassName(target)
	}
	return string(letter) + accidentalString(acc)
}
