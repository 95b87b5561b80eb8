package catalog

import (
	"fmt"
	"sync"

	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/theory"
	"github.com/filipedeo/fretboard-api/internal/voicing"
	"github.com/filipedeo/fretboard-api/pkg/embedded"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Category groups modes by their parent scale family
type Category string

const (
	CategoryDiatonic      Category = "diatonic"
	CategoryHarmonicMinor Category = "harmonic-minor"
	CategoryMelodicMinor  Category = "melodic-minor"
	CategorySymmetric     Category = "symmetric"
	CategoryOther         Category = "other"
)

var validCategories = map[Category]bool{
	CategoryDiatonic:      true,
	CategoryHarmonicMinor: true,
	CategoryMelodicMinor:  true,
	CategorySymmetric:     true,
	CategoryOther:         true,
}

// Mode lookups that name a scale rather than a catalog entry
var modeAliases = map[string]string{
	"major":         "ionian",
	"minor":         "aeolian",
	"natural minor": "aeolian",
}

// Mode describes a supported scale or mode
type Mode struct {
	Name                 string   `yaml:"name" json:"name"`
	DisplayName          string   `yaml:"display_name" json:"display_name"`
	Formula              string   `yaml:"formula" json:"formula"`
	Category             Category `yaml:"category" json:"category"`
	CharacteristicDegree int      `yaml:"characteristic_degree" json:"characteristic_degree"`
}

// Progression is a named practice progression
type Progression struct {
	Name        string   `yaml:"name" json:"name"`
	DisplayName string   `yaml:"display_name" json:"display_name"`
	Degrees     []string `yaml:"degrees" json:"degrees"`
	Numerals    []string `yaml:"numerals" json:"numerals"`
}

type shapeEntry struct {
	Name      string `yaml:"name"`
	Quality   string `yaml:"quality"`
	Inversion string `yaml:"inversion"`
	StringSet string `yaml:"string_set"`
	Offsets   []struct {
		String string `yaml:"string"`
		Fret   int    `yaml:"fret"`
	} `yaml:"offsets"`
	Intervals []string `yaml:"intervals"`
}

// Catalog holds the static mode, voicing and progression tables
type Catalog struct {
	modes        []Mode
	shapes       []voicing.Shape
	progressions []Progression

	modeIndex        map[string]int
	shapeIndex       map[string]int
	progressionIndex map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded data files
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embedded.ModesYAML, embedded.VoicingsYAML, embedded.ProgressionsYAML)
		if err != nil {
			panic(fmt.Errorf("failed to load embedded catalog: %w", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse builds and validates a catalog from YAML documents
func Parse(modesYAML, voicingsYAML, progressionsYAML []byte) (*Catalog, error) {
	c := &Catalog{
		modeIndex:        make(map[string]int),
		shapeIndex:       make(map[string]int),
		progressionIndex: make(map[string]int),
	}
	if err := c.parseModes(modesYAML); err != nil {
		return nil, err
	}
	if err := c.parseShapes(voicingsYAML); err != nil {
		return nil, err
	}
	if err := c.parseProgressions(progressionsYAML); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) parseModes(data []byte) error {
	var doc struct {
		Modes []Mode `yaml:"modes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse modes: %w", err)
	}

	title := cases.Title(language.English)
	for _, m := range doc.Modes {
		if m.Name == "" {
			return fmt.Errorf("mode without name")
		}
		if !validCategories[m.Category] {
			return fmt.Errorf("mode %q: unknown category %q", m.Name, m.Category)
		}
		degrees, err := theory.ParseFormula(m.Formula)
		if err != nil {
			return fmt.Errorf("mode %q: %w", m.Name, err)
		}
		if m.CharacteristicDegree < 0 || m.CharacteristicDegree >= len(degrees) {
			return fmt.Errorf("mode %q: characteristic degree %d out of range", m.Name, m.CharacteristicDegree)
		}
		if m.DisplayName == "" {
			m.DisplayName = title.String(m.Name)
		}

		key := theory.NormalizeScaleName(m.Name)
		if _, dup := c.modeIndex[key]; dup {
			return fmt.Errorf("duplicate mode %q", m.Name)
		}
		c.modeIndex[key] = len(c.modes)
		c.modes = append(c.modes, m)
	}
	return nil
}

func (c *Catalog) parseShapes(data []byte) error {
	var doc struct {
		Shapes []shapeEntry `yaml:"shapes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse voicings: %w", err)
	}

	for _, e := range doc.Shapes {
		shape := voicing.Shape{
			Name:      e.Name,
			Quality:   e.Quality,
			Inversion: e.Inversion,
			StringSet: e.StringSet,
			Intervals: e.Intervals,
		}
		for _, o := range e.Offsets {
			role, err := fretboard.ParseRole(o.String)
			if err != nil {
				return fmt.Errorf("shape %q: %w", e.Name, err)
			}
			shape.Offsets = append(shape.Offsets, voicing.Offset{String: role, Fret: o.Fret})
		}
		if err := shape.Validate(); err != nil {
			return err
		}
		if _, dup := c.shapeIndex[shape.Name]; dup {
			return fmt.Errorf("duplicate shape %q", shape.Name)
		}
		c.shapeIndex[shape.Name] = len(c.shapes)
		c.shapes = append(c.shapes, shape)
	}
	return nil
}

func (c *Catalog) parseProgressions(data []byte) error {
	var doc struct {
		Progressions []Progression `yaml:"progressions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse progressions: %w", err)
	}

	for _, p := range doc.Progressions {
		if len(p.Degrees) == 0 {
			return fmt.Errorf("progression %q is empty", p.Name)
		}
		if len(p.Degrees) != len(p.Numerals) {
			return fmt.Errorf("progression %q has %d degrees but %d numerals", p.Name, len(p.Degrees), len(p.Numerals))
		}
		if _, dup := c.progressionIndex[p.Name]; dup {
			return fmt.Errorf("duplicate progression %q", p.Name)
		}
		c.progressionIndex[p.Name] = len(c.progressions)
		c.progressions = append(c.progressions, p)
	}
	return nil
}

// Modes lists the modes in catalog order
func (c *Catalog) Modes() []Mode {
	out := make([]Mode, len(c.modes))
	copy(out, c.modes)
	return out
}

// Mode looks a mode up by name; scale aliases such as "major" resolve to
// their modal names.
func (c *Catalog) Mode(name string) (Mode, bool) {
	key := theory.NormalizeScaleName(name)
	if alias, ok := modeAliases[key]; ok {
		key = alias
	}
	idx, ok := c.modeIndex[key]
	if !ok {
		return Mode{}, false
	}
	return c.modes[idx], true
}

// ModesByCategory lists the modes of one category in catalog order
func (c *Catalog) ModesByCategory(category Category) []Mode {
	var out []Mode
	for _, m := range c.modes {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// Shapes lists the voicing shapes in catalog order
func (c *Catalog) Shapes() []voicing.Shape {
	out := make([]voicing.Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// Shape looks a voicing shape up by name
func (c *Catalog) Shape(name string) (voicing.Shape, bool) {
	idx, ok := c.shapeIndex[name]
	if !ok {
		return voicing.Shape{}, false
	}
	return c.shapes[idx], true
}

// Progressions lists the progression presets in catalog order
func (c *Catalog) Progressions() []Progression {
	out := make([]Progression, len(c.progressions))
	copy(out, c.progressions)
	return out
}

// Progression looks a progression preset up by name
func (c *Catalog) Progression(name string) (Progression, bool) {
	idx, ok := c.progressionIndex[name]
	if !ok {
		return Progression{}, false
	}
	return c.progressions[idx], true
}
