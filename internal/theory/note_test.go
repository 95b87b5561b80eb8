package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		letter     byte
		accidental int
		octave     int
		hasOctave  bool
		expectErr  bool
	}{
		{name: "natural with octave", input: "E2", letter: 'E', octave: 2, hasOctave: true},
		{name: "sharp", input: "C#4", letter: 'C', accidental: 1, octave: 4, hasOctave: true},
		{name: "flat without octave", input: "Bb", letter: 'B', accidental: -1},
		{name: "lowercase letter", input: "bb3", letter: 'B', accidental: -1, octave: 3, hasOctave: true},
		{name: "double sharp", input: "F##", letter: 'F', accidental: 2},
		{name: "negative octave", input: "C-1", letter: 'C', octave: -1, hasOctave: true},
		{name: "empty", input: "", expectErr: true},
		{name: "bad letter", input: "H2", expectErr: true},
		{name: "bad octave", input: "Cx", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseNote(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.letter, n.Letter)
			assert.Equal(t, tt.accidental, n.Accidental)
			assert.Equal(t, tt.octave, n.Octave)
			assert.Equal(t, tt.hasOctave, n.HasOctave)
		})
	}
}

func TestChroma(t *testing.T) {
	tests := map[string]int{
		"C": 0, "B#": 0, "Dbb": 0,
		"C#": 1, "Db": 1,
		"E": 4, "Fb": 4,
		"F": 5, "E#": 5,
		"Bb3": 10, "A#": 10,
		"Cb4": 11, "B": 11,
		"": -1, "X": -1,
	}
	for name, expected := range tests {
		assert.Equal(t, expected, Chroma(name), "chroma of %q", name)
	}
}

func TestMIDIRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		midi int
	}{
		{"C4", 60},
		{"E2", 40},
		{"A4", 69},
		{"B3", 59},
		{"Cb4", 59},
		{"B#3", 60},
		{"C-1", 0},
	}
	for _, tt := range tests {
		m, ok := MIDI(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.midi, m, tt.name)
	}

	_, ok := MIDI("C")
	assert.False(t, ok, "pitch class without octave has no MIDI number")

	assert.Equal(t, "A#3", FromMIDI(58))
	assert.Equal(t, "E2", FromMIDI(40))
	assert.Equal(t, "", FromMIDI(-1))
	assert.Equal(t, "", FromMIDI(128))
}

func TestTranspose(t *testing.T) {
	assert.Equal(t, "G2", Transpose("E2", 3))
	assert.Equal(t, "E3", Transpose("E2", 12))
	assert.Equal(t, "A#2", Transpose("Bb2", 0))
	assert.Equal(t, "D", Transpose("C", 2))
	assert.Equal(t, "A#", Transpose("C", -2))
	assert.Equal(t, "", Transpose("nope", 1))
}

func TestSameChroma(t *testing.T) {
	assert.True(t, SameChroma("A#", "Bb"))
	assert.True(t, SameChroma("E2", "Fb5"))
	assert.False(t, SameChroma("C", "C#"))
	assert.False(t, SameChroma("", ""))
}
