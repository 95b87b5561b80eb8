package export

import (
	"bytes"
	"testing"

	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// noteStarts decodes the file and returns every note-on key in order
func noteStarts(t *testing.T, s *smf.SMF) []uint8 {
	t.Helper()
	data, err := Bytes(s)
	require.NoError(t, err)

	decoded, err := smf.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)

	var keys []uint8
	for _, tr := range decoded.Tracks {
		for _, ev := range tr {
			var ch, key, vel uint8
			if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

func TestProgressionSMF_NoteCount(t *testing.T) {
	chords := progression.BuildProgressionChords("C", progression.Degrees(1, 6, 4, 5))
	s, err := ProgressionSMF(chords, Options{BPM: 120, Name: "pop"})
	require.NoError(t, err)

	keys := noteStarts(t, s)
	assert.Len(t, keys, 3*len(chords))
	// C3 major triad first
	assert.Equal(t, []uint8{48, 52, 55}, keys[:3])
}

func TestProgressionSMF_Octave(t *testing.T) {
	chords := progression.BuildProgressionChords("A", progression.Degrees(1))
	s, err := ProgressionSMF(chords, Options{Octave: 4})
	require.NoError(t, err)
	assert.Equal(t, []uint8{69, 73, 76}, noteStarts(t, s))

	_, err = ProgressionSMF(chords, Options{Octave: 10})
	assert.Error(t, err)
}

func TestProgressionSMF_Empty(t *testing.T) {
	_, err := ProgressionSMF(nil, Options{})
	assert.ErrorIs(t, err, ErrNothingToRender)
}

func TestPatternSMF_AscendingNotes(t *testing.T) {
	std := fretboard.Standard()
	positions := []fretboard.Position{
		fretboard.At(1, 0), // A2
		fretboard.At(0, 5), // A2
		fretboard.At(0, 3), // G2
		fretboard.At(9, 0), // no such string
	}
	s, err := PatternSMF(positions, std, Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint8{43, 45, 45}, noteStarts(t, s))

	_, err = PatternSMF([]fretboard.Position{fretboard.At(9, 0)}, std, Options{})
	assert.ErrorIs(t, err, ErrNothingToRender)
}
