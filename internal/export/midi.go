package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/progression"
	"github.com/filipedeo/fretboard-api/internal/theory"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 960

	DefaultBPM           = 100
	DefaultOctave        = 3
	DefaultBeatsPerChord = 4
	DefaultVelocity      = 90
)

// ErrNothingToRender is returned when the input holds no playable notes
var ErrNothingToRender = errors.New("nothing to render")

// Options control MIDI rendering. Zero values take the defaults.
type Options struct {
	BPM           float64
	Octave        int
	BeatsPerChord int
	Velocity      uint8
	Channel       uint8
	Name          string
}

func (o Options) withDefaults() Options {
	if o.BPM <= 0 {
		o.BPM = DefaultBPM
	}
	if o.Octave == 0 {
		o.Octave = DefaultOctave
	}
	if o.BeatsPerChord <= 0 {
		o.BeatsPerChord = DefaultBeatsPerChord
	}
	if o.Velocity == 0 {
		o.Velocity = DefaultVelocity
	}
	if o.Channel > 15 {
		o.Channel = 15
	}
	return o
}

func newTrack(opts Options) smf.Track {
	var tr smf.Track
	if opts.Name != "" {
		tr.Add(0, smf.MetaTrackSequenceName(opts.Name))
	}
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(opts.BPM))
	return tr
}

func finish(tr smf.Track) (*smf.SMF, error) {
	tr.Close(0)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}
	return s, nil
}

// ProgressionSMF renders chords as block chords, one per BeatsPerChord beats,
// voiced upward from the root in the given octave.
func ProgressionSMF(chords []progression.Chord, opts Options) (*smf.SMF, error) {
	opts = opts.withDefaults()
	clock := smf.MetricTicks(ticksPerQuarter)
	length := clock.Ticks4th() * uint32(opts.BeatsPerChord)

	tr := newTrack(opts)
	var rest uint32
	rendered := 0
	for _, chord := range chords {
		pc := theory.Chroma(chord.Root)
		if pc < 0 {
			rest += length
			continue
		}
		root := (opts.Octave+1)*12 + pc

		var keys []uint8
		for _, iv := range chord.Intervals {
			k := root + iv
			if k < 0 || k > 127 {
				return nil, fmt.Errorf("chord %s%s: note %d outside the MIDI range", chord.Root, chord.Quality, k)
			}
			keys = append(keys, uint8(k))
		}
		if len(keys) == 0 {
			rest += length
			continue
		}

		for i, k := range keys {
			delta := uint32(0)
			if i == 0 {
				delta = rest
			}
			tr.Add(delta, midi.NoteOn(opts.Channel, k, opts.Velocity))
		}
		for i, k := range keys {
			delta := uint32(0)
			if i == 0 {
				delta = length
			}
			tr.Add(delta, midi.NoteOff(opts.Channel, k))
		}
		rest = 0
		rendered++
	}
	if rendered == 0 {
		return nil, ErrNothingToRender
	}
	return finish(tr)
}

// PatternSMF renders pattern positions as single eighth notes from the
// lowest pitch to the highest. Positions that do not resolve are skipped.
func PatternSMF(positions []fretboard.Position, t fretboard.Tuning, opts Options) (*smf.SMF, error) {
	opts = opts.withDefaults()
	clock := smf.MetricTicks(ticksPerQuarter)
	length := clock.Ticks8th()

	var keys []int
	for _, p := range positions {
		m, ok := fretboard.MIDIAt(p, t)
		if !ok || m > 127 {
			continue
		}
		keys = append(keys, m)
	}
	if len(keys) == 0 {
		return nil, ErrNothingToRender
	}
	sort.Ints(keys)

	tr := newTrack(opts)
	for _, k := range keys {
		tr.Add(0, midi.NoteOn(opts.Channel, uint8(k), opts.Velocity))
		tr.Add(length, midi.NoteOff(opts.Channel, uint8(k)))
	}
	return finish(tr)
}

// Encode writes the file to w
func Encode(w io.Writer, s *smf.SMF) error {
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return nil
}

// Bytes encodes the file in memory
func Bytes(s *smf.SMF) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
