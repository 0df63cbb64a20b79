package midi

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/extract"
	"github.com/jsphweid/pianobench/model"
	"github.com/jsphweid/pianobench/truth"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TicksPerQuarter = 960
const Tempo = 120.0
const Velocity = 100

// at 120 BPM a quarter lasts half a second
const ticksPerSecond = TicksPerQuarter * Tempo / 60

func toTicks(seconds float64) uint32 {
	return uint32(math.Round(seconds * ticksPerSecond))
}

// EncodeTrack renders one track as note on/off pairs. Rests only move time
// forward; the end of track marker lands on the end of the last note or
// rest so trailing rests survive a round trip.
func EncodeTrack(track model.Track, withTempo bool) smf.Track {
	var tr smf.Track
	if withTempo {
		tr.Add(0, smf.MetaTempo(Tempo))
	}

	var elapsed float64
	var lastTick uint32
	for _, note := range track {
		start := toTicks(elapsed)
		elapsed += note.Duration
		end := toTicks(elapsed)

		key := extract.PitchCode(note.Frequency)
		if key == constants.RestCode || key < 0 || key > 127 {
			continue
		}

		tr.Add(start-lastTick, midi.NoteOn(0, uint8(key), Velocity))
		tr.Add(end-start, midi.NoteOff(0, uint8(key)))
		lastTick = end
	}

	tr.Close(toTicks(elapsed) - lastTick)
	return tr
}

// EncodeTestCase builds a format 1 SMF with one track per catalog track.
func EncodeTestCase(tc model.TestCase) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	for i, track := range tc.Tracks {
		if err := s.Add(EncodeTrack(track, i == 0)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func WriteTestCase(w io.Writer, tc model.TestCase) error {
	if len(tc.Tracks) == 0 {
		return fmt.Errorf("%s has no tracks to export", tc.Filename)
	}
	for i, track := range tc.Tracks {
		_, durations, _ := extract.ExtractTrack(track)
		if err := truth.Validate(durations, 1, 1); err != nil {
			return fmt.Errorf("%s track %d: %w", tc.Filename, i, err)
		}
	}
	s, err := EncodeTestCase(tc)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}

func WriteMidiFile(path string, tc model.TestCase) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteTestCase(f, tc); err != nil {
		return err
	}
	return f.Close()
}
