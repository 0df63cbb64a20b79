package midi

import (
	"math"

	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/extract"
	"github.com/jsphweid/pianobench/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// catalog durations carry millisecond precision
func roundDuration(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}

func restNote(seconds float64) model.Note {
	return model.Note{
		Frequency: 0,
		Duration:  roundDuration(seconds),
		Name:      extract.NoteName(constants.RestCode),
	}
}

func pitchedNote(key uint8, seconds float64) model.Note {
	return model.Note{
		Frequency: extract.Frequency(int(key)),
		Duration:  roundDuration(seconds),
		Name:      extract.NoteName(int(key)),
	}
}

// DecodeTrack reads a track monophonically. A new note cuts off the one
// still sounding and silence between notes becomes a rest.
func DecodeTrack(s *smf.SMF, idx int) model.Track {
	track := model.Track{}
	if idx < 0 || idx >= len(s.Tracks) {
		return track
	}

	seconds := func(ticks int64) float64 {
		return float64(s.TimeAt(ticks)) / 1e6
	}

	var absTicks int64
	var lastEnd float64
	sounding := false
	var soundingKey uint8
	var soundingStart float64

	closeNote := func(at float64) {
		track = append(track, pitchedNote(soundingKey, at-soundingStart))
		lastEnd = at
		sounding = false
	}

	for _, evt := range s.Tracks[idx] {
		absTicks += int64(evt.Delta)
		now := seconds(absTicks)

		var channel, key, velocity uint8
		switch {
		case evt.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
			if sounding {
				closeNote(now)
			}
			if gap := now - lastEnd; roundDuration(gap) > 0 {
				track = append(track, restNote(gap))
			}
			sounding = true
			soundingKey = key
			soundingStart = now
		case evt.Message.GetNoteOn(&channel, &key, &velocity), evt.Message.GetNoteOff(&channel, &key, &velocity):
			if sounding && key == soundingKey {
				closeNote(now)
			}
		}
	}

	end := seconds(absTicks)
	if sounding {
		closeNote(end)
	}
	if gap := end - lastEnd; roundDuration(gap) > 0 && len(track) > 0 {
		track = append(track, restNote(gap))
	}
	return track
}

// DecodeTestCase turns every track holding notes into a catalog track. The
// recording is its own ideal rendering, so both expected accuracies are 1.
func DecodeTestCase(s *smf.SMF, filename string) model.TestCase {
	tc := model.TestCase{
		Filename:              filename,
		IdealFilename:         filename,
		ExpectedPitchAccuracy: 1.0,
		ExpectedTempoAccuracy: 1.0,
	}
	for i := range s.Tracks {
		if track := DecodeTrack(s, i); len(track) > 0 {
			tc.Tracks = append(tc.Tracks, track)
		}
	}
	return tc
}

func ImportMidiFile(path string, filename string) (model.TestCase, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return model.TestCase{}, err
	}
	return DecodeTestCase(s, filename), nil
}
