package truth

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(label int, n int) []int {
	res := make([]int, n)
	for i := range res {
		res[i] = label
	}
	return res
}

func TestBuildTwoOneSecondNotes(t *testing.T) {
	gt := Build([]float64{1.0, 1.0}, constants.DefaultSampleRate, constants.DefaultHopLength)

	assert := assert.New(t)
	assert.Equal([]int{0, 43, 86}, gt.BoundaryFrames)
	assert.Equal(append(repeat(0, 43), repeat(1, 43)...), gt.StateFrames)
	assert.Equal(86, gt.NumFrames())
}

func TestBuildEmpty(t *testing.T) {
	gt := Build([]float64{}, constants.DefaultSampleRate, constants.DefaultHopLength)

	assert := assert.New(t)
	assert.Equal([]int{}, gt.StateFrames)
	assert.Equal([]int{}, gt.BoundaryFrames)
}

func TestBuildSingleNote(t *testing.T) {
	gt := Build([]float64{0.44}, constants.DefaultSampleRate, constants.DefaultHopLength)

	// 0.44 * 22050 / 512 = 18.95
	assert := assert.New(t)
	assert.Equal([]int{0, 18}, gt.BoundaryFrames)
	assert.Equal(repeat(0, 18), gt.StateFrames)
}

func TestBuildZeroWidthNote(t *testing.T) {
	gt := Build([]float64{1.0, 0.01, 1.0}, constants.DefaultSampleRate, constants.DefaultHopLength)

	assert := assert.New(t)
	assert.Equal([]int{0, 43, 43, 86}, gt.BoundaryFrames)
	assert.Equal(append(repeat(0, 43), repeat(2, 43)...), gt.StateFrames)
	assert.NotContains(gt.StateFrames, 1)
}

func TestBuildZeroDurations(t *testing.T) {
	gt := Build([]float64{0, 0}, constants.DefaultSampleRate, constants.DefaultHopLength)

	assert := assert.New(t)
	assert.Equal([]int{0, 0, 0}, gt.BoundaryFrames)
	assert.Equal([]int{}, gt.StateFrames)
}

func TestBuildInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	params := []struct{ sr, hop int }{
		{22050, 512},
		{44100, 256},
		{48000, 1024},
		{8000, 80},
	}

	for trial := 0; trial < 50; trial++ {
		n := 1 + r.Intn(40)
		durations := make([]float64, n)
		for i := range durations {
			// mostly sixteenths and eighths, occasionally sub-frame
			durations[i] = []float64{0.22, 0.44, 0.66, 0.001, 0.25}[r.Intn(5)] * (0.8 + 0.4*r.Float64())
		}
		p := params[trial%len(params)]

		name := fmt.Sprintf("trial %d: %d notes at %d/%d", trial, n, p.sr, p.hop)
		t.Run(name, func(t *testing.T) {
			gt := Build(durations, p.sr, p.hop)
			require.Len(t, gt.BoundaryFrames, n+1)
			assert.Equal(t, len(gt.StateFrames), gt.BoundaryFrames[n])
			for i := 1; i < len(gt.BoundaryFrames); i++ {
				assert.LessOrEqual(t, gt.BoundaryFrames[i-1], gt.BoundaryFrames[i])
			}
			for i := 1; i < len(gt.StateFrames); i++ {
				assert.LessOrEqual(t, gt.StateFrames[i-1], gt.StateFrames[i])
			}
			// every state frame of note i sits inside [boundary i, boundary i+1)
			for f, label := range gt.StateFrames {
				assert.GreaterOrEqual(t, f, gt.BoundaryFrames[label])
				assert.Less(t, f, gt.BoundaryFrames[label+1])
			}
		})
	}
}

func TestFrame(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Frame(0, 22050, 512))
	assert.Equal(43, Frame(1.0, 22050, 512))
	assert.Equal(86, Frame(2.0, 22050, 512))
	assert.Equal(187, Frame(2.0, 48000, 512))
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)
	assert.NoError(Validate([]float64{0.5, 0}, 22050, 512))
	assert.True(errors.Is(Validate(nil, 0, 512), ErrInvalidParams))
	assert.True(errors.Is(Validate(nil, 22050, -1), ErrInvalidParams))
	assert.True(errors.Is(Validate([]float64{0.5, -0.1}, 22050, 512), ErrInvalidParams))
}

func TestForTestCaseUsesFirstTrack(t *testing.T) {
	tc := model.TestCase{
		Tracks: []model.Track{
			{{Frequency: 440, Duration: 1.0}, {Frequency: 0, Duration: 1.0}},
			{{Frequency: 110, Duration: 4.0}},
		},
	}
	gt := ForTestCase(tc, constants.DefaultSampleRate, constants.DefaultHopLength)

	assert := assert.New(t)
	assert.Equal([]int{0, 43, 86}, gt.BoundaryFrames)
	assert.Len(gt.StateFrames, 86)
}

func TestForTestCaseWithoutTracks(t *testing.T) {
	gt := ForTestCase(model.TestCase{}, constants.DefaultSampleRate, constants.DefaultHopLength)

	assert := assert.New(t)
	assert.Empty(gt.StateFrames)
	assert.Empty(gt.BoundaryFrames)
}
