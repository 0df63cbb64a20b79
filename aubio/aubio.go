package aubio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jsphweid/pianobench/model"
	"github.com/jsphweid/pianobench/truth"
	"github.com/jsphweid/pianobench/util"
)

// Segmenter is a baseline segmentation algorithm built on `aubio onset`.
// Every detected onset starts a new state; labels count onsets and are
// clamped to the last note.
type Segmenter struct {
	Bin string
}

func (s Segmenter) bin() string {
	if s.Bin == "" {
		return "aubio"
	}
	return s.Bin
}

func (s Segmenter) Segment(ctx context.Context, path string, pitchCodes []int, durations []float64, sampleRate int, hopLength int) (model.GroundTruth, error) {
	if _, err := exec.LookPath(s.bin()); err != nil {
		return model.GroundTruth{}, errors.New("aubio not found")
	}

	cmd := exec.CommandContext(ctx, s.bin(), "onset", "-i", path)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return model.GroundTruth{}, fmt.Errorf("aubio onset failed: %w: %s", err, msg)
		}
		return model.GroundTruth{}, fmt.Errorf("aubio onset failed: %w", err)
	}

	onsets := ParseOnsets(string(out))
	return FromOnsets(onsets, len(durations), util.Sum(durations), sampleRate, hopLength), nil
}

// ParseOnsets reads one onset time in seconds per line, skipping anything
// that is not a number.
func ParseOnsets(out string) []float64 {
	var res []float64
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if v, err := strconv.ParseFloat(fields[0], 64); err == nil && v >= 0 {
			res = append(res, v)
		}
	}
	return res
}

// FromOnsets turns onset times into states and boundaries shaped like the
// ground truth: the first boundary is frame 0 and the sentinel is the frame
// where the notated piece ends.
func FromOnsets(onsets []float64, numNotes int, totalSeconds float64, sampleRate int, hopLength int) model.GroundTruth {
	if numNotes == 0 {
		return model.GroundTruth{StateFrames: []int{}, BoundaryFrames: []int{}}
	}

	end := truth.Frame(totalSeconds, sampleRate, hopLength)
	seen := map[int]bool{0: true}
	for _, t := range onsets {
		f := truth.Frame(t, sampleRate, hopLength)
		if f < end {
			seen[f] = true
		}
	}
	starts := util.GetKeys(seen)

	states := []int{}
	for k, start := range starts {
		stop := end
		if k+1 < len(starts) {
			stop = starts[k+1]
		}
		label := util.Min(k, numNotes-1)
		for f := start; f < stop; f++ {
			states = append(states, label)
		}
	}

	boundaries := append(starts, len(states))
	return model.GroundTruth{StateFrames: states, BoundaryFrames: boundaries}
}
