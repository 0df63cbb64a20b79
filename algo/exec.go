package algo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jsphweid/pianobench/model"
)

// ExecScore runs `Bin Args... ideal candidate` and reads a JSON
// {"pitch_accuracy": x, "tempo_accuracy": y} object from stdout.
type ExecScore struct {
	Bin  string
	Args []string
}

func (e ExecScore) Score(ctx context.Context, idealPath string, candidatePath string) (model.ScoreResult, error) {
	args := append(append([]string{}, e.Args...), idealPath, candidatePath)
	out, err := runCmd(ctx, e.Bin, nil, args...)
	if err != nil {
		return model.ScoreResult{}, err
	}

	var res model.ScoreResult
	if err := json.Unmarshal(out, &res); err != nil {
		return model.ScoreResult{}, fmt.Errorf("could not parse %s output: %w", e.Bin, err)
	}
	return res, nil
}

type SegmentRequest struct {
	PitchCodes []int     `json:"pitch_codes"`
	Durations  []float64 `json:"durations"`
	SampleRate int       `json:"sample_rate"`
	HopLength  int       `json:"hop_length"`
}

// ExecSegmenter runs `Bin Args... path` with a SegmentRequest on stdin and
// reads {"state_frames": [...], "boundary_frames": [...]} from stdout.
type ExecSegmenter struct {
	Bin  string
	Args []string
}

func (e ExecSegmenter) Segment(ctx context.Context, path string, pitchCodes []int, durations []float64, sampleRate int, hopLength int) (model.GroundTruth, error) {
	req, err := json.Marshal(SegmentRequest{
		PitchCodes: pitchCodes,
		Durations:  durations,
		SampleRate: sampleRate,
		HopLength:  hopLength,
	})
	if err != nil {
		return model.GroundTruth{}, err
	}

	args := append(append([]string{}, e.Args...), path)
	out, err := runCmd(ctx, e.Bin, req, args...)
	if err != nil {
		return model.GroundTruth{}, err
	}

	var gt model.GroundTruth
	if err := json.Unmarshal(out, &gt); err != nil {
		return model.GroundTruth{}, fmt.Errorf("could not parse %s output: %w", e.Bin, err)
	}
	return gt, nil
}

func runCmd(ctx context.Context, bin string, stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", bin, err, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", bin, err)
	}
	return out, nil
}
