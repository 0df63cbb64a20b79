package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/pianobench/algo"
	"github.com/jsphweid/pianobench/aubio"
	"github.com/jsphweid/pianobench/constants"
	"github.com/spf13/cobra"
)

var (
	segmentAlgoCmd    string
	segmentAubio      bool
	segmentOracle     bool
	segmentSampleRate int
	segmentHopLength  int
)

func init() {
	segmentCmd.Flags().StringVar(&segmentAlgoCmd, "algo-cmd", "", "executable called as <cmd> <audio>, reading the note arrays as JSON on stdin")
	segmentCmd.Flags().BoolVar(&segmentAubio, "aubio", false, "use the aubio onset detector as a baseline")
	segmentCmd.Flags().BoolVar(&segmentOracle, "oracle", false, "answer with the ground truth itself")
	segmentCmd.Flags().IntVar(&segmentSampleRate, "sr", constants.DefaultSampleRate, "sample rate in Hz")
	segmentCmd.Flags().IntVar(&segmentHopLength, "hop", constants.DefaultHopLength, "hop length in samples")
	rootCmd.AddCommand(segmentCmd)
}

func segmentationAlgorithm() (algo.SegmentationAlgorithm, error) {
	chosen := 0
	var res algo.SegmentationAlgorithm
	if fields := strings.Fields(segmentAlgoCmd); len(fields) > 0 {
		chosen++
		res = algo.ExecSegmenter{Bin: fields[0], Args: fields[1:]}
	}
	if segmentAubio {
		chosen++
		res = aubio.Segmenter{}
	}
	if segmentOracle {
		chosen++
		res = algo.Oracle{}
	}

	if chosen != 1 {
		return nil, errors.New("pick exactly one of --algo-cmd, --aubio or --oracle")
	}
	return res, nil
}

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Runs note separation tests",
	Long:  `Compares a segmentation algorithm's frame labels and note boundaries with the ground truth derived from the catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := segmentationAlgorithm()
		if err != nil {
			return err
		}

		cases, err := loadCases()
		if err != nil {
			return err
		}

		r := newRunner(cases)
		r.SampleRate = segmentSampleRate
		r.HopLength = segmentHopLength
		summary, err := r.RunSegmentationTests(cmd.Context(), a)
		if err != nil {
			return err
		}

		fmt.Printf("Mean State Accuracy: %.2f%%\n", summary.MeanStateAccuracy*100)
		fmt.Printf("Mean Boundary Recall: %.2f%%\n", summary.MeanBoundaryRecall*100)
		return nil
	},
}
