package cmd

import (
	"errors"
	"fmt"

	"github.com/jsphweid/pianobench/catalog"
	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/db"
	"github.com/jsphweid/pianobench/extract"
	"github.com/jsphweid/pianobench/truth"
	"github.com/spf13/cobra"
)

var inspectMetadata bool
var inspectSampleRate int
var inspectHopLength int

func init() {
	inspectCmd.Flags().BoolVar(&inspectMetadata, "metadata", false, "look up piece metadata in DynamoDB")
	inspectCmd.Flags().IntVar(&inspectSampleRate, "sr", constants.DefaultSampleRate, "sample rate in Hz")
	inspectCmd.Flags().IntVar(&inspectHopLength, "hop", constants.DefaultHopLength, "hop length in samples")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <filename>",
	Short: "Inspects a test case",
	Long:  `Prints the note arrays and the frame level ground truth of one catalog entry.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tc, err := findCase(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("filename: %v\n", tc.Filename)
		fmt.Printf("ideal: %v\n", tc.IdealFilename)
		fmt.Printf("variation: %v\n", catalog.Variation(tc))
		fmt.Printf("expected pitch accuracy: %v\n", tc.ExpectedPitchAccuracy)
		fmt.Printf("expected tempo accuracy: %v\n", tc.ExpectedTempoAccuracy)

		arrays := extract.NoteArrays(tc)
		for i := range arrays.PitchCodes {
			fmt.Printf("track %d names: %v\n", i, arrays.Names[i])
			fmt.Printf("track %d pitch codes: %v\n", i, arrays.PitchCodes[i])
			fmt.Printf("track %d durations: %v\n", i, arrays.Durations[i])
		}

		if len(tc.Tracks) > 0 {
			if err := truth.Validate(arrays.Durations[0], inspectSampleRate, inspectHopLength); err != nil {
				return err
			}
			gt := truth.ForTestCase(tc, inspectSampleRate, inspectHopLength)
			fmt.Printf("frames: %v\n", gt.NumFrames())
			fmt.Printf("boundary frames: %v\n", gt.BoundaryFrames)
		}

		if inspectMetadata {
			if cfg.MetadataEndpoint == "" {
				return errors.New("METADATA_ENDPOINT is not set")
			}
			metas, err := db.GetPieceMetadatas(cfg.MetadataEndpoint, cfg.MetadataTable, []string{tc.Filename})
			if err != nil {
				return err
			}
			if meta, ok := metas[tc.Filename]; ok {
				fmt.Printf("title: %v\n", meta.Title)
				fmt.Printf("composer: %v\n", meta.Composer)
				fmt.Printf("recorded variation: %v\n", meta.Variation)
			} else {
				fmt.Printf("no metadata for %v\n", tc.Filename)
			}
		}
		return nil
	},
}
