package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/jsphweid/pianobench/catalog"
	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/model"
	"github.com/jsphweid/pianobench/truth"
	"github.com/jsphweid/pianobench/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a catalog report",
	Long:  `Summarizes the catalog: tracks, notes, duration and frames per case, and which rendered audio files are on disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cases, err := loadCases()
		if err != nil {
			return err
		}

		// filename -> size in bytes
		present := make(map[string]int64)
		for _, path := range util.GatherAllPaths(cfg.AudioDir, cfg.TargetExt) {
			stats, err := os.Stat(path)
			if err != nil {
				return err
			}
			present[filepath.Base(path)] = stats.Size()
		}

		writeReport(os.Stdout, cases, present, cfg.SourceExt, cfg.TargetExt)
		return nil
	},
}

type caseReport struct {
	variation string
	numTracks int
	numNotes  int
	seconds   float64
	frames    int
	hasAudio  bool
}

func analyzeCase(tc model.TestCase, present map[string]int64, sourceExt string, targetExt string) caseReport {
	_, hasAudio := present[util.ReplaceExt(tc.Filename, sourceExt, targetExt)]
	report := caseReport{
		variation: catalog.Variation(tc),
		numTracks: len(tc.Tracks),
		hasAudio:  hasAudio,
	}
	for _, track := range tc.Tracks {
		report.numNotes += len(track)
	}
	if track, ok := tc.FirstTrack(); ok {
		for _, note := range track {
			report.seconds += note.Duration
		}
	}
	report.frames = truth.ForTestCase(tc, constants.DefaultSampleRate, constants.DefaultHopLength).NumFrames()
	return report
}

func writeReport(w io.Writer, cases []model.TestCase, present map[string]int64, sourceExt string, targetExt string) {
	variationsPerPiece := make(map[string][]string)
	var numNotes, missingAudio int
	var seconds float64

	for i, tc := range cases {
		report := analyzeCase(tc, present, sourceExt, targetExt)
		piece := catalog.Piece(tc)
		variationsPerPiece[piece] = append(variationsPerPiece[piece], report.variation)
		numNotes += report.numNotes
		seconds += report.seconds

		audio := "ok"
		if !report.hasAudio {
			audio = "missing"
			missingAudio++
		}
		fmt.Fprintf(w, "%3d %-40s %-12s tracks: %d notes: %d seconds: %.2f frames: %d audio: %s\n",
			i, tc.Filename, report.variation, report.numTracks, report.numNotes, report.seconds, report.frames, audio)
	}

	fmt.Fprintf(w, "\n")
	for _, piece := range util.GetKeys(variationsPerPiece) {
		fmt.Fprintf(w, "%s: %v\n", piece, variationsPerPiece[piece])
	}

	fmt.Fprintf(w, "\ncases: %d\n", len(cases))
	fmt.Fprintf(w, "pieces: %d\n", len(variationsPerPiece))
	fmt.Fprintf(w, "notes: %s\n", humanize.Comma(int64(numNotes)))
	fmt.Fprintf(w, "duration: %s\n", durafmt.Parse(time.Duration(seconds*float64(time.Second))).LimitFirstN(2))
	fmt.Fprintf(w, "audio on disk: %s in %d files\n", humanize.Bytes(uint64(util.Sum(util.GetValues(present)))), len(present))
	fmt.Fprintf(w, "missing audio: %d\n", missingAudio)
}
