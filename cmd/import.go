package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jsphweid/pianobench/midi"
	"github.com/jsphweid/pianobench/util"
	"github.com/spf13/cobra"
)

var importFilename string

func init() {
	importCmd.Flags().StringVar(&importFilename, "filename", "", "catalog filename for the entry (defaults to the MIDI file's name with the source extension)")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <in.mid>",
	Short: "Builds a catalog entry from MIDI",
	Long:  `Reads a Standard MIDI File and prints the matching catalog entry as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := importFilename
		if filename == "" {
			filename = util.ReplaceExt(filepath.Base(args[0]), ".mid", cfg.SourceExt)
		}

		tc, err := midi.ImportMidiFile(args[0], filename)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tc)
	},
}
