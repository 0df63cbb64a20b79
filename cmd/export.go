package cmd

import (
	"fmt"

	"github.com/jsphweid/pianobench/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <filename> <out.mid>",
	Short: "Exports a test case as MIDI",
	Long:  `Writes one catalog entry as a Standard MIDI File with one track per catalog track.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tc, err := findCase(args[0])
		if err != nil {
			return err
		}
		if err := midi.WriteMidiFile(args[1], tc); err != nil {
			return err
		}
		fmt.Printf("Wrote %d tracks of %s to %s\n", len(tc.Tracks), tc.Filename, args[1])
		return nil
	},
}
