package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/pianobench/algo"
	"github.com/spf13/cobra"
)

var scoreAlgoCmd string
var scoreStrict bool

func init() {
	scoreCmd.Flags().StringVar(&scoreAlgoCmd, "algo-cmd", "", "executable called as <cmd> <ideal> <candidate>, printing pitch/tempo accuracy JSON")
	scoreCmd.Flags().BoolVar(&scoreStrict, "strict", false, "exit non-zero when any test fails or errors")
	rootCmd.AddCommand(scoreCmd)
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Runs score mode tests",
	Long:  `Scores every candidate rendering against its ideal rendering and compares pitch and tempo accuracy with the catalog's expectations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := strings.Fields(scoreAlgoCmd)
		if len(fields) == 0 {
			return errors.New("--algo-cmd is required")
		}

		cases, err := loadCases()
		if err != nil {
			return err
		}

		summary, err := newRunner(cases).RunScoreTests(cmd.Context(), algo.ExecScore{Bin: fields[0], Args: fields[1:]})
		if err != nil {
			return err
		}
		if scoreStrict && summary.Passed != summary.Total {
			return fmt.Errorf("%d of %d tests did not pass", summary.Total-summary.Passed, summary.Total)
		}
		return nil
	},
}
