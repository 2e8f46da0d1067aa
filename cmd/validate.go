package cmd

import (
	"github.com/spf13/cobra"
)

// validateCmd stops the pipeline after validation.
var validateCmd = &cobra.Command{
	Use:   "validate <vendor> <filename>",
	Short: "Check that two reports share shape, columns and types",
	Long: `Loads the manual and automated reports, removes the noise columns and checks their
shapes, column names and column types. The findings are appended to the run log; no
workbook is written.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, args[0], args[1], true)
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
	addRunFlags(validateCmd)
}
