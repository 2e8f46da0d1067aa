package cmd

import (
	"fmt"
	"strconv"

	"report-reconciler/core/outcome"
	"report-reconciler/core/output"

	"github.com/spf13/cobra"
)

// catalogueEntry describes one outcome.
type catalogueEntry struct {
	Code     int    `json:"code" yaml:"code"`
	Name     string `json:"name" yaml:"name"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
}

type catalogue []catalogueEntry

// TableData implements output.Tabular.
func (c catalogue) TableData() output.Data {
	data := output.Data{Headers: []string{"Code", "Name", "Severity", "Message"}}
	for _, e := range c {
		data.Rows = append(data.Rows, []string{strconv.Itoa(e.Code), e.Name, e.Severity, e.Message})
	}
	return data
}

// outcomesCmd prints every outcome a run can end with.
var outcomesCmd = &cobra.Command{
	Use:   "outcomes",
	Short: "List the outcomes a run can end with",
	Long:  `Prints the code, name, severity and message of every outcome, including configured message overrides.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		messages, err := cfg.Messages()
		if err != nil {
			return err
		}
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}

		var entries catalogue
		for _, o := range outcome.All() {
			entries = append(entries, catalogueEntry{
				Code:     o.Code(),
				Name:     o.String(),
				Severity: string(o.Severity()),
				Message:  messages.Text(o),
			})
		}

		if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), entries); err != nil {
			return fmt.Errorf("failed to print outcomes: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(outcomesCmd)
	outcomesCmd.Flags().String("format", "", "Output format: table, json or yaml (auto-detected when empty)")
}
