package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/markpreview/markpreview/packages/store"
)

var validateCmd = &cobra.Command{
	Use:   "validate <settings.json>...",
	Short: "Validate settings files against the settings schema",
	Long: `Validate user settings files without loading them.

Examples:
  markpreview validate .markpreview.json
  markpreview validate ~/.markpreview.json project/markpreview.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	hasErrors := false
	for _, file := range args {
		problems, err := store.ValidateFile(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "%s %s: %v\n", red("Error"), file, err)
			hasErrors = true
			continue
		}
		if len(problems) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("Valid:"), file)
			continue
		}
		hasErrors = true
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", red("Invalid:"), file)
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", p)
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}
	return nil
}
