package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/markpreview/markpreview/packages/frontmatter"
	"github.com/markpreview/markpreview/packages/logging"
	"github.com/markpreview/markpreview/packages/settings"
	"github.com/markpreview/markpreview/packages/store"
)

var (
	settingsFileFlag string
	jsonFlag         bool
	logLevelFlag     string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <document.md>",
	Short: "Print the effective preview settings for a document",
	Long: `Resolve and print the settings a document would be previewed with.

Examples:
  markpreview resolve README.md
  markpreview resolve README.md --json
  markpreview resolve docs/guide.md --settings ~/.markpreview.json`,
	Args: cobra.ExactArgs(1),
	RunE: resolveCommand,
}

func init() {
	resolveCmd.Flags().StringVar(&settingsFileFlag, "settings", "", "settings file (default: discovered next to the document)")
	resolveCmd.Flags().BoolVar(&jsonFlag, "json", false, "machine-readable output")
	resolveCmd.Flags().StringVar(&logLevelFlag, "log-level", "warn", "log level (debug, info, warn, error)")
}

func resolveCommand(cmd *cobra.Command, args []string) error {
	docPath, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("cannot read document: %w", err)
	}

	fm, _, err := frontmatter.Extract(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	st, err := openStore(docPath)
	if err != nil {
		return err
	}

	s := settings.New(st, docPath,
		settings.WithLogger(logging.New("resolve", logLevelFlag)))
	if fm != nil {
		s.ApplyFrontmatter(fm)
	}

	view := map[string]any{
		"builtin":   s.Get("builtin"),
		"meta":      s.Meta(),
		"overrides": s.Overrides(),
	}

	if jsonFlag {
		out, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bold(docPath))
	fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", cyan("basepath:"), orNone(s.BasePath()))
	if dest, ok := s.Destination(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", cyan("destination:"), dest)
	}
	for _, ref := range s.References() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", cyan("reference:"), ref)
	}
	printSection(cmd, "meta", s.Meta())
	printSection(cmd, "overrides", s.Overrides())
	return nil
}

// openStore loads the settings file named by --settings, or the one
// discovered next to the document. With neither, defaults are served.
func openStore(docPath string) (store.Store, error) {
	path := settingsFileFlag
	if path == "" {
		path = store.FindSettingsFile(filepath.Dir(docPath))
	}
	if path == "" {
		path = filepath.Join(filepath.Dir(docPath), store.SettingsFilenames[0])
	}
	return store.NewFileStore(path)
}

func printSection(cmd *cobra.Command, title string, values map[string]any) {
	if len(values) == 0 {
		return
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", cyan(title+":"))

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "    %s: %v\n", k, values[k])
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
