package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bundlecheck/internal/checks"
	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/health"
)

var checksJSON bool

func init() {
	checksCmd.Flags().BoolVar(&checksJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(checksCmd)
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the available checks",
	Long: `List every check bundlecheck can run, in execution order.

Fast checks run in every mode. Slow checks run only in comprehensive mode.
Checks apply only to the file kinds listed.`,
	Example: `  bundlecheck checks
  bundlecheck checks --json`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runChecks,
}

func runChecks(cmd *cobra.Command, _ []string) error {
	infos := checks.New(checks.DefaultOptions()).Checks()
	w := cmd.OutOrStdout()

	if checksJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return errors.Wrap(err, "encoding checks")
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSPEED\tKINDS")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Speed, joinKinds(info.Kinds))
	}
	return tw.Flush()
}

func joinKinds(kinds []health.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
