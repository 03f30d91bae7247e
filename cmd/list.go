package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
	"github.com/sst/widgetlink/internal/catalog"
	"github.com/sst/widgetlink/internal/format"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the widgets in the catalog",
	Long: `List the widgets in the catalog. --search filters by a fuzzy match on the
name and a substring match on description and tags; --match filters names
with a glob such as "*button*" or "forms/*".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		query, _ := cmd.Flags().GetString("search")
		pattern, _ := cmd.Flags().GetString("match")

		components, err := filterComponents(query, pattern)
		if err != nil {
			return err
		}
		return format.Write(cmd.OutOrStdout(), outputFormat, listText(components), components)
	},
}

// filterComponents applies the search query, then the glob pattern.
func filterComponents(query, pattern string) ([]catalog.Component, error) {
	components := catalog.Search(query)
	if pattern == "" {
		return components, nil
	}

	matched, err := catalog.Match(pattern)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(matched))
	for _, c := range matched {
		keep[c.Name] = true
	}

	filtered := components[:0]
	for _, c := range components {
		if keep[c.Name] {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func listText(components []catalog.Component) string {
	if len(components) == 0 {
		return "No components found"
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tCOMPLEXITY\tDESCRIPTION")
	for _, c := range components {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Category, c.Complexity, truncate.StringWithTail(c.Description, 60, "…"))
	}
	tw.Flush()
	return b.String()
}

func formatFlag(cmd *cobra.Command) (format.OutputFormat, error) {
	name, _ := cmd.Flags().GetString("format")
	return format.Parse(name)
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "Fuzzy search over name, description and tags")
	listCmd.Flags().StringP("match", "m", "", "Glob on the component name or category/name")
	listCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	rootCmd.AddCommand(listCmd)
}
