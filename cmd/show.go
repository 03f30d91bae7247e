package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/sst/widgetlink/internal/catalog"
	"github.com/sst/widgetlink/internal/format"
	"github.com/sst/widgetlink/internal/tui/util"
)

// componentDetail is the JSON shape of `show`.
type componentDetail struct {
	catalog.Component
	Published bool   `json:"published"`
	Snippet   string `json:"snippet,omitempty"`
	ShareText string `json:"shareText"`
}

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show one widget with its usage snippet",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		c, ok := catalog.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown component %q (available: %s)", args[0], strings.Join(catalog.Names(), ", "))
		}

		share, err := catalog.ShareText(c.Name)
		if err != nil {
			return err
		}
		code, _ := catalog.Snippet(c.Name)

		if copyShare, _ := cmd.Flags().GetBool("copy"); copyShare {
			if err := util.WriteClipboard(share); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Copied %s share text to clipboard\n", c.Name)
		}

		showCode, _ := cmd.Flags().GetBool("code")
		if outputFormat == format.JSONFormat {
			detail := componentDetail{Component: c, Published: c.Published(), ShareText: share}
			if showCode {
				detail.Snippet = code
			}
			return format.Write(cmd.OutOrStdout(), outputFormat, "", detail)
		}

		text := showText(c)
		if showCode {
			style, _ := cmd.Flags().GetString("style")
			snippet, err := renderSnippet(cmd.OutOrStdout(), code, style)
			if err != nil {
				return err
			}
			text += "\n" + snippet
		}
		return format.Write(cmd.OutOrStdout(), outputFormat, text, nil)
	},
}

// renderSnippet highlights code unless w is not a color terminal.
func renderSnippet(w io.Writer, code, style string) (string, error) {
	if termenv.NewOutput(w).Profile == termenv.Ascii {
		return code, nil
	}
	var b strings.Builder
	if err := catalog.Highlight(&b, code, style); err != nil {
		return "", fmt.Errorf("highlight snippet: %w", err)
	}
	return b.String(), nil
}

func showText(c catalog.Component) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s)\n\n", c.Name, c.Category, c.Complexity)
	fmt.Fprintf(&b, "%s\n\n", c.Description)
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(c.Tags, ", "))
	b.WriteString("Features:\n")
	for _, f := range c.Features {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	if c.Published() {
		fmt.Fprintf(&b, "URL: %s\n", c.URL)
	} else {
		b.WriteString("URL: not yet published\n")
	}
	return b.String()
}

func init() {
	showCmd.Flags().Bool("code", false, "Print the usage snippet, highlighted when writing to a color terminal")
	showCmd.Flags().Bool("copy", false, "Copy the share text to the clipboard")
	showCmd.Flags().String("style", catalog.DefaultStyle, "Highlight style for --code")
	showCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	rootCmd.AddCommand(showCmd)
}
