package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/sst/widgetlink/internal/format"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/tui/components/spinner"
	"github.com/sst/widgetlink/internal/tui/components/widget"
	"github.com/sst/widgetlink/internal/tui/theme"
)

// syncWriter serializes writes so log lines and spinner frames don't
// interleave on stderr.
type syncWriter struct {
	w  io.Writer
	mu sync.Mutex
}

func (sw *syncWriter) Write(p []byte) (n int, err error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

func newSyncWriter(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

// demoStep is one line of the demo transcript.
type demoStep struct {
	Action         string         `json:"action"`
	FormValue      string         `json:"formValue"`
	FormState      link.FormState `json:"formState"`
	ButtonDisabled bool           `json:"buttonDisabled"`
	LinkedFormID   string         `json:"linkedFormId"`
	Binding        string         `json:"binding"`
	Records        int            `json:"records"`
}

type demoTranscript struct {
	FormID   string        `json:"formId"`
	ButtonID string        `json:"buttonId"`
	Steps    []demoStep    `json:"steps"`
	Records  []link.Record `json:"records"`
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the form to button linking scenario without the TUI",
	Long: `Mount a button linked to a form identifier, then drive the form through
typing, clearing, an explicit override and a relink, printing the button's
state after each step.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		formID, _ := cmd.Flags().GetString("form-id")
		buttonID, _ := cmd.Flags().GetString("button-id")
		quiet, _ := cmd.Flags().GetBool("quiet")
		verbose, _ := cmd.Flags().GetBool("verbose")
		dedup, _ := cmd.Flags().GetBool("dedup")

		if quiet && verbose {
			return fmt.Errorf("--quiet and --verbose flags cannot be used together")
		}
		if formID == "" || buttonID == "" {
			return fmt.Errorf("--form-id and --button-id must not be empty")
		}

		logger := slog.New(slog.DiscardHandler)
		if verbose {
			charmLogger := charmlog.NewWithOptions(newSyncWriter(cmd.ErrOrStderr()), charmlog.Options{
				Level:           charmlog.DebugLevel,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "widgetlink",
			})
			logger = slog.New(charmLogger)
			charmLogger.Info("Verbose logging enabled")
		}

		if !quiet && outputFormat == format.TextFormat {
			var s *spinner.Spinner
			if t := theme.CurrentTheme(); t != nil {
				s = spinner.NewThemedSpinner("Linking widgets...", t.Primary())
			} else {
				s = spinner.NewSpinner("Linking widgets...")
			}
			s.Start()
			defer s.Stop()
		}

		transcript := runDemo(logger, formID, buttonID, dedup)
		return format.Write(cmd.OutOrStdout(), outputFormat, transcript.text(), transcript)
	},
}

// runDemo mounts the button before the form exists, so the first step shows
// a button linked to an identifier nobody has published yet.
func runDemo(logger *slog.Logger, formID, buttonID string, dedup bool) demoTranscript {
	reg := link.New(link.WithDedup(dedup), link.WithLogger(logger))
	t := demoTranscript{FormID: formID, ButtonID: buttonID}

	var form *widget.FormModel
	button := widget.NewButton(reg, widget.ButtonOptions{
		ID:           buttonID,
		Label:        "Submit",
		LinkedFormID: formID,
	})
	record := func(action string) {
		step := demoStep{
			Action:         action,
			ButtonDisabled: button.IsDisabled(),
			LinkedFormID:   button.LinkedFormID(),
			Binding:        button.Binding().String(),
			Records:        reg.Len(),
		}
		if form != nil {
			step.FormValue = form.Value()
			step.FormState = form.State()
		}
		logger.Debug("demo step", "action", action, "disabled", step.ButtonDisabled, "binding", step.Binding)
		t.Steps = append(t.Steps, step)
	}

	record("button mounted, form not published")

	form = widget.NewForm(reg, widget.FormOptions{ID: formID, Label: "Project name"})
	record("form mounted empty")

	form.SetValue("widgetlink")
	record(`typed "widgetlink"`)

	form.Clear()
	record("cleared form")

	form.SetButtonState(link.ButtonStateEnabled)
	record("override buttonState=enabled")

	form.SetButtonState("")
	form.SetValue("  ")
	record("override removed, whitespace only")

	other := formID + "-other"
	button.SetLinkedFormID(other)
	record("relinked to " + other)

	button.SetLinkedFormID(formID)
	record("relinked to " + formID)

	form.Close()
	record("form unmounted")

	t.Records = reg.Snapshot()
	button.Close()
	return t
}

func (t demoTranscript) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "form %q  button %q\n\n", t.FormID, t.ButtonID)
	for i, s := range t.Steps {
		state := "enabled"
		if s.ButtonDisabled {
			state = "disabled"
		}
		fmt.Fprintf(&b, "%d. %-40s button %-8s  value %-14q %s  records=%d\n",
			i+1, s.Action, state, s.FormValue, s.Binding, s.Records)
	}
	return b.String()
}

func init() {
	demoCmd.Flags().String("form-id", "my-form-123", "Identifier the form publishes under")
	demoCmd.Flags().String("button-id", "my-button-456", "Identifier the button publishes under")
	demoCmd.Flags().Bool("dedup", false, "Skip notifications for unchanged payloads")
	demoCmd.Flags().BoolP("quiet", "q", false, "Hide the spinner")
	demoCmd.Flags().Bool("verbose", false, "Log registry activity to stderr")
	demoCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	rootCmd.AddCommand(demoCmd)
}
