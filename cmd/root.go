package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/sst/widgetlink/internal/app"
	"github.com/sst/widgetlink/internal/config"
	"github.com/sst/widgetlink/internal/logging"
	"github.com/sst/widgetlink/internal/pubsub"
	"github.com/sst/widgetlink/internal/tui"
	"github.com/sst/widgetlink/internal/tui/page"
	"github.com/sst/widgetlink/internal/tui/theme"
	"golang.org/x/sync/errgroup"
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "widgetlink",
	Short: "A terminal gallery of linked widgets",
	Long: `widgetlink is a terminal gallery of small widgets (forms, buttons, cards)
that are linked to each other through a shared component registry. A form
publishes its state under an identifier and any button linked to that
identifier enables or disables itself accordingly.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flag("version").Changed {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
			return nil
		}

		logs := logging.NewService(logging.DefaultCapacity)
		lvl := new(slog.LevelVar)
		slog.SetDefault(slog.New(slog.NewTextHandler(logging.NewSlogWriter(logs), &slog.HandlerOptions{Level: lvl})))

		cfg, err := loadConfig(cmd, lvl)
		if err != nil {
			return err
		}
		if name, _ := cmd.Flags().GetString("theme"); name != "" {
			cfg.TUI.Theme = name
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		app := app.New(cfg, logs)

		zone.NewGlobal()
		defer zone.Close()
		program := tea.NewProgram(
			tui.New(app),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)

		app.WatchLinks(ctx, func(lf config.LinkFile) {
			program.Send(page.LinksChangedMsg{FormID: lf.FormID, LinkedFormID: lf.LinkedFormID})
		})

		ch, cancelSubs := setupSubscriptions(ctx, app)

		var g errgroup.Group
		g.Go(func() error {
			defer logging.RecoverPanic("TUI-message-handler", func() {
				attemptTUIRecovery(program)
			})
			for msg := range ch {
				program.Send(msg)
			}
			slog.Info("TUI message channel closed")
			return nil
		})

		result, err := program.Run()

		cancelSubs()
		app.Shutdown()
		if waitErr := g.Wait(); waitErr != nil {
			slog.Error("TUI message handler failed", "error", waitErr)
		}

		if err != nil {
			slog.Error("TUI error", "error", err)
			return fmt.Errorf("TUI error: %w", err)
		}
		slog.Info("TUI exited", "result", fmt.Sprintf("%T", result), "theme", theme.CurrentThemeName())
		return nil
	},
}

// loadConfig applies --cwd and --debug and loads the configuration.
func loadConfig(cmd *cobra.Command, lvl *slog.LevelVar) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return nil, fmt.Errorf("failed to change directory: %w", err)
		}
	} else {
		c, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		cwd = c
	}
	return config.Load(cwd, debug, lvl)
}

// attemptTUIRecovery quits the program after the message handler panicked.
func attemptTUIRecovery(program *tea.Program) {
	slog.Info("Attempting to recover TUI after panic")
	program.Quit()
}

func setupSubscriber[T any](
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	subscriber func(context.Context) <-chan pubsub.Event[T],
	outputCh chan<- tea.Msg,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer logging.RecoverPanic(fmt.Sprintf("subscription-%s", name), nil)

		subCh := subscriber(ctx)
		for {
			select {
			case event, ok := <-subCh:
				if !ok {
					return
				}
				var msg tea.Msg = event
				select {
				case outputCh <- msg:
				case <-time.After(2 * time.Second):
					// not logged: a log line here would feed this same subscription
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// setupSubscriptions forwards service events into a channel for the TUI. The
// returned func cancels the subscriptions and closes the channel once every
// forwarder is done.
func setupSubscriptions(parentCtx context.Context, app *app.App) (chan tea.Msg, func()) {
	ch := make(chan tea.Msg, 100)

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(parentCtx)

	setupSubscriber(ctx, &wg, "logging", app.Logs.Subscribe, ch)
	setupSubscriber(ctx, &wg, "status", app.Status.Subscribe, ch)

	var once sync.Once
	cleanupFunc := func() {
		once.Do(func() {
			cancel()

			waitCh := make(chan struct{})
			go func() {
				defer logging.RecoverPanic("subscription-cleanup", nil)
				wg.Wait()
				close(waitCh)
			}()

			select {
			case <-waitCh:
			case <-time.After(5 * time.Second):
				slog.Warn("Timed out waiting for some subscription goroutines to complete")
			}
			close(ch)
		})
	}
	return ch, cleanupFunc
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Version")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.Flags().StringP("theme", "t", "", "Theme to start with (overrides the config)")
}
