package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/dupc-swap/internal/logger"
	"github.com/rovshanmuradov/dupc-swap/internal/ui"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/router"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/screen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultLogBufferSize = 1000

type tuiOptions struct {
	logFile string
}

func newTUICommand(opts *globalOptions) *cobra.Command {
	var tuiOpts tuiOptions

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive swap form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts, tuiOpts)
		},
	}
	cmd.Flags().StringVar(&tuiOpts.logFile, "log-file", "", "Append log entries evicted from the in-memory buffer to this file")
	return cmd
}

// appModel is the top-level bubbletea model. It owns the router and keeps
// the last window size.
type appModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(ctx context.Context, app *App, logs *logger.LogBuffer) *appModel {
	swapScreen := screen.NewSwapScreen(screen.SwapDeps{
		Context: ctx,
		Widget:  app.Widget,
		Status:  app.WalletStatus,
		Logs:    logs,
		Logger:  app.Logger,
	})

	factory := func(route ui.Route) router.Screen {
		switch route {
		case ui.RouteLogs:
			return screen.NewLogsScreen(logs)
		default:
			return nil
		}
	}

	return &appModel{router: router.New(ui.RouteSwap, swapScreen, factory)}
}

func (m *appModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	_, cmd := m.router.Update(msg)
	return m, cmd
}

func (m *appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}

func runTUI(cmd *cobra.Command, opts *globalOptions, tuiOpts tuiOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logs, err := logger.NewLogBuffer(defaultLogBufferSize, tuiOpts.logFile)
	if err != nil {
		return fmt.Errorf("failed to create log buffer: %w", err)
	}
	defer func() {
		_ = logs.Close()
	}()

	log, err := logger.CreateTUILogger(cfg.DebugLogging, logs)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer closeApp(app)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log.Info("Starting DUPC swap TUI", logFields(app)...)

	model := ui.NewSafeModel(newAppModel(ctx, app, logs), log)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(done)
		_, err := program.Run()
		// a cancelled context is a normal shutdown
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			serveCtx, cancel := context.WithCancel(gctx)
			defer cancel()
			go func() {
				select {
				case <-done:
					cancel()
				case <-serveCtx.Done():
				}
			}()
			return app.Metrics.Serve(serveCtx, cfg.MetricsAddr, log)
		})
	}

	g.Go(func() error {
		select {
		case <-gctx.Done():
			log.Info("Shutting down TUI")
			program.Quit()
		case <-done:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("TUI failed", zap.Error(err))
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
