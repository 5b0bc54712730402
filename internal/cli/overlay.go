package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/gpuoverlay/internal/config"
	"github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"github.com/rileyhilliard/gpuoverlay/internal/observability"
	"github.com/rileyhilliard/gpuoverlay/internal/overlay"
	"github.com/rileyhilliard/gpuoverlay/internal/prefs"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
	"golang.org/x/term"
)

// overlayCommand runs the overlay until the user quits.
func overlayCommand(ctx context.Context, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTTY,
			"gpuoverlay needs a terminal",
			"Run it in an interactive terminal, or use 'gpuoverlay sample' for one-off readings")
	}
	// With --source stdin the events arrive on stdin, so keyboard input has to
	// come from the controlling terminal instead.
	var programOpts []tea.ProgramOption
	if cfg.Source == config.SourceStdin {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New(errors.ErrTTY,
				"--source stdin expects events piped in",
				"Pipe a JSON-lines event stream into gpuoverlay, e.g. 'exporter | gpuoverlay --source stdin'")
		}
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	logFile, err := openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logger.NewEnvLogger("[gpuoverlay]")
	logger.SetDefault(log)

	store, err := openPrefs(cfg)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	bus := telemetry.NewBus(telemetry.DefaultBuffer)
	defer bus.Close()

	if cfg.MetricsAddr != "" {
		metrics := observability.NewMetrics()
		bus.OnDrop = metrics.Dropped

		srv := observability.NewServer(cfg.MetricsAddr, metrics, logger.NewEnvLogger("[metrics]"))
		if err := srv.Start(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot serve metrics on "+cfg.MetricsAddr,
				"Pick a free port with --metrics-addr, or leave it empty to disable metrics")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()

		metricsSub := bus.Subscribe(cfg.Event)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for payload := range metricsSub.C() {
				metrics.Observe(payload)
			}
		}()
	}

	src, err := newFeed(cfg, bus, os.Stdin, logger.NewEnvLogger("[source]"))
	if err != nil {
		return err
	}

	model := overlay.New(overlay.Options{
		Store:        store,
		Subscription: bus.Subscribe(cfg.Event),
		Logger:       logger.NewEnvLogger("[overlay]"),
	})

	// Not tracked by wg: a stdin read can't be interrupted.
	srcCtx, cancelSrc := context.WithCancel(ctx)
	defer cancelSrc()
	go func() {
		if err := src.Run(srcCtx); err != nil {
			log.Error("%v", err)
		}
	}()

	programOpts = append(programOpts,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	p := tea.NewProgram(model, programOpts...)
	_, err = p.Run()

	// Stop the source first, then close the bus so every subscriber drains.
	cancelSrc()
	bus.Close()

	if err != nil && ctx.Err() != nil {
		// Interrupted by a signal: not an error worth reporting.
		return nil
	}
	return err
}

// openLog points the standard logger at the log file while the TUI owns the screen.
func openLog() (*os.File, error) {
	path := logger.FilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create the log directory",
			"Set "+logger.LogFileEnv+" to a writable path")
	}
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file "+path,
			"Set "+logger.LogFileEnv+" to a writable path")
	}
	return f, nil
}

// openPrefs opens the configured prefs file, or the default one.
func openPrefs(cfg *config.Config) (*prefs.FileStore, error) {
	path := cfg.PrefsFile
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return prefs.OpenFile(path, logger.NewEnvLogger("[prefs]")), nil
}
