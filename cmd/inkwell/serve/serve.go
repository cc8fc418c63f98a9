// Package servecmder provides the serve command for running the browser UI.
package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/client"
	"github.com/inkwellhq/inkwell/pkg/config"
	"github.com/inkwellhq/inkwell/pkg/dotdir"
	"github.com/inkwellhq/inkwell/pkg/feeds"
	"github.com/inkwellhq/inkwell/pkg/history"
	"github.com/inkwellhq/inkwell/pkg/logger"
	"github.com/inkwellhq/inkwell/pkg/models"
	"github.com/inkwellhq/inkwell/web"
)

type serveCommander struct {
	listen     string
	target     string
	feedsPath  string
	modelsPath string
	sqlitePath string
	logFile    string
	noHistory  bool
	debug      bool

	logger *slog.Logger
}

const serveLongDesc string = `Run the inkwell web UI.

Serves the search and Ask AI pages, talking to the configured backend.
The feed registry file is watched for changes and reloaded without a
restart.

Configuration precedence: flags > INKWELL_* environment variables >
config.toml > defaults.

Example:
  inkwell serve
  inkwell serve --listen :9000 --backend-target http://backend:8080
  INKWELL_WEB_LISTEN=:9000 inkwell serve`

const serveShortDesc string = "Run the inkwell web UI"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagWebListen,
				config.FlagBackendTarget,
				config.FlagFeedsPath,
				config.FlagModelsPath,
				config.FlagSQLite,
			})

			cmder.listen = v.GetString("web.listen")
			cmder.target = v.GetString("backend.target")
			cmder.feedsPath = v.GetString("registry.feeds_path")
			cmder.modelsPath = v.GetString("registry.models_path")
			cmder.sqlitePath = v.GetString("storage.sqlite_path")

			// Registry and storage paths default to files inside the
			// resolved .inkwell/ directory.
			ddm := dotdir.NewManager()
			ddTarget, err := ddm.Target(configDir)
			if err != nil {
				return fmt.Errorf("resolving config directory: %w", err)
			}
			if ddTarget != "" {
				cfg := config.NewDefaultConfig()
				cfg.Registry.FeedsPath = cmder.feedsPath
				cfg.Registry.ModelsPath = cmder.modelsPath
				cfg.Storage.SQLitePath = cmder.sqlitePath
				cmder.feedsPath = cfg.FeedsPath(ddTarget)
				cmder.modelsPath = cfg.ModelsPath(ddTarget)
				cmder.sqlitePath = cfg.HistoryPath(ddTarget)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagWebListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagBackendTarget, &cmder.target)
	config.AddStringFlag(cmd, config.Flags, config.FlagFeedsPath, &cmder.feedsPath)
	config.AddStringFlag(cmd, config.Flags, config.FlagModelsPath, &cmder.modelsPath)
	config.AddStringFlag(cmd, config.Flags, config.FlagSQLite, &cmder.sqlitePath)
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write logs to this file (JSON)")
	cmd.Flags().BoolVar(&cmder.noHistory, "no-history", false, "Do not record asks in the local history")

	return cmd
}

func (c *serveCommander) run() error {
	c.logger = c.buildLogger()

	feedReg, err := feeds.Load(c.feedsPath)
	if err != nil {
		return fmt.Errorf("loading feed registry: %w", err)
	}

	modelReg, err := models.Load(c.modelsPath)
	if err != nil {
		return fmt.Errorf("loading model registry: %w", err)
	}

	var hist *history.Store
	if !c.noHistory && c.sqlitePath != "" {
		hist, err = history.Open(c.sqlitePath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer hist.Close()
		c.logger.Info("recording asks", "sqlite", c.sqlitePath)
	}

	backend := client.New(c.target, client.WithLogger(c.logger))

	server := web.NewServer(
		web.Config{ListenAddr: c.listen},
		backend,
		feedReg,
		modelReg,
		hist,
		c.logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Reload the feed registry when the file changes on disk.
	go func() {
		if werr := feeds.Watch(ctx, c.feedsPath, c.logger, server.ReloadFeeds); werr != nil {
			c.logger.Error("feed watcher stopped", "error", werr)
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		if rerr := server.Run(); rerr != nil {
			errChan <- fmt.Errorf("web server error: %w", rerr)
		}
	}()

	c.logger.Info("serving web UI",
		"listen", c.listen,
		"backend", c.target,
		"feeds", c.feedsPath,
	)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		c.logger.Info("received signal, shutting down")
		return server.Shutdown()
	}
}

// buildLogger writes pretty logs to stderr and, with --log-file, JSON logs
// to the file as well.
func (c *serveCommander) buildLogger() *slog.Logger {
	stderrLogger := logger.New(
		logger.WithDebug(c.debug),
		logger.WithWriter(os.Stderr),
		logger.WithPretty(logger.IsTerminal(os.Stderr)),
	)

	if c.logFile == "" {
		return stderrLogger
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		stderrLogger.Error("failed to open log file, logging to stderr only", "error", err)
		return stderrLogger
	}

	fileLogger := logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
	)

	return logger.Multi(stderrLogger, fileLogger)
}
