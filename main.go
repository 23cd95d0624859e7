package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Haree123/document-editor/app"
	"github.com/Haree123/document-editor/config"
	"github.com/Haree123/document-editor/document"
	"github.com/Haree123/document-editor/logging"
	"github.com/Haree123/document-editor/msg"
	"github.com/Haree123/document-editor/style"
	"github.com/Haree123/document-editor/telemetry"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", os.Getenv("DOCED_PROFILE"), "Profile directory holding editor.yaml (default ~/.doced)")
	fileFlag := flag.String("file", os.Getenv("DOCED_FILE"), "YAML document to open and watch for changes")
	themeFlag := flag.String("theme", os.Getenv("DOCED_THEME"), "Color theme: dark, light, catppuccin, tokyo-night or auto")
	logFlag := flag.String("log-file", os.Getenv("DOCED_LOG"), "Write JSON logs to this file")
	debugFlag := flag.Bool("debug", os.Getenv("DOCED_DEBUG") != "", "Log at debug level")
	metricsFlag := flag.String("metrics-addr", os.Getenv("DOCED_METRICS_ADDR"), "Serve Prometheus metrics on this address")
	settleFlag := flag.String("settle", os.Getenv("DOCED_SETTLE"), "Measurement settle mode: timer or frame")
	initConfig := flag.Bool("init-config", false, "Write the effective settings to editor.yaml and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("doced %s\n", version)
		os.Exit(0)
	}

	profileDir := *profileFlag
	if profileDir == "" {
		home, _ := os.UserHomeDir()
		profileDir = filepath.Join(home, ".doced")
	}

	cfg := config.Load(profileDir)
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if *logFlag != "" {
		cfg.LogFile = *logFlag
	}
	if *metricsFlag != "" {
		cfg.MetricsAddr = *metricsFlag
	}
	if *settleFlag != "" {
		cfg.SettleMode = *settleFlag
	}
	cfg.Validate()

	if *initConfig {
		if err := config.Save(profileDir, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "doced: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", filepath.Join(profileDir, "editor.yaml"))
		os.Exit(0)
	}

	log := logging.New(logging.Options{Path: cfg.LogFile, Debug: *debugFlag})
	defer func() { _ = log.Sync() }()

	// Pick the theme before any rendering.
	if cfg.Theme == "" || cfg.Theme == "auto" || !style.SetTheme(cfg.Theme) {
		if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
			style.SetTheme("dark")
		} else {
			style.SetTheme("light")
		}
	}

	opts := app.Options{Config: cfg, Logger: log, Metrics: telemetry.New()}
	if *fileFlag != "" {
		doc, err := document.Load(*fileFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "doced: %v\n", err)
			os.Exit(1)
		}
		opts.Doc, opts.Source = doc, *fileFlag
	}

	if err := run(opts, *fileFlag, log); err != nil {
		fmt.Fprintf(os.Stderr, "doced: %v\n", err)
		os.Exit(1)
	}
}

// run drives the program, the metrics server and the document watcher
// until the program exits or one of them fails.
func run(opts app.Options, watchPath string, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	p := tea.NewProgram(app.New(opts), tea.WithContext(gctx))

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
			return nil
		}
		return err
	})

	if addr := opts.Config.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", opts.Metrics.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			log.Info("serving metrics", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdown, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			return srv.Shutdown(shutdown)
		})
	}

	if watchPath != "" {
		w := document.NewWatcher(watchPath, func(doc *document.Document, err error) {
			p.Send(msg.DocumentLoaded{Doc: doc, Source: watchPath, Err: err})
		}, log.Named("watch"))
		g.Go(func() error { return w.Run(gctx) })
	}

	return g.Wait()
}
