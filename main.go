package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
)

var CLI struct {
	Config  string `short:"c" help:"Path to the site configuration file" default:"blog.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Lang []string `short:"l" help:"Only build these languages (default: all)"`
	} `cmd:"" default:"1" help:"Build the blog for every language"`

	Serve struct {
		Port  int  `short:"p" help:"Port to serve the public directory on" default:"3000" env:"PORT"`
		Watch bool `help:"Rebuild on changes to the content directory while serving"`
	} `cmd:"" help:"Build, then serve the public directory"`

	Watch struct{} `cmd:"" help:"Build, then rebuild on changes to the content directory"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("blog365"),
		kong.Description("Static multi-language blog generator for 365cloud.ai."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, kctx.Command()); err != nil {
		slog.Error("Build failed", keyError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	conf, err := readConf(CLI.Config)
	if err != nil {
		return err
	}
	now, err := buildClock()
	if err != nil {
		return err
	}

	var (
		recorder Recorder = noopRecorder{}
		registry *prometheus.Registry
	)
	if command == "serve" {
		registry = prometheus.NewRegistry()
		recorder = newPrometheusRecorder(registry)
	}

	site := NewSite(conf, afero.NewOsFs(), WithClock(now), WithRecorder(recorder))
	langs, err := parseLanguages(CLI.Build.Lang)
	if err != nil {
		return err
	}
	rebuild := func(ctx context.Context) error { return renderSite(ctx, site, langs) }

	if err := rebuild(ctx); err != nil {
		return err
	}

	switch command {
	case "serve":
		if CLI.Serve.Watch {
			go func() {
				if err := rerenderOnChange(ctx, conf.ContentDir, rebuild); err != nil {
					slog.Error("Watcher stopped", keyError, err)
				}
			}()
		}
		return serveSite(ctx, conf.PublicDir, CLI.Serve.Port, registry)
	case "watch":
		return rerenderOnChange(ctx, conf.ContentDir, rebuild)
	}
	return nil
}

func renderSite(ctx context.Context, site *Site, langs []Language) error {
	slog.Info("Writing blog", keyPath, site.conf.OutDir)
	result, err := site.Build(ctx, langs)
	if err != nil {
		return err
	}
	for _, lr := range result.Languages {
		for _, sk := range lr.Skipped {
			slog.Warn("Skipped", langAttr(lr.Lang), keyPath, sk.Path, "reason", sk.Reason)
		}
	}
	return site.CopyStaticFiles()
}

func serveSite(ctx context.Context, dir string, port int, registry *prometheus.Registry) error {
	var gatherer prometheus.Gatherer
	if registry != nil {
		gatherer = registry
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: newServer(afero.NewOsFs(), dir, gatherer),
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	slog.Info("Serving site", keyPath, dir, "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
