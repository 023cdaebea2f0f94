package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/NicolasHaas/govox/pkg/datastore"
	"github.com/NicolasHaas/govox/pkg/logging"
	"github.com/NicolasHaas/govox/pkg/server"
	"github.com/NicolasHaas/govox/pkg/version"
)

func main() {
	cfg := server.DefaultConfig()
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.StorageURL = url
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "TCP/TLS bind address")
	flag.StringVar(&cfg.StorageURL, "db", cfg.StorageURL, "Storage connection URL (overrides DATABASE_URL)")
	flag.StringVar(&cfg.CertFile, "cert", "", "TLS certificate file (auto-generated if empty)")
	flag.StringVar(&cfg.KeyFile, "key", "", "TLS private key file (auto-generated if empty)")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Data directory for generated files")
	flag.StringVar(&cfg.ChannelsFile, "channels-file", "", "YAML file defining channels to create on startup")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "HTTP bind address for Prometheus /metrics (empty to disable)")
	flag.StringVar(&cfg.WelcomeText, "welcome", cfg.WelcomeText, "Welcome text sent on sync")

	logLevel := flag.String("log-level", "info", "Log level: "+logging.LevelNames())
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("govox " + version.Full())
		return
	}

	// Configure structured logging
	if err := logging.Setup(logging.Options{
		Level:  *logLevel,
		Format: *logFormat,
		Output: os.Stdout,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging config: %v\n", err)
		os.Exit(1)
	}

	st, err := datastore.NewStore(cfg.StorageURL)
	if err != nil {
		slog.Error("open database", "err", err)
		os.Exit(1)
	}

	srv := server.New(cfg, server.Dependencies{Store: st})
	if err := srv.Run(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
