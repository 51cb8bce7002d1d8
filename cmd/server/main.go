package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/paydown/pkg/config"
	"github.com/yurifrl/paydown/pkg/server"
	"github.com/yurifrl/paydown/pkg/tracker"
	"github.com/yurifrl/paydown/pkg/ynab"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "paydown",
	})

	var (
		cfgFile = flag.String("config", "config.yaml", "Config file")
		listen  = flag.String("listen", "", "Listen address (overrides config)")
	)
	flag.Parse()

	_ = gotenv.Load()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	token, err := cfg.Token()
	if err != nil {
		logger.Fatal("missing YNAB token", "err", err)
	}

	client := ynab.New(token, cfg.YNAB.BudgetID)
	trk := tracker.New(logger, cfg, client)
	srv := server.New(cfg, logger, trk)

	logger.Info("starting server", "addr", cfg.Listen)
	if err := srv.Start(cfg.Listen); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
