package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"widget-backend/src/config"
	"widget-backend/src/data_source/fmp"
	"widget-backend/src/data_source/github"
	"widget-backend/src/data_source/starhistory"
	"widget-backend/src/interfaces"
	"widget-backend/src/logger"
	"widget-backend/src/network"
	"widget-backend/src/scheduler"
	"widget-backend/src/server"
	"widget-backend/src/service"
	"widget-backend/src/utils"
	"widget-backend/src/widgets"
)

const shutdownTimeout = 10 * time.Second

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	writeConfig := flag.String("write-config", "", "write the effective config (without credentials) to this path and exit")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := config.Save(*writeConfig); err != nil {
			fmt.Printf("Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Effective config written to %s\n", *writeConfig)
		return
	}

	// Setup logger
	appLogger := logger.NewLogger(config.MConfig, config.Name)

	// 1. Upstream clients
	var networkManager interfaces.INetworkManager = network.NewNetworkManager(config.MConfig, appLogger.Named("network"))

	var financial interfaces.IFinancialSource = fmp.NewFMPSource(config.Providers.FMP, networkManager, appLogger.Named("fmp"))
	var repos interfaces.IRepoSource = github.NewGitHubSource(config.Providers.GitHub, networkManager, appLogger.Named("github"))
	var charts interfaces.IChartSource = starhistory.NewStarHistorySource(config.Providers.StarHistory, networkManager, appLogger.Named("star-history"))

	// 2. Pipelines and metadata
	svc := service.NewWidgetService(config.MConfig, financial, repos, charts, appLogger.Named("service"))
	registry := widgets.NewRegistry(config.MConfig, financial.Name())

	// 3. HTTP server
	srv := server.NewServer(config.MConfig, svc, registry, appLogger.Named("server"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Live feed
	var sched *scheduler.Scheduler
	if config.Live.Enabled {
		markets := utils.NewMarketScheduler(config.Defaults.Tickers, appLogger.Named("markets"))
		sched = scheduler.NewScheduler(ctx, config.MConfig, svc, srv, markets, appLogger.Named("scheduler"))
		if err := sched.Register(config.Live.Schedule); err != nil {
			appLogger.Critical("Failed to schedule live feed: %v", err)
		}
		sched.Start()
		go sched.RefreshAll()
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Info("Received %s, shutting down...", sig)
	}

	cancel()
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Shutdown: %v", err)
	}
	appLogger.Info("Bye")
}
