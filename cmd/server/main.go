package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lanterna/internal/config"
	"lanterna/internal/discovery"
	"lanterna/internal/handler"
	"lanterna/internal/hub"
	"lanterna/internal/lifecycle"
	"lanterna/internal/logger"
	"lanterna/internal/netinfo"
	"lanterna/internal/probe"
	"lanterna/internal/service"
)

const appVersion = "0.1.0"

var (
	cfgFile  string
	flagHost string
	flagPort int
	logLevel string

	rootCmd = &cobra.Command{
		Use:     "lanterna",
		Short:   "Local network diagnostics assistant",
		Long:    "Lanterna runs connectivity probes, collects local addressing,\nand listens for LLDP/CDP advertisements to identify the upstream switch.",
		Version: appVersion,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the diagnostics HTTP server",
		Run:   runServe,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lanterna %s\n", appVersion)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: search standard locations)")
	serveCmd.Flags().StringVar(&flagHost, "host", "", "listen host (overrides config)")
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then file,
// then environment, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, string) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if cfgFile != "" {
		cfg, path, err = config.LoadFromPath(cfgFile)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", path, err)
		os.Exit(1)
	}

	if cmd.Flags().Changed("host") {
		cfg.Server.Host = flagHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = flagPort
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	return cfg, path
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, cfgPath := loadConfig(cmd)

	logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	logger.Infof("starting lanterna %s", appVersion)
	if cfgPath != "" {
		logger.Infof("config loaded from %s", cfgPath)
	} else {
		logger.Infof("no config file found, using defaults")
	}

	// Core components
	collector := netinfo.NewCollector(0)
	runner := probe.NewRunner(probe.Config{
		PingTimeout:    cfg.Probes.PingTimeout.Duration(),
		DNSTimeout:     cfg.Probes.DNSTimeout.Duration(),
		TCPTimeout:     cfg.Probes.TCPTimeout.Duration(),
		TraceTimeout:   cfg.Probes.TraceTimeout.Duration(),
		DefaultTCPPort: cfg.Probes.DefaultTCPPort,
	})
	engine := discovery.NewEngine(discovery.EngineConfig{
		Window:    cfg.Capture.Window.Duration(),
		SnapLen:   cfg.Capture.SnapLen,
		Interface: cfg.Capture.Interface,
	}, discovery.NewDetector())

	// Orchestration service and event plumbing
	eventBus := service.NewEventBus()
	diag := service.NewDiagnostics(appVersion, runner, engine, collector, eventBus)
	diag.SetHistorySize(cfg.Probes.HistorySize)
	engine.SetEventPublisher(diag)

	manager := lifecycle.NewManager()

	// SSE hub with an event bus bridge
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()

	sseHub := hub.New()
	go sseHub.Run(hubCtx)

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-hubCtx.Done():
				return
			}
		}
	}()

	// HTTP handlers
	apiHandler := handler.NewDiagnosticsHandler(diag)
	apiHandler.SetRestartRequester(manager)

	mux := http.NewServeMux()
	apiHandler.RegisterRoutes(mux, sseHub)

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     finalHandler,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: SSE responses stay open indefinitely
	}

	go func() {
		logger.Infof("server listening on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Wait for a signal or an API restart request
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Infof("received %s, shutting down", sig)
	case <-manager.Done():
		logger.Infof("restart requested, shutting down for relaunch")
		eventBus.Publish(service.Event{Type: service.EventRestartRequested})
		// Let the event reach SSE subscribers before teardown
		time.Sleep(100 * time.Millisecond)
	}

	if err := diag.CancelDiscovery(); err == nil {
		logger.Infof("cancelled in-flight link discovery")
	}

	hubCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown error: %v", err)
	}

	if manager.Requested() {
		logger.Infof("relaunching %s", os.Args[0])
		if err := lifecycle.Relaunch(); err != nil {
			logger.Errorf("relaunch failed: %v", err)
		}
	}

	logger.Infof("server stopped")
}
