// Package main is the entry point for the 1inch workflow nodes CLI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/fd1az/oneinch-nodes/business/fusion"
	"github.com/fd1az/oneinch-nodes/business/limitorder"
	"github.com/fd1az/oneinch-nodes/business/node"
	nodeApp "github.com/fd1az/oneinch-nodes/business/node/app"
	nodeDI "github.com/fd1az/oneinch-nodes/business/node/di"
	"github.com/fd1az/oneinch-nodes/business/portfolio"
	"github.com/fd1az/oneinch-nodes/business/pricing"
	pricingDI "github.com/fd1az/oneinch-nodes/business/pricing/di"
	"github.com/fd1az/oneinch-nodes/business/swap"
	"github.com/fd1az/oneinch-nodes/internal/apm"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/health"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/metrics"
	"github.com/fd1az/oneinch-nodes/internal/monolith"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type options struct {
	configPath     string
	resource       string
	operation      string
	network        string
	input          string
	continueOnFail bool
	serve          bool
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.resource, "resource", "", "Resource to run, e.g. swap, fusion, price")
	flag.StringVar(&opts.operation, "operation", "", "Operation of the resource, e.g. getQuote")
	flag.StringVar(&opts.network, "network", "", "Network name or chain id (default: configured network)")
	flag.StringVar(&opts.input, "input", "", `JSON array of parameter objects, or "-" for stdin`)
	flag.BoolVar(&opts.continueOnFail, "continue-on-fail", false, "Emit an error record for failed items instead of aborting")
	flag.BoolVar(&opts.serve, "serve", false, "Run the trigger poller with health and metrics servers")
	showVersion := flag.Bool("version", false, "Show version information")
	describe := flag.Bool("describe", false, "Print the node and credential descriptions")
	flag.Parse()

	if *showVersion {
		fmt.Printf("oneinch-nodes %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		cancel()
	}()

	if *describe {
		if err := writeRecords(os.Stdout, descriptions()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var logOpts []logger.Option
	if cfg.App.LogFormat == "json" {
		logOpts = append(logOpts, logger.WithJSON())
	}
	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, apm.TraceID, logOpts...)
	defer log.Sync()

	mp, stopTelemetry, err := startTelemetry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stopTelemetry()
	if mp != nil {
		cfg.Meters = mp
	}

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// node depends on every other module's services
	modules := []monolith.Module{
		&swap.Module{},
		&pricing.Module{},
		&limitorder.Module{},
		&fusion.Module{},
		&portfolio.Module{},
		&node.Module{},
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	if opts.serve {
		return serve(ctx, mono, mp, stdout)
	}
	return execute(ctx, mono, opts, stdin, stdout)
}

func execute(ctx context.Context, mono monolith.Monolith, opts options, stdin io.Reader, stdout io.Writer) error {
	if opts.resource == "" || opts.operation == "" {
		return fmt.Errorf("-resource and -operation are required unless -serve is set")
	}

	items, err := readItems(opts.input, stdin)
	if err != nil {
		return err
	}

	records, err := nodeDI.GetExecutor(mono.Services()).Execute(ctx, nodeApp.Request{
		Resource:       opts.resource,
		Operation:      opts.operation,
		Network:        opts.network,
		Items:          items,
		ContinueOnFail: opts.continueOnFail,
	})
	if err != nil {
		return err
	}
	return writeRecords(stdout, records)
}

// serve runs the health server, the metrics server and the trigger poller
// until ctx is cancelled or one of them fails.
func serve(ctx context.Context, mono monolith.Monolith, mp metrics.MetricProvider, stdout io.Writer) error {
	cfg := mono.Config()
	log := mono.Logger()
	g, ctx := errgroup.WithContext(ctx)

	healthServer := health.NewServer(cfg.Health.Port, version, log)
	healthServer.RegisterCheck("oneinch", health.PingCheck(pricingDI.GetMarketService(mono.Services())))
	g.Go(func() error { return healthServer.Run(ctx) })

	if mp != nil {
		metricsServer := metrics.NewServer(cfg.Telemetry.PrometheusPort, mp, log)
		g.Go(func() error { return metricsServer.Run(ctx) })
	}

	if poller := nodeDI.GetPoller(mono.Services()); poller != nil {
		enc := json.NewEncoder(stdout)
		g.Go(func() error {
			return poller.Run(ctx, func(_ context.Context, event any) error {
				return enc.Encode(event)
			})
		})
	} else {
		log.Info(ctx, "no trigger configured, serving health only")
	}

	log.Info(ctx, "serving until interrupted")
	return g.Wait()
}

// startTelemetry installs tracing and metrics when telemetry is enabled. The
// returned provider is nil when disabled.
func startTelemetry(ctx context.Context, cfg *config.Config, log logger.LoggerInterface) (metrics.MetricProvider, func(), error) {
	if !cfg.Telemetry.Enabled {
		return nil, func() {}, nil
	}

	headers, err := apm.ParseHeaders(cfg.Telemetry.OTLPHeaders)
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry.otlp_headers: %w", err)
	}

	tp, err := apm.NewTraceProvider(ctx, apm.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Exporter:    apm.Exporter(cfg.Telemetry.TraceExporter),
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Headers:     headers,
		Writer:      os.Stderr,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start tracing: %w", err)
	}

	metricOpts := []metrics.OptionFn{
		metrics.WithServiceName(cfg.Telemetry.ServiceName),
		metrics.WithProviderConfig(metrics.ProviderCfg{Provider: metrics.PrometheusProvider}),
	}
	if cfg.Telemetry.OTLPEndpoint != "" && apm.Exporter(cfg.Telemetry.TraceExporter) == apm.OTLPGRPCExporter {
		metricOpts = append(metricOpts, metrics.WithProviderConfig(
			metrics.NewOtelCollectorConfig(cfg.Telemetry.OTLPEndpoint, headers, strings.HasPrefix(cfg.Telemetry.OTLPEndpoint, "http://")),
		))
	}

	mp, err := metrics.NewMetricProvider(ctx, metricOpts...)
	if err != nil {
		_ = tp.Stop(ctx)
		return nil, nil, fmt.Errorf("failed to start metrics: %w", err)
	}

	stop := func() {
		shutdownCtx := context.Background()
		if err := tp.Stop(shutdownCtx); err != nil {
			log.Warn(shutdownCtx, "stopping tracing", "error", err)
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Warn(shutdownCtx, "stopping metrics", "error", err)
		}
	}
	return mp, stop, nil
}
