package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fifapredict/scorecast/internal/config"
	"github.com/fifapredict/scorecast/internal/engine"
	"github.com/fifapredict/scorecast/internal/evaluation"
	"github.com/fifapredict/scorecast/internal/features"
	applogger "github.com/fifapredict/scorecast/internal/logger"
	"github.com/fifapredict/scorecast/internal/metrics"
	"github.com/fifapredict/scorecast/internal/repository"
	"github.com/fifapredict/scorecast/internal/results"
	"github.com/fifapredict/scorecast/internal/scheduler"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	inputFile  string
	logger     *logrus.Logger
	cfg        *config.Config
	eng        *engine.Engine
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	predictCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to the match input JSON file")
	predictCmd.MarkFlagRequired("input")
}

var rootCmd = &cobra.Command{
	Use:     "predictor",
	Short:   "Exact-score prediction engine for virtual football markets",
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Create a prediction from a match input file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredict(cmd.Context())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <prediction-id>",
	Short: "Check one prediction against the result source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid prediction id %q", args[0])
		}
		return runCheck(cmd.Context(), id)
	},
}

var checkAllCmd = &cobra.Command{
	Use:   "check-all",
	Short: "Check every pending prediction",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckAll(cmd.Context())
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy and calibration statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduler and metrics endpoint until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	rootCmd.AddCommand(predictCmd, checkCmd, checkAllCmd, statsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setupDependencies() error {
	logger = applogger.NewLogger(cfg.App.LogLevel)
	logger.WithFields(logrus.Fields{
		"run_id":      uuid.New().String(),
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Info("Starting predictor")

	repo := repository.NewMemoryPredictionRepository()
	provider, err := buildResultProvider()
	if err != nil {
		return err
	}
	feat := features.NewStochasticProvider(cfg.Engine.FeatureSeed)

	eng = engine.New(repo, provider, feat, logger, engine.Options{
		HalftimeGoalFactor:  cfg.Engine.HalftimeGoalFactor,
		LiveBaseGoalRate:    cfg.Engine.LiveBaseGoalRate,
		HistoryWindow:       cfg.Engine.HistoryWindow,
		MaxAlternatives:     cfg.Engine.MaxAlternatives,
		CheckWorkers:        cfg.Engine.CheckWorkers,
		LookupTimeout:       time.Duration(cfg.Engine.LookupTimeoutSeconds) * time.Second,
		MinAlgorithmSamples: cfg.Engine.MinAlgorithmSamples,
	})
	return nil
}

func buildResultProvider() (results.Provider, error) {
	var inner results.Provider
	switch cfg.Results.Provider {
	case "simulated":
		inner = results.NewSimulatedProvider(cfg.Results.SimulationSeed)
	case "http":
		httpCfg := results.DefaultHTTPConfig(cfg.Results.BaseURL)
		if cfg.Results.RateLimit > 0 {
			httpCfg.RateLimit = cfg.Results.RateLimit
		}
		if cfg.Results.MaxRetries > 0 {
			httpCfg.MaxRetries = cfg.Results.MaxRetries
		}
		inner = results.NewHTTPProvider(httpCfg, logger)
	default:
		return nil, fmt.Errorf("unknown result provider %q", cfg.Results.Provider)
	}
	ttl := time.Duration(cfg.Results.CacheTTLSeconds) * time.Second
	return results.NewCachedProvider(inner, ttl), nil
}

func runPredict(ctx context.Context) error {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var input engine.MatchInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}

	prediction, err := eng.CreatePrediction(ctx, input)
	if err != nil {
		return err
	}
	return printJSON(prediction)
}

func runCheck(ctx context.Context, id int) error {
	outcome, err := eng.CheckPrediction(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(outcome)
}

func runCheckAll(ctx context.Context) error {
	outcomes, err := eng.CheckAllPending(ctx)
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Println("No pending predictions")
		return nil
	}
	return printJSON(outcomes)
}

func runStats(ctx context.Context) error {
	stats, err := eng.Stats(ctx)
	if err != nil {
		return err
	}
	printStatsSummary(stats)
	return printJSON(stats)
}

func runServe(ctx context.Context) error {
	sched := scheduler.NewScheduler(eng, logger)
	if cfg.Scheduler.Enabled {
		if err := sched.SchedulePendingChecks(cfg.Scheduler.CheckSchedule); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
		go func() {
			logger.WithField("address", cfg.Metrics.Address).Info("Metrics endpoint listening")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("Shutting down")
	case <-ctx.Done():
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Metrics server shutdown failed")
		}
	}
	return nil
}

func printStatsSummary(stats evaluation.AccuracyStats) {
	fmt.Printf("Predictions: %d total, %d completed, %d pending\n",
		stats.TotalPredictions, stats.CompletedPredictions, stats.PendingPredictions)
	fmt.Printf("Accuracy: %d%% exact, %d%% including alternatives\n",
		stats.AccuracyRate, stats.AlternativesAccuracy)
	fmt.Printf("Calibration: %d, improvement trend: %+d\n",
		stats.ConfidenceCalibration, stats.ImprovementTrend)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
