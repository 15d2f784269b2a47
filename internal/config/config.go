// Package config provides configuration management for the Scorecast engine.
package config

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	Results   ResultsConfig   `mapstructure:"results" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig tunes the prediction engine. The defaults encode empirically
// derived constants; override them only with evidence.
type EngineConfig struct {
	FeatureSeed          int64   `mapstructure:"feature_seed"`
	HalftimeGoalFactor   float64 `mapstructure:"halftime_goal_factor" validate:"required,gte=0.4,lte=0.7"`
	LiveBaseGoalRate     float64 `mapstructure:"live_base_goal_rate" validate:"required,gt=0,lt=1"`
	HistoryWindow        int     `mapstructure:"history_window" validate:"required,gt=0"`
	MaxAlternatives      int     `mapstructure:"max_alternatives" validate:"required,gt=0,lte=10"`
	CheckWorkers         int     `mapstructure:"check_workers" validate:"required,gt=0,lte=64"`
	LookupTimeoutSeconds int     `mapstructure:"lookup_timeout_seconds" validate:"required,gt=0"`
	MinAlgorithmSamples  int     `mapstructure:"min_algorithm_samples" validate:"gte=0"`
}

// ResultsConfig configures the result lookup collaborator
type ResultsConfig struct {
	Provider        string  `mapstructure:"provider" validate:"required,resultprovider"`
	BaseURL         string  `mapstructure:"base_url" validate:"omitempty,url"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"gte=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	SimulationSeed  int64   `mapstructure:"simulation_seed"`
}

// SchedulerConfig configures the periodic pending-check job
type SchedulerConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	CheckSchedule string `mapstructure:"check_schedule"`
}

// MetricsConfig configures the Prometheus metrics endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
