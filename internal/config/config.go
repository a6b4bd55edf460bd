package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Model    ModelConfig
	Scoring  ScoringConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// ModelConfig fixes the artifact and data layout. Paths default to the
// conventional artifact/ and data/ directories next to the binary.
type ModelConfig struct {
	ROCAUCArtifactPath string
	PRAUCArtifactPath  string
	DataDir            string
}

type ScoringConfig struct {
	GlobalAvgPurchaseProb float64
	DefaultStrategy       string
	TargetingStrategy     string
}

// DatabaseConfig drives the optional prediction log. Disabled by default;
// the service runs fully without it.
type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("ARTIFACT_DIR", "artifact")
	v.SetDefault("ARTIFACT_ROC_AUC", "best_balancedrf_pipeline.json")
	v.SetDefault("ARTIFACT_PR_AUC", "best_pr_auc_balancedrf.json")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("GLOBAL_AVG_PURCHASE_PROB", 0.15)
	v.SetDefault("DEFAULT_STRATEGY", "roc_auc")
	v.SetDefault("TARGETING_STRATEGY", "pr_auc")
	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "purchase_intent")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	artifactDir := v.GetString("ARTIFACT_DIR")

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Model: ModelConfig{
			ROCAUCArtifactPath: filepath.Join(artifactDir, v.GetString("ARTIFACT_ROC_AUC")),
			PRAUCArtifactPath:  filepath.Join(artifactDir, v.GetString("ARTIFACT_PR_AUC")),
			DataDir:            v.GetString("DATA_DIR"),
		},
		Scoring: ScoringConfig{
			GlobalAvgPurchaseProb: v.GetFloat64("GLOBAL_AVG_PURCHASE_PROB"),
			DefaultStrategy:       v.GetString("DEFAULT_STRATEGY"),
			TargetingStrategy:     v.GetString("TARGETING_STRATEGY"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DB_ENABLED"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
	}

	return cfg, nil
}
