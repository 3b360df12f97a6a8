package config

import "github.com/kelseyhightower/envconfig"

// Config holds the service configuration, read from environment variables.
type Config struct {
	Addr            string `envconfig:"DASHBOARD_ADDR" default:":8080"`
	DatasetPath     string `envconfig:"DATASET_PATH" default:"data/ccd_aloe.csv"`
	DatasetURL      string `envconfig:"DATASET_URL" default:""`
	RefreshSchedule string `envconfig:"REFRESH_SCHEDULE" default:"@every 15m"`
	ViewsPath       string `envconfig:"VIEWS_PATH" default:"configs/dashboard.yaml"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFile         string `envconfig:"LOG_FILE" default:"log/run.log"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
