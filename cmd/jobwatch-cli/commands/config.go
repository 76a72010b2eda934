package commands

import (
	"os"

	"jobwatch/lib/configutil"
	"jobwatch/lib/serviceutil"
)

type Config struct {
	Source    string `json:"source"`
	District  string `json:"district"`
	UserAgent string `json:"user_agent"`
	OutputDir string `json:"output_dir"`
}

// config.json5 is optional, missing fields fall back to the defaults
func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.Source == "" {
		cfg.Source = "Washington County School District"
	}
	if cfg.District == "" {
		cfg.District = "washk12"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "jobdata"
	}
	return cfg
}
