package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type ClassifierConfig struct {
	URL       string `yaml:"url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

type GoogleConfig struct {
	APIKey     string `yaml:"api_key"`
	GeocodeURL string `yaml:"geocode_url"`
	PlacesURL  string `yaml:"places_url"`
	TimeoutMS  int    `yaml:"timeout_ms"`
	DryRun     bool   `yaml:"dry_run"`
}

type GeminiConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Files      FilesConfig      `yaml:"files"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Google     GoogleConfig     `yaml:"google"`
	Gemini     GeminiConfig     `yaml:"gemini"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.Classifier.TimeoutMS <= 0 {
		cfg.Classifier.TimeoutMS = 5000
	}
	if cfg.Google.TimeoutMS <= 0 {
		cfg.Google.TimeoutMS = 5000
	}
	if cfg.Gemini.TimeoutMS <= 0 {
		cfg.Gemini.TimeoutMS = 5000
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "models/gemini-flash-latest"
	}
	return &cfg
}
