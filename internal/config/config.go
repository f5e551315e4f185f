package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	Env            string        `yaml:"env"`
	JWTSecret      string        `yaml:"jwt_secret"`
	APITimeout     time.Duration `yaml:"timeout"`
	DatabasePath   string        `yaml:"database_path"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	UploadDir      string        `yaml:"upload_dir"`
	GoogleAudience string        `yaml:"google_audience"`
	CleanupWorkers int           `yaml:"cleanup_workers"`
}

// Production reports whether error responses should suppress stack traces.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:           getEnv("HRDASH_ADDR", ":5000"),
		Env:            getEnv("HRDASH_ENV", "development"),
		JWTSecret:      getEnv("HRDASH_JWT_SECRET", "supersecretkey"),
		APITimeout:     15 * time.Second,
		DatabasePath:   getEnv("HRDASH_DATABASE_PATH", "hrdash.db"),
		TokenDuration:  30 * 24 * time.Hour,
		UploadDir:      getEnv("HRDASH_UPLOAD_DIR", "uploads"),
		GoogleAudience: getEnv("HRDASH_GOOGLE_AUDIENCE", ""),
		CleanupWorkers: 2,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
