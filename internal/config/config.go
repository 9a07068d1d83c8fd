// internal/config/config.go
//
// Runtime configuration read from the environment (after godotenv has
// loaded any .env file in main).
//
// Environment variables:
//   GENIE_MIN / GENIE_MAX      inclusive bounds of the secret number (1 / 100)
//   GENIE_SUGGESTIONS          number of suggestion chips (3)
//   DEFAULT_LOCALE             fallback locale for prompt strings (en-US)
//   PROMPTS_DIR                directory of <locale>.yaml bundles (embedded if empty)
//   PROJECT_ID                 hosting project; default asset host + webhook audience
//   ASSET_BASE_URL             overrides the asset host derived from PROJECT_ID
//   DB_PATH                    SQLite file for sessions + daily results (memory if empty)
//   PORT                       HTTP port (5175)
//   LOG_LEVEL                  zerolog level (info)
//   WEBHOOK_SECRET             HS256 secret for signed webhook requests (off if empty)
//   DAILY_SALT                 salt for the daily number
//   CLIENT_ORIGIN              CORS origin for browser clients

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/robalobadob/numbergenie/internal/media"
)

// Config is the validated runtime configuration.
type Config struct {
	Min           int
	Max           int
	Suggestions   int
	DefaultLocale string
	PromptsDir    string
	ProjectID     string
	AssetBaseURL  string
	DBPath        string
	Port          string
	LogLevel      string
	WebhookSecret string
	DailySalt     string
	ClientOrigin  string
}

// Load reads and validates configuration from the environment.
func Load() (Config, error) {
	c := Config{
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en-US"),
		PromptsDir:    os.Getenv("PROMPTS_DIR"),
		ProjectID:     getEnv("PROJECT_ID", "number-genie"),
		AssetBaseURL:  os.Getenv("ASSET_BASE_URL"),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
	var err error
	if c.Min, err = envInt("GENIE_MIN", 1); err != nil {
		return Config{}, err
	}
	if c.Max, err = envInt("GENIE_MAX", 100); err != nil {
		return Config{}, err
	}
	if c.Suggestions, err = envInt("GENIE_SUGGESTIONS", 3); err != nil {
		return Config{}, err
	}
	if c.AssetBaseURL == "" {
		c.AssetBaseURL = media.BaseURLForProject(c.ProjectID)
	}
	return c, c.Validate()
}

// Validate checks the invariants the game relies on.
func (c Config) Validate() error {
	if c.Min >= c.Max {
		return fmt.Errorf("config: GENIE_MIN (%d) must be below GENIE_MAX (%d)", c.Min, c.Max)
	}
	if c.Suggestions < 0 {
		return errors.New("config: GENIE_SUGGESTIONS must not be negative")
	}
	if c.DefaultLocale == "" {
		return errors.New("config: DEFAULT_LOCALE is required")
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer", k, v)
	}
	return n, nil
}
