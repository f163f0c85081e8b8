package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/jsandoval/clockfill/pkg/models"
	"github.com/spf13/viper"
)

// Environment variables consulted when the config file leaves the
// corresponding field empty.
const (
	envAPIKey      = "CLOCKIFY_API_KEY"
	envWorkspaceID = "CLOCKIFY_WORKSPACE_ID"
)

// defaultDayStartHour is when the first slot of a day begins if the config
// does not say otherwise.
const defaultDayStartHour = 9

// LoadConfig reads a clockfill YAML config file via Viper and resolves
// environment placeholders, returning fully resolved values. It does not
// validate; call ValidateConfig before planning.
func LoadConfig(path string) (*models.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("day_start_hour", defaultDayStartHour)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &models.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.APIKey = resolvePlaceholder(cfg.APIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(envAPIKey)
	}
	if cfg.WorkspaceID == "" {
		cfg.WorkspaceID = os.Getenv(envWorkspaceID)
	}

	applyScheduleDefaults(cfg, v.Get("schedule"))

	return cfg, nil
}

// ConfigFromEnv builds a config purely from the environment, for commands
// that can run without a config file.
func ConfigFromEnv() *models.Config {
	return &models.Config{
		APIKey:       os.Getenv(envAPIKey),
		WorkspaceID:  os.Getenv(envWorkspaceID),
		DayStartHour: defaultDayStartHour,
	}
}

// applyScheduleDefaults fills per-item defaults. Billable defaults to true,
// which mapstructure cannot express on a bool field, so the raw YAML value is
// inspected to tell "absent" apart from "explicitly false".
func applyScheduleDefaults(cfg *models.Config, rawSchedule interface{}) {
	rawItems, _ := rawSchedule.([]interface{})

	for i := range cfg.Schedule {
		if cfg.Schedule[i].DailyMinutes == 0 {
			cfg.Schedule[i].DailyMinutes = defaultDailyMinutes
		}

		billableSet := false
		if i < len(rawItems) {
			if m, ok := rawItems[i].(map[string]interface{}); ok {
				_, billableSet = m["billable"]
			}
		}
		if !billableSet {
			cfg.Schedule[i].Billable = true
		}
	}
}

// ValidateConfig checks the invariants that must hold before any planning
// begins. A violation is a fatal configuration error; no partial run happens.
func ValidateConfig(cfg *models.Config) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("api key not set: add api_key to the config or set %s", envAPIKey)
	}
	if cfg.WorkspaceID == "" {
		return fmt.Errorf("workspace id not set: add workspace_id to the config or set %s", envWorkspaceID)
	}

	for i, item := range cfg.Schedule {
		if item.ProjectID == "" {
			return fmt.Errorf("schedule item %d: project_id is required", i+1)
		}
		if item.DailyMinutes <= 0 {
			return fmt.Errorf("schedule item %d (%s): daily_minutes must be positive, got %d", i+1, item.Name, item.DailyMinutes)
		}
	}

	return nil
}

// resolvePlaceholder expands a ${VAR} value against the environment. Plain
// values pass through unchanged.
func resolvePlaceholder(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(value[2 : len(value)-1])
	}
	return value
}
