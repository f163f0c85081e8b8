package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsandoval/clockfill/pkg/models"
)

// writeConfig writes a config file into dir and returns its path.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_ReadsValues(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
api_key: "key-123"
workspace_id: "ws-456"
day_start_hour: 8
schedule:
  - project_id: "P1"
    name: "Internal"
    daily_minutes: 90
    description_templates:
      - "planning, review"
    billable: false
  - project_id: "P2"
    name: "Client"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "key-123" {
		t.Errorf("APIKey = %q, want key-123", cfg.APIKey)
	}
	if cfg.WorkspaceID != "ws-456" {
		t.Errorf("WorkspaceID = %q, want ws-456", cfg.WorkspaceID)
	}
	if cfg.DayStartHour != 8 {
		t.Errorf("DayStartHour = %d, want 8", cfg.DayStartHour)
	}
	if len(cfg.Schedule) != 2 {
		t.Fatalf("got %d schedule items, want 2", len(cfg.Schedule))
	}

	first := cfg.Schedule[0]
	if first.ProjectID != "P1" || first.Name != "Internal" || first.DailyMinutes != 90 {
		t.Errorf("first item = %+v", first)
	}
	if first.Billable {
		t.Error("explicit billable: false was overridden")
	}
	if len(first.DescriptionTemplates) != 1 || first.DescriptionTemplates[0] != "planning, review" {
		t.Errorf("templates = %v", first.DescriptionTemplates)
	}

	second := cfg.Schedule[1]
	if second.DailyMinutes != 60 {
		t.Errorf("daily_minutes defaulted to %d, want 60", second.DailyMinutes)
	}
	if !second.Billable {
		t.Error("billable should default to true when absent")
	}
}

func TestLoadConfig_DefaultDayStartHour(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
api_key: "key"
workspace_id: "ws"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DayStartHour != 9 {
		t.Errorf("DayStartHour = %d, want the default 9", cfg.DayStartHour)
	}
}

func TestLoadConfig_ResolvesEnvPlaceholder(t *testing.T) {
	t.Setenv("CLOCKFILL_TEST_KEY", "from-env")
	path := writeConfig(t, t.TempDir(), `
api_key: ${CLOCKFILL_TEST_KEY}
workspace_id: "ws"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want the resolved environment value", cfg.APIKey)
	}
}

func TestLoadConfig_EnvFallbacks(t *testing.T) {
	t.Setenv("CLOCKIFY_API_KEY", "env-key")
	t.Setenv("CLOCKIFY_WORKSPACE_ID", "env-ws")
	path := writeConfig(t, t.TempDir(), `
day_start_hour: 10
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "env-key" || cfg.WorkspaceID != "env-ws" {
		t.Errorf("config = %+v, want environment fallbacks applied", cfg)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *models.Config {
		return &models.Config{
			APIKey:       "key",
			WorkspaceID:  "ws",
			DayStartHour: 9,
			Schedule: []models.ScheduleItem{
				{ProjectID: "P1", DailyMinutes: 60},
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		if err := ValidateConfig(valid()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := valid()
		cfg.APIKey = ""
		err := ValidateConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), "api key") {
			t.Errorf("err = %v, want api key error", err)
		}
	})

	t.Run("missing workspace", func(t *testing.T) {
		cfg := valid()
		cfg.WorkspaceID = ""
		err := ValidateConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), "workspace") {
			t.Errorf("err = %v, want workspace error", err)
		}
	})

	t.Run("missing project id", func(t *testing.T) {
		cfg := valid()
		cfg.Schedule[0].ProjectID = ""
		err := ValidateConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), "project_id") {
			t.Errorf("err = %v, want project_id error", err)
		}
	})

	t.Run("negative duration", func(t *testing.T) {
		cfg := valid()
		cfg.Schedule[0].DailyMinutes = -30
		err := ValidateConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), "daily_minutes") {
			t.Errorf("err = %v, want daily_minutes error", err)
		}
	})

	t.Run("empty schedule is allowed", func(t *testing.T) {
		cfg := valid()
		cfg.Schedule = nil
		if err := ValidateConfig(cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CLOCKIFY_API_KEY", "env-key")
	t.Setenv("CLOCKIFY_WORKSPACE_ID", "env-ws")

	cfg := ConfigFromEnv()
	if cfg.APIKey != "env-key" || cfg.WorkspaceID != "env-ws" {
		t.Errorf("config = %+v, want values from the environment", cfg)
	}
	if cfg.DayStartHour != 9 {
		t.Errorf("DayStartHour = %d, want the default 9", cfg.DayStartHour)
	}
}
