package models

// Config holds the fully resolved clockfill configuration. API key environment
// placeholders are resolved during loading; the core only ever sees final
// values.
type Config struct {
	APIKey       string         `yaml:"api_key" mapstructure:"api_key"`
	WorkspaceID  string         `yaml:"workspace_id" mapstructure:"workspace_id"`
	DayStartHour int            `yaml:"day_start_hour" mapstructure:"day_start_hour"`
	Schedule     []ScheduleItem `yaml:"schedule" mapstructure:"schedule"`
}
