package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Review  ReviewConfig  `mapstructure:"review" validate:"omitempty"`
	Bridge  BridgeConfig  `mapstructure:"bridge" validate:"omitempty"`
	Tracker TrackerConfig `mapstructure:"tracker" validate:"omitempty"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir     string `mapstructure:"rootDir" validate:"required"`
	SessionsDir string `mapstructure:"sessionsDir" validate:"required"`
	SchemasDir  string `mapstructure:"schemasDir" validate:"required"`
}

// DataConfig holds session storage configuration
type DataConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// ReviewConfig holds quality-gate settings
type ReviewConfig struct {
	// MinScore overrides the aggregate score below which a task is blocked
	// from expansion. Zero means the default gate.
	MinScore int `mapstructure:"minScore" validate:"omitempty,min=0,max=100"`
}

// BridgeConfig holds settings for the external schema validator
type BridgeConfig struct {
	Command string `mapstructure:"command" validate:"omitempty,min=1"`
	Schema  string `mapstructure:"schema" validate:"omitempty,min=1"`
}

// TrackerConfig holds settings for the downstream issue tracker
type TrackerConfig struct {
	Binary string `mapstructure:"binary" validate:"omitempty,min=1"`
}
