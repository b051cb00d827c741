package config

const (
	defaultClientAPITarget      = "http://localhost:8000"
	defaultClientTimeoutSeconds = 30

	defaultHealthIntervalSeconds = 30

	defaultConsoleSort = "updated_at"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			APITarget:      defaultClientAPITarget,
			TimeoutSeconds: defaultClientTimeoutSeconds,
		},
		Health: HealthConfig{
			IntervalSeconds: defaultHealthIntervalSeconds,
		},
		Console: ConsoleConfig{
			Sort: defaultConsoleSort,
		},
	}
}
