package config

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Remote     RemoteConfig   `mapstructure:"remote"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RemoteConfig describes the backend the reconciliation engine talks to.
// Leaving base_url empty disables remote sync entirely.
type RemoteConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIToken string `mapstructure:"api_token"`
	UserID   string `mapstructure:"user_id"`
	Tier     string `mapstructure:"tier"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Remote:   RemoteConfig{Tier: "free"},
		Defaults: DefaultsConfig{Currency: "USD"},
	}
}

// Authenticated reports whether remote credentials are configured.
func (c *Config) Authenticated() bool {
	return c.Remote.APIToken != "" && c.Remote.UserID != ""
}
