// Package config provides configuration loading for sqlgate.
package config

// Config is the application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Resilience ResilienceConfig `yaml:"resilience"`
}

// StoreConfig configures the backing store.
type StoreConfig struct {
	// Path is the database file path, created on demand.
	Path string `yaml:"path"`

	// BusyTimeoutMS is the SQLite busy timeout in milliseconds.
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`

	// JournalMode is the SQLite journal mode.
	JournalMode string `yaml:"journal_mode"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig configures the MCP tool server.
type ServerConfig struct {
	// Name is the advertised server name.
	Name string `yaml:"name"`

	// Transport is "stdio" or "http".
	Transport string `yaml:"transport"`

	// Addr is the listen address for the http transport.
	Addr string `yaml:"addr"`
}

// ResilienceConfig configures busy-retry behavior.
type ResilienceConfig struct {
	MaxAttempts    int `yaml:"max_attempts"`
	InitialDelayMS int `yaml:"initial_delay_ms"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Path:          "sales_data.db",
			BusyTimeoutMS: 5000,
			JournalMode:   "WAL",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Name:      "sqlgate",
			Transport: "stdio",
			Addr:      ":8820",
		},
		Resilience: ResilienceConfig{
			MaxAttempts:    3,
			InitialDelayMS: 100,
		},
	}
}
