package config

// Config is the root faultd configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Control ControlConfig `json:"control,omitempty" yaml:"control,omitempty"`
	Events  EventsConfig  `json:"events,omitempty" yaml:"events,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ServerConfig configures the HTTP control surface.
type ServerConfig struct {
	// Host is the interface to bind. Empty means all interfaces.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port is the listen port for the control API.
	Port int `json:"port" yaml:"port"`
}

// ControlConfig configures the control-file surface (a named pipe plus a
// sibling listing file, the procfs-style interface).
type ControlConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Path is where the named pipe is created. The listing file is written
	// next to it with a ".list" suffix.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// EventsConfig configures the WebSocket trigger-intent stream.
type EventsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Buffer is the per-subscriber event buffer. Events beyond it are
	// dropped rather than letting a slow subscriber delay an injection.
	Buffer int `json:"buffer,omitempty" yaml:"buffer,omitempty"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// CrashLog, when set, tees intent records to a file opened with O_SYNC
	// so the last record survives the crash faultd is about to cause.
	CrashLog string `json:"crashLog,omitempty" yaml:"crashLog,omitempty"`
}

// Defaults.
const (
	DefaultPort        = 4270
	DefaultControlPath = "/tmp/faultd.ctl"
	DefaultEventBuffer = 16
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: DefaultPort,
		},
		Control: ControlConfig{
			Enabled: true,
			Path:    DefaultControlPath,
		},
		Events: EventsConfig{
			Enabled: true,
			Buffer:  DefaultEventBuffer,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ApplyDefaults fills zero-valued fields that have non-zero defaults.
// Booleans are left alone: an explicit "enabled: false" must stick.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Control.Path == "" {
		c.Control.Path = DefaultControlPath
	}
	if c.Events.Buffer == 0 {
		c.Events.Buffer = DefaultEventBuffer
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}
