// Package config provides the configuration schema and loader for the
// activity reporting MCP server.
//
// Configuration is assembled in three layers: built-in defaults ([Default]),
// an optional YAML file ([Load]), and the process environment ([ApplyEnv]).
// Later layers override earlier ones, so a credential exported in the shell
// always wins over one stored in a file.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Default backend endpoints and docs location.
const (
	DefaultGDEBaseURL = "https://api.advocu.com/personal-api/v1/gde"
	DefaultMVPBaseURL = "https://mavenapi-prod.azurewebsites.net/api"
	DefaultDocsDir    = "docs"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	GDE       GDEConfig       `yaml:"gde"`
	MVP       MVPConfig       `yaml:"mvp"`
	Docs      DocsConfig      `yaml:"docs"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig holds process-level settings.
type ServerConfig struct {
	// LogLevel controls verbosity. Logs always go to stderr because stdout
	// carries the MCP stdio stream.
	LogLevel LogLevel `yaml:"log_level"`
}

// GDEConfig holds the Google Developer Expert (Advocu) credentials.
type GDEConfig struct {
	// AccessToken is the Advocu personal API bearer token.
	AccessToken string `yaml:"access_token"`

	// BaseURL overrides the Advocu API endpoint.
	BaseURL string `yaml:"base_url"`
}

// MVPConfig holds the Microsoft MVP portal credentials.
type MVPConfig struct {
	// AccessToken is the bearer token captured from the MVP portal.
	AccessToken string `yaml:"access_token"`

	// UserProfileID is the numeric MVP profile id. It is kept as a string
	// here; the capability resolver decides whether it is well-formed.
	UserProfileID string `yaml:"user_profile_id"`

	// BaseURL overrides the MVP API endpoint.
	BaseURL string `yaml:"base_url"`
}

// DocsConfig locates the static documentation files.
type DocsConfig struct {
	// Dir is the directory holding the Markdown files served by the
	// documentation tools and resources.
	Dir string `yaml:"dir"`
}

// TelemetryConfig configures the optional HTTP side listener.
type TelemetryConfig struct {
	// ListenAddr enables /metrics, /healthz and /readyz when non-empty
	// (e.g. "127.0.0.1:9464").
	ListenAddr string `yaml:"listen_addr"`

	// ServiceName is reported in OTel resource attributes.
	ServiceName string `yaml:"service_name"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{LogLevel: LogInfo},
		GDE:    GDEConfig{BaseURL: DefaultGDEBaseURL},
		MVP:    MVPConfig{BaseURL: DefaultMVPBaseURL},
		Docs:   DocsConfig{Dir: DefaultDocsDir},
		Telemetry: TelemetryConfig{
			ServiceName: "activitymcp",
		},
	}
}
