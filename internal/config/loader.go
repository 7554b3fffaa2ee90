package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names consumed by [ApplyEnv].
const (
	EnvGDEAccessToken   = "ADVOCU_ACCESS_TOKEN"
	EnvGDEBaseURL       = "ADVOCU_API_URL"
	EnvMVPAccessToken   = "MVP_ACCESS_TOKEN"
	EnvMVPUserProfileID = "MVP_USER_PROFILE_ID"
	EnvMVPBaseURL       = "MVP_API_URL"
	EnvDocsDir          = "DOCS_DIR"
	EnvLogLevel         = "ACTIVITYMCP_LOG_LEVEL"
	EnvTelemetryAddr    = "ACTIVITYMCP_TELEMETRY_ADDR"
)

// Load builds the effective configuration. When path is non-empty the YAML
// file is decoded on top of [Default]; the environment is applied last via
// lookup (normally [os.LookupEnv]) and the result is validated.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()

		if err := decodeInto(f, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}
	ApplyEnv(cfg, lookup)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result. The environment is not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decodeInto(r, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeInto(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment values onto cfg. Empty variables are ignored
// so that an exported-but-blank variable does not wipe a file value.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&cfg.GDE.AccessToken, EnvGDEAccessToken)
	set(&cfg.GDE.BaseURL, EnvGDEBaseURL)
	set(&cfg.MVP.AccessToken, EnvMVPAccessToken)
	set(&cfg.MVP.UserProfileID, EnvMVPUserProfileID)
	set(&cfg.MVP.BaseURL, EnvMVPBaseURL)
	set(&cfg.Docs.Dir, EnvDocsDir)
	set(&cfg.Telemetry.ListenAddr, EnvTelemetryAddr)

	var lvl string
	set(&lvl, EnvLogLevel)
	if lvl != "" {
		cfg.Server.LogLevel = LogLevel(strings.ToLower(lvl))
	}
}

// Validate checks that cfg contains a coherent set of values. Credentials are
// not checked here; missing credentials disable a backend rather than fail
// the load. It returns a joined error listing all failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if err := validateBaseURL(cfg.GDE.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("gde.base_url: %w", err))
	}
	if err := validateBaseURL(cfg.MVP.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("mvp.base_url: %w", err))
	}
	if cfg.Docs.Dir == "" {
		errs = append(errs, errors.New("docs.dir must not be empty"))
	}
	if addr := cfg.Telemetry.ListenAddr; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errs = append(errs, fmt.Errorf("telemetry.listen_addr %q is invalid: %w", addr, err))
		}
	}

	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%q is not a valid URL: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
