// Package capability decides, once at startup, which reporting backends the
// server can talk to. The result is an immutable [Set] that is passed
// explicitly to the tool catalog and the submission client.
package capability

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/MrWong99/activitymcp/internal/activity"
	"github.com/MrWong99/activitymcp/internal/config"
)

// Capability describes one backend. Token is never logged; use
// [Capability.LogValue] or [Set.LogValue] when recording state.
type Capability struct {
	Backend activity.Backend
	Enabled bool
	Token   string
	BaseURL string

	// ProfileID is the MVP user profile id. Zero for GDE.
	ProfileID int

	// Missing names the environment variables that were absent or malformed
	// when Enabled is false.
	Missing []string
}

// LogValue implements [slog.LogValuer] without exposing the token.
func (c Capability) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Bool("enabled", c.Enabled),
		slog.String("base_url", c.BaseURL),
	}
	if len(c.Missing) > 0 {
		attrs = append(attrs, slog.String("missing", strings.Join(c.Missing, ", ")))
	}
	return slog.GroupValue(attrs...)
}

// Set is the resolved pair of backend capabilities.
type Set struct {
	GDE Capability
	MVP Capability
}

// Enabled reports whether backend b can accept submissions.
func (s *Set) Enabled(b activity.Backend) bool {
	c, ok := s.Get(b)
	return ok && c.Enabled
}

// Get returns the capability for b.
func (s *Set) Get(b activity.Backend) (Capability, bool) {
	switch b {
	case activity.GDE:
		return s.GDE, true
	case activity.MVP:
		return s.MVP, true
	}
	return Capability{}, false
}

// Backends returns the enabled backends in a fixed order.
func (s *Set) Backends() []activity.Backend {
	var out []activity.Backend
	for _, c := range []Capability{s.GDE, s.MVP} {
		if c.Enabled {
			out = append(out, c.Backend)
		}
	}
	return out
}

// LogValue implements [slog.LogValuer].
func (s *Set) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("gde", s.GDE),
		slog.Any("mvp", s.MVP),
	)
}

// Warnings returns one line per disabled backend naming what is missing.
func (s *Set) Warnings() []string {
	var out []string
	for _, c := range []Capability{s.GDE, s.MVP} {
		for _, m := range c.Missing {
			out = append(out, fmt.Sprintf("%s not set - %s tools will be disabled", m, c.Backend))
		}
	}
	return out
}

// ConfigurationError is returned by [Resolve] when no backend is usable.
type ConfigurationError struct {
	// Missing lists every absent or malformed credential across backends.
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("capability: neither GDE nor MVP credentials configured, at least one must be set (missing: %s)",
		strings.Join(e.Missing, ", "))
}

// Resolve derives the capability set from cfg. GDE is enabled when its
// access token is set. MVP is enabled when its access token is set and the
// profile id is a positive base-10 integer. If neither is enabled a
// *ConfigurationError naming every missing credential is returned.
func Resolve(cfg *config.Config) (*Set, error) {
	s := &Set{
		GDE: resolveGDE(cfg.GDE),
		MVP: resolveMVP(cfg.MVP),
	}
	if !s.GDE.Enabled && !s.MVP.Enabled {
		missing := append(append([]string{}, s.GDE.Missing...), s.MVP.Missing...)
		return nil, &ConfigurationError{Missing: missing}
	}
	return s, nil
}

func resolveGDE(c config.GDEConfig) Capability {
	capab := Capability{
		Backend: activity.GDE,
		Token:   c.AccessToken,
		BaseURL: strings.TrimRight(c.BaseURL, "/"),
	}
	if c.AccessToken == "" {
		capab.Missing = append(capab.Missing, config.EnvGDEAccessToken)
	}
	capab.Enabled = len(capab.Missing) == 0
	return capab
}

func resolveMVP(c config.MVPConfig) Capability {
	capab := Capability{
		Backend: activity.MVP,
		Token:   c.AccessToken,
		BaseURL: strings.TrimRight(c.BaseURL, "/"),
	}
	if c.AccessToken == "" {
		capab.Missing = append(capab.Missing, config.EnvMVPAccessToken)
	}
	switch id, err := strconv.Atoi(c.UserProfileID); {
	case c.UserProfileID == "":
		capab.Missing = append(capab.Missing, config.EnvMVPUserProfileID)
	case err != nil || id <= 0:
		capab.Missing = append(capab.Missing, config.EnvMVPUserProfileID+" (not a positive integer)")
	default:
		capab.ProfileID = id
	}
	capab.Enabled = len(capab.Missing) == 0
	return capab
}
