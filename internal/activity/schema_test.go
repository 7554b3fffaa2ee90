package activity_test

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/MrWong99/activitymcp/internal/activity"
)

func resolve(t *testing.T, k activity.Kind) *jsonschema.Resolved {
	t.Helper()
	s, err := activity.Schema(k)
	if err != nil {
		t.Fatalf("Schema(%q): %v", k, err)
	}
	rs, err := s.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
	if err != nil {
		t.Fatalf("Resolve(%q): %v", k, err)
	}
	return rs
}

func instance(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSchemas_ResolveAll(t *testing.T) {
	t.Parallel()

	for _, b := range []activity.Backend{activity.GDE, activity.MVP} {
		for _, k := range activity.Kinds(b) {
			rs := resolve(t, k)
			if rs.Schema().Type != "object" {
				t.Errorf("%s: schema type = %q, want object", k, rs.Schema().Type)
			}
			for _, forbidden := range []string{"id", "tenant", "userProfileId"} {
				if _, ok := rs.Schema().Properties[forbidden]; ok {
					t.Errorf("%s: schema must not accept %q from callers", k, forbidden)
				}
			}
		}
	}
}

func TestKinds(t *testing.T) {
	t.Parallel()

	gde := activity.Kinds(activity.GDE)
	mvp := activity.Kinds(activity.MVP)
	if len(gde) != 7 {
		t.Errorf("GDE kinds = %d, want 7", len(gde))
	}
	if len(mvp) != 4 {
		t.Errorf("MVP kinds = %d, want 4", len(mvp))
	}
	for _, k := range gde {
		if !strings.HasPrefix(k.ToolName(), "submit_gde_") {
			t.Errorf("GDE tool name %q lacks prefix", k.ToolName())
		}
		if !strings.HasPrefix(k.Endpoint(), "/activity-drafts/") {
			t.Errorf("%s endpoint = %q", k, k.Endpoint())
		}
	}
	for _, k := range mvp {
		if !strings.HasPrefix(k.ToolName(), "submit_mvp_") {
			t.Errorf("MVP tool name %q lacks prefix", k.ToolName())
		}
		if k.Endpoint() != "/Activities/" {
			t.Errorf("%s endpoint = %q", k, k.Endpoint())
		}
	}
	if got := activity.GDEProductFeedback.Endpoint(); got != "/activity-drafts/product-feedback-given" {
		t.Errorf("product feedback endpoint = %q", got)
	}
	if got := activity.GDEGooglerInteraction.Slug(); got != "interaction-with-googlers" {
		t.Errorf("googler interaction slug = %q", got)
	}
	if _, err := activity.ParseKind("gde_podcast"); err == nil {
		t.Error("ParseKind should reject unknown kinds")
	}
}

func TestSchema_VideoRoles(t *testing.T) {
	t.Parallel()

	rs := resolve(t, activity.MVPVideoKind)
	base := `"title":"t","description":"d","date":"2025-01-01","url":"https://v.dev","targetAudience":["Developer"],"technologyFocusArea":"AI","liveStreamViews":0,"onDemandViews":1`

	for _, role := range []string{"Host", "Presenter", "Speaker"} {
		if err := rs.Validate(instance(t, `{`+base+`,"role":"`+role+`"}`)); err != nil {
			t.Errorf("role %s should be valid for video: %v", role, err)
		}
	}
	for _, role := range []string{"Organizer", "Author", "Panelist"} {
		if err := rs.Validate(instance(t, `{`+base+`,"role":"`+role+`"}`)); err == nil {
			t.Errorf("role %s should be rejected for video", role)
		}
	}
}

func TestSchema_Constraints(t *testing.T) {
	t.Parallel()

	cc := `"description":"d","contentType":"Articles","metrics":{"readers":1},"activityUrl":"https://a.dev"`
	tests := []struct {
		name  string
		kind  activity.Kind
		raw   string
		valid bool
	}{
		{"content ok", activity.GDEContentCreation, `{"title":"abc","activityDate":"2025-01-01",` + cc + `}`, true},
		{"title too short", activity.GDEContentCreation, `{"title":"ab","activityDate":"2025-01-01",` + cc + `}`, false},
		{"bad date", activity.GDEContentCreation, `{"title":"abc","activityDate":"01-01-2025",` + cc + `}`, false},
		{"bad content type", activity.GDEContentCreation, `{"title":"abc","activityDate":"2025-01-01","description":"d","contentType":"Tweets","metrics":{"readers":1},"activityUrl":"https://a.dev"}`, false},
		{"readers beyond int32", activity.GDEContentCreation, `{"title":"abc","activityDate":"2025-01-01","description":"d","contentType":"Articles","metrics":{"readers":100000000000000000000},"activityUrl":"https://a.dev"}`, false},
		{"zero readers", activity.GDEContentCreation, `{"title":"abc","activityDate":"2025-01-01","description":"d","contentType":"Articles","metrics":{"readers":0},"activityUrl":"https://a.dev"}`, false},
		{"ftp url", activity.GDEContentCreation, `{"title":"abc","activityDate":"2025-01-01","description":"d","contentType":"Articles","metrics":{"readers":1},"activityUrl":"ftp://a.dev"}`, false},
		{"virtual without country", activity.GDEWorkshop, `{"title":"abc","description":"d","activityDate":"2025-01-01","metrics":{"attendees":3},"eventFormat":"Virtual","activityUrl":"https://w.dev"}`, true},
		{"in-person without country", activity.GDEWorkshop, `{"title":"abc","description":"d","activityDate":"2025-01-01","metrics":{"attendees":3},"eventFormat":"In-Person","inPersonAttendees":3,"activityUrl":"https://w.dev"}`, false},
		{"hybrid complete", activity.GDEMentoring, `{"title":"abc","description":"d","activityDate":"2025-01-01","metrics":{"attendees":3},"eventFormat":"Hybrid","country":"Germany","inPersonAttendees":2,"activityUrl":"https://w.dev"}`, true},
		{"unknown country", activity.GDEMentoring, `{"title":"abc","description":"d","activityDate":"2025-01-01","metrics":{"attendees":3},"eventFormat":"Hybrid","country":"Atlantis","inPersonAttendees":2,"activityUrl":"https://w.dev"}`, false},
		{"empty audience", activity.MVPBlogKind, `{"title":"t","description":"d","date":"2025-01-01","url":"https://b.dev","targetAudience":[],"role":"Author","technologyFocusArea":"AI","numberOfViews":1}`, false},
		{"mvp title too long", activity.MVPBlogKind, `{"title":"` + strings.Repeat("x", 101) + `","description":"d","date":"2025-01-01","url":"https://b.dev","targetAudience":["Developer"],"role":"Author","technologyFocusArea":"AI","numberOfViews":1}`, false},
		{"book organizer", activity.MVPBookKind, `{"title":"t","description":"d","date":"2025-01-01","url":"https://b.dev","targetAudience":["Developer"],"role":"Organizer","technologyFocusArea":"AI"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := resolve(t, tt.kind).Validate(instance(t, tt.raw))
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestSchema_Defaults(t *testing.T) {
	t.Parallel()

	rs := resolve(t, activity.MVPSpeakingKind)
	m := instance(t, `{"title":"t"}`)
	if err := rs.ApplyDefaults(&m); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if m["isPrivate"] != false {
		t.Errorf("isPrivate default = %v", m["isPrivate"])
	}
	// numberOfSessions is required for speaking, so no default is applied.
	if _, ok := m["numberOfSessions"]; ok {
		t.Error("required numberOfSessions must not be defaulted")
	}

	rs = resolve(t, activity.MVPVideoKind)
	m = instance(t, `{"title":"t"}`)
	if err := rs.ApplyDefaults(&m); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if m["numberOfSessions"] != float64(1) {
		t.Errorf("numberOfSessions default = %v, want 1", m["numberOfSessions"])
	}
}

func TestCountries(t *testing.T) {
	t.Parallel()

	if len(activity.Countries) != 251 {
		t.Errorf("len(Countries) = %d, want 251", len(activity.Countries))
	}
	for _, c := range []activity.Country{"Åland Islands", "Türkiye", "United States of America", "Bolivia (Plurinational State of)"} {
		if !slices.Contains(activity.Countries, c) {
			t.Errorf("Countries is missing %q", c)
		}
	}
}
