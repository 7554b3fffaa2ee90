package activity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingField is returned when input lacks a field the kind's schema
	// marks as required. Schema-validated input never triggers it.
	ErrMissingField = errors.New("activity: missing required field")

	// ErrInvalidDate is returned for a date that matches YYYY-MM-DD but is
	// not a calendar day (e.g. 2025-02-30). The schema pattern cannot catch
	// it, so callers treat it as invalid input.
	ErrInvalidDate = errors.New("activity: invalid date")
)

// isoLayout matches the millisecond ISO-8601 form the MVP portal emits.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Normalizer maps validated tool input onto backend wire structures.
// UserProfileID is stamped on every MVP activity; caller input can never
// override it.
type Normalizer struct {
	UserProfileID int
}

// Normalize decodes raw (a JSON object conforming to [Schema] for k) into
// the canonical activity for k.
func (n Normalizer) Normalize(k Kind, raw json.RawMessage) (Activity, error) {
	schema, err := Schema(k)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("activity: decode %s: %w", k, err)
	}
	for _, name := range schema.Required {
		if v, ok := fields[name]; !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, fmt.Errorf("%w %q for %s", ErrMissingField, name, k)
		}
	}

	switch k {
	case GDEContentCreation:
		return draft(raw, &ContentCreation{})
	case GDEPublicSpeaking:
		return draft(raw, &PublicSpeaking{})
	case GDEWorkshop:
		return draft(raw, &Workshop{})
	case GDEMentoring:
		return draft(raw, &Mentoring{})
	case GDEProductFeedback:
		return draft(raw, &ProductFeedback{})
	case GDEGooglerInteraction:
		return draft(raw, &GooglerInteraction{})
	case GDEStory:
		return draft(raw, &Story{})
	case MVPVideoKind, MVPBlogKind, MVPSpeakingKind, MVPBookKind:
		var in mvpInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("activity: decode %s: %w", k, err)
		}
		return n.mvp(k, &in)
	}
	return nil, fmt.Errorf("activity: no normalizer for kind %q", k)
}

// gdeDraft is satisfied by pointers to every GDE draft type.
type gdeDraft interface {
	Activity
	base() *DraftBase
}

func (b *DraftBase) base() *DraftBase { return b }

func draft[T gdeDraft](raw json.RawMessage, dst T) (Activity, error) {
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, fmt.Errorf("activity: decode %s: %w", dst.Kind(), err)
	}
	b := dst.base()
	if _, err := time.Parse(time.DateOnly, b.ActivityDate); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidDate, b.ActivityDate, err)
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return dst, nil
}

// mvpInput is the caller-facing MVP tool input. It has no id, tenant or
// userProfileId fields, so such keys in the input are dropped on decode.
type mvpInput struct {
	Title                     string     `json:"title"`
	Description               string     `json:"description"`
	Date                      string     `json:"date"`
	URL                       string     `json:"url"`
	TargetAudience            []Audience `json:"targetAudience"`
	Role                      Role       `json:"role"`
	TechnologyFocusArea       string     `json:"technologyFocusArea"`
	AdditionalTechnologyAreas []string   `json:"additionalTechnologyAreas"`
	IsPrivate                 bool       `json:"isPrivate"`

	LiveStreamViews   int  `json:"liveStreamViews"`
	OnDemandViews     int  `json:"onDemandViews"`
	NumberOfSessions  *int `json:"numberOfSessions"`
	InPersonAttendees int  `json:"inPersonAttendees"`
	NumberOfViews     int  `json:"numberOfViews"`
	SubscriberBase    int  `json:"subscriberBase"`
	CopiesSold        int  `json:"copiesSold"`
}

func (n Normalizer) mvp(k Kind, in *mvpInput) (Activity, error) {
	date, err := ISODate(in.Date)
	if err != nil {
		return nil, err
	}
	base := MVPBase{
		ID:                  0,
		ActivityTypeName:    registry[k].typeName,
		TypeName:            registry[k].display,
		Date:                date,
		Description:         in.Description,
		IsPrivate:           in.IsPrivate,
		TargetAudience:      in.TargetAudience,
		Tenant:              MVPTenant,
		Title:               in.Title,
		URL:                 in.URL,
		UserProfileID:       n.UserProfileID,
		Role:                in.Role,
		TechnologyFocusArea: in.TechnologyFocusArea,
		ImageURL:            "",
	}
	sessions := 1
	if in.NumberOfSessions != nil {
		sessions = *in.NumberOfSessions
	}

	switch k {
	case MVPVideoKind:
		return &MVPVideo{
			MVPBase:                   base,
			AdditionalTechnologyAreas: []string{},
			LiveStreamViews:           in.LiveStreamViews,
			OnDemandViews:             in.OnDemandViews,
			NumberOfSessions:          sessions,
		}, nil
	case MVPBlogKind:
		return &MVPBlog{
			MVPBase:                   base,
			AdditionalTechnologyAreas: in.AdditionalTechnologyAreas,
			NumberOfViews:             in.NumberOfViews,
			SubscriberBase:            in.SubscriberBase,
		}, nil
	case MVPSpeakingKind:
		return &MVPSpeaking{
			MVPBase:                   base,
			AdditionalTechnologyAreas: in.AdditionalTechnologyAreas,
			InPersonAttendees:         in.InPersonAttendees,
			NumberOfSessions:          sessions,
			LiveStreamViews:           in.LiveStreamViews,
			OnDemandViews:             in.OnDemandViews,
		}, nil
	case MVPBookKind:
		return &MVPBook{
			MVPBase:                   base,
			AdditionalTechnologyAreas: in.AdditionalTechnologyAreas,
			CopiesSold:                in.CopiesSold,
			SubscriberBase:            in.SubscriberBase,
		}, nil
	}
	return nil, fmt.Errorf("activity: %q is not an MVP kind", k)
}

// ISODate converts a YYYY-MM-DD date into the ISO-8601 instant at UTC
// midnight of that day.
func ISODate(day string) (string, error) {
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidDate, day, err)
	}
	return t.UTC().Format(isoLayout), nil
}
