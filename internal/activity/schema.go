package activity

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/jsonschema-go/jsonschema"
)

const (
	datePattern = `^\d{4}-\d{2}-\d{2}$`
	urlPattern  = `^https?://.*`
)

var schemas = map[Kind]*jsonschema.Schema{}

func init() {
	schemas[GDEContentCreation] = contentCreationSchema()
	schemas[GDEPublicSpeaking] = eventSchema(eventCopy{
		title:     "What was the title of your talk?",
		date:      "Date of your talk (YYYY-MM-DD format)",
		attendees: "How many people attended your session in total?",
		url:       "Event link or relevant URL",
	})
	schemas[GDEWorkshop] = eventSchema(eventCopy{
		title:     "What was the name of your workshop session?",
		date:      "Date of your workshop (YYYY-MM-DD format)",
		attendees: "How many people have been trained?",
		url:       "Workshop/event link",
	})
	schemas[GDEMentoring] = eventSchema(eventCopy{
		title:     "What was the name of your mentoring session?",
		date:      "Date of your mentoring session (YYYY-MM-DD format)",
		attendees: "How many people have been mentored in total?",
		url:       "Event or relevant link",
	})
	schemas[GDEProductFeedback] = productFeedbackSchema()
	schemas[GDEGooglerInteraction] = googlerInteractionSchema()
	schemas[GDEStory] = storySchema()

	schemas[MVPVideoKind] = mvpVideoSchema()
	schemas[MVPBlogKind] = mvpBlogSchema()
	schemas[MVPSpeakingKind] = mvpSpeakingSchema()
	schemas[MVPBookKind] = mvpBookSchema()
}

// Schema returns the input schema advertised for k. The returned value is
// shared and must not be modified.
func Schema(k Kind) (*jsonschema.Schema, error) {
	s, ok := schemas[k]
	if !ok {
		return nil, fmt.Errorf("activity: no schema for kind %q", k)
	}
	return s, nil
}

// ─── GDE ─────────────────────────────────────────────────────────────────────

// gdeBase returns the properties shared by every GDE draft.
func gdeBase(titleDesc, dateDesc string) map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"title":          text(titleDesc, 3, 200),
		"description":    text("What was it about?", 0, 2000),
		"activityDate":   pattern(dateDesc, datePattern),
		"tags":           stringList("Tags (optional)"),
		"additionalInfo": text("Additional information (optional)", 0, 2000),
		"private":        boolean("Do you want to make this activity private? (optional)", nil),
	}
}

func contentCreationSchema() *jsonschema.Schema {
	props := gdeBase("What was the title?", "Date published (YYYY-MM-DD format)")
	props["contentType"] = enumOf("Content type", ContentTypes)
	props["metrics"] = metrics("readers", "How many people read your content?")
	props["activityUrl"] = link("Link to Content")
	return object(props, "title", "description", "activityDate", "contentType", "metrics", "activityUrl")
}

// eventCopy holds the field descriptions that differ between the talk,
// workshop and mentoring forms.
type eventCopy struct {
	title, date, attendees, url string
}

func eventSchema(c eventCopy) *jsonschema.Schema {
	props := gdeBase(c.title, c.date)
	props["metrics"] = metrics("attendees", c.attendees)
	props["eventFormat"] = enumOf("Select event format", EventFormats)
	props["country"] = enumOf("Country (required if eventFormat is In-Person or Hybrid)", Countries)
	props["inPersonAttendees"] = integer("In-person attendees (required if eventFormat is Hybrid or In-Person)", 0)
	props["activityUrl"] = link(c.url)

	s := object(props, "title", "description", "activityDate", "metrics", "eventFormat", "activityUrl")
	var physical []any
	for _, f := range EventFormats {
		if f.Physical() {
			physical = append(physical, string(f))
		}
	}
	s.If = &jsonschema.Schema{
		Properties: map[string]*jsonschema.Schema{
			"eventFormat": {Enum: physical},
		},
		Required: []string{"eventFormat"},
	}
	s.Then = &jsonschema.Schema{Required: []string{"country", "inPersonAttendees"}}
	return s
}

func productFeedbackSchema() *jsonschema.Schema {
	props := gdeBase("Title", "Participation Date (YYYY-MM-DD format)")
	props["contentType"] = enumOf("Content type", ProductFeedbackTypes)
	props["productDescription"] = text("What product was it about?", 0, 500)
	props["metrics"] = metrics("timeSpent", "Time spent (in minutes)")
	return object(props, "title", "description", "activityDate", "contentType", "productDescription", "metrics")
}

func googlerInteractionSchema() *jsonschema.Schema {
	props := gdeBase("Title", "Interaction Date (YYYY-MM-DD format)")
	props["format"] = enumOf("Format", InteractionFormats)
	props["interactionType"] = enumOf("Interaction Type", InteractionTypes)
	props["metrics"] = metrics("timeSpent", "Time spent (in minutes)")
	props["additionalLinks"] = text("Additional links (optional)", 0, 2000)
	return object(props, "title", "description", "activityDate", "format", "interactionType", "metrics")
}

func storySchema() *jsonschema.Schema {
	props := gdeBase("Title of the story", "Activity Date (YYYY-MM-DD format)")
	props["whyIsSignificant"] = text("Why is it significant", 0, 2000)
	props["significanceType"] = enumOf("Significance type", SignificanceTypes)
	props["activityUrl"] = link("Link")
	props["metrics"] = metrics("impact", "Impact (views, reads, attendees, etc.)")
	return object(props, "title", "description", "activityDate", "whyIsSignificant", "significanceType", "activityUrl", "metrics")
}

// ─── MVP ─────────────────────────────────────────────────────────────────────

var videoRoles = []Role{RoleHost, RolePresenter, RoleSpeaker}
var bookRoles = []Role{RoleAuthor, RoleCoAuthor, RoleContributor}

// mvpBase returns the properties shared by every MVP activity. Fields fixed
// by the server (id, tenant, userProfileId) are deliberately absent.
func mvpBase(roles []Role, roleDesc string) map[string]*jsonschema.Schema {
	audience := &jsonschema.Schema{
		Type:        "array",
		Description: "Who the activity was aimed at",
		Items:       enumOf("", Audiences),
		MinItems:    jsonschema.Ptr(1),
	}
	return map[string]*jsonschema.Schema{
		"title":               text("Activity title", 1, 100),
		"description":         text("Activity description", 0, 1000),
		"date":                pattern("Activity date (YYYY-MM-DD format)", datePattern),
		"url":                 pattern("Link to the activity", urlPattern),
		"targetAudience":      audience,
		"role":                enumOf(roleDesc, roles),
		"technologyFocusArea": {Type: "string", Description: "Main technology area (e.g., 'Web Development', 'Cloud & AI')"},
		"isPrivate":           boolean("Hide the activity from the public profile", json.RawMessage("false")),
	}
}

var mvpRequired = []string{"title", "description", "date", "url", "targetAudience", "role", "technologyFocusArea"}

func mvpObject(props map[string]*jsonschema.Schema, extra ...string) *jsonschema.Schema {
	return object(props, append(append([]string{}, mvpRequired...), extra...)...)
}

func mvpVideoSchema() *jsonschema.Schema {
	props := mvpBase(videoRoles, "Valid roles for video activities")
	props["liveStreamViews"] = integer("Live stream views", 0)
	props["onDemandViews"] = integer("On-demand views", 0)
	props["numberOfSessions"] = withDefault(integer("Number of sessions", 1), "1")
	return mvpObject(props, "liveStreamViews", "onDemandViews")
}

func mvpBlogSchema() *jsonschema.Schema {
	props := mvpBase(Roles, "Your role")
	props["additionalTechnologyAreas"] = stringList("Other technology areas covered")
	props["numberOfViews"] = integer("Number of views", 0)
	props["subscriberBase"] = integer("Subscriber base", 0)
	return mvpObject(props, "numberOfViews")
}

func mvpSpeakingSchema() *jsonschema.Schema {
	props := mvpBase(Roles, "Your role")
	props["additionalTechnologyAreas"] = stringList("Other technology areas covered")
	props["inPersonAttendees"] = integer("In-person attendees", 0)
	props["numberOfSessions"] = withDefault(integer("Number of sessions", 1), "1")
	props["liveStreamViews"] = integer("Live stream views", 0)
	props["onDemandViews"] = integer("On-demand views", 0)
	return mvpObject(props, "inPersonAttendees", "numberOfSessions")
}

func mvpBookSchema() *jsonschema.Schema {
	props := mvpBase(bookRoles, "Valid roles for book activities")
	props["additionalTechnologyAreas"] = stringList("Other technology areas covered")
	props["copiesSold"] = integer("Copies sold", 0)
	props["subscriberBase"] = integer("Subscriber base", 0)
	return mvpObject(props)
}

// ─── builders ────────────────────────────────────────────────────────────────

func object(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
}

func text(desc string, minLen, maxLen int) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string", Description: desc, MaxLength: jsonschema.Ptr(maxLen)}
	if minLen > 0 {
		s.MinLength = jsonschema.Ptr(minLen)
	}
	return s
}

func pattern(desc, re string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc, Pattern: re}
}

func link(desc string) *jsonschema.Schema {
	s := pattern(desc, urlPattern)
	s.MaxLength = jsonschema.Ptr(500)
	return s
}

// maxCount bounds every count so that it fits the int fields it decodes into.
const maxCount = math.MaxInt32

func integer(desc string, minimum float64) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: desc,
		Minimum:     jsonschema.Ptr(minimum),
		Maximum:     jsonschema.Ptr(float64(maxCount)),
	}
}

func boolean(desc string, def json.RawMessage) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: desc, Default: def}
}

func stringList(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: desc,
		Items:       &jsonschema.Schema{Type: "string"},
		MinItems:    jsonschema.Ptr(0),
	}
}

// metrics builds the single-counter metrics object used by GDE drafts.
func metrics(field, desc string) *jsonschema.Schema {
	return object(map[string]*jsonschema.Schema{field: integer(desc, 1)}, field)
}

func enumOf[T ~string](desc string, values []T) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return &jsonschema.Schema{Type: "string", Description: desc, Enum: enum}
}

func withDefault(s *jsonschema.Schema, raw string) *jsonschema.Schema {
	s.Default = json.RawMessage(raw)
	return s
}
