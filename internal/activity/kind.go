// Package activity defines every activity kind that can be submitted to the
// GDE and MVP reporting backends: the closed value domains, the JSON Schema
// advertised to callers for each kind, and the normalizer that turns
// schema-conformant input into the exact structure each backend expects.
//
// All data in this package is static. Schemas are built once at package
// initialisation and must be treated as read-only by callers.
package activity

import "fmt"

// Backend identifies a reporting backend.
type Backend string

const (
	GDE Backend = "GDE"
	MVP Backend = "MVP"
)

// Kind identifies one submittable activity type on one backend.
type Kind string

const (
	GDEContentCreation    Kind = "gde_content_creation"
	GDEPublicSpeaking     Kind = "gde_public_speaking"
	GDEWorkshop           Kind = "gde_workshop"
	GDEMentoring          Kind = "gde_mentoring"
	GDEProductFeedback    Kind = "gde_product_feedback"
	GDEGooglerInteraction Kind = "gde_googler_interaction"
	GDEStory              Kind = "gde_story"

	MVPVideoKind    Kind = "mvp_video"
	MVPBlogKind     Kind = "mvp_blog"
	MVPSpeakingKind Kind = "mvp_speaking"
	MVPBookKind     Kind = "mvp_book"
)

// kindInfo is the static registration of a [Kind].
type kindInfo struct {
	backend     Backend
	description string

	// slug is the GDE endpoint segment under /activity-drafts/.
	slug string

	// typeName is the MVP activityTypeName; display is the short typeName.
	typeName string
	display  string
}

var registry = map[Kind]kindInfo{
	GDEContentCreation: {
		backend:     GDE,
		slug:        "content-creation",
		description: "Submit a content creation activity (article, video, podcast, demo...) to the Google Developer Experts program (Advocu).",
	},
	GDEPublicSpeaking: {
		backend:     GDE,
		slug:        "public-speaking",
		description: "Submit a public speaking activity to the Google Developer Experts program (Advocu). Country and in-person attendees are required for In-Person and Hybrid events.",
	},
	GDEWorkshop: {
		backend:     GDE,
		slug:        "workshop",
		description: "Submit a workshop activity to the Google Developer Experts program (Advocu). Country and in-person attendees are required for In-Person and Hybrid events.",
	},
	GDEMentoring: {
		backend:     GDE,
		slug:        "mentoring",
		description: "Submit a mentoring activity to the Google Developer Experts program (Advocu). Country and in-person attendees are required for In-Person and Hybrid events.",
	},
	GDEProductFeedback: {
		backend:     GDE,
		slug:        "product-feedback-given",
		description: "Submit a product feedback activity (early access program or feedback session) to the Google Developer Experts program (Advocu).",
	},
	GDEGooglerInteraction: {
		backend:     GDE,
		slug:        "interaction-with-googlers",
		description: "Submit an interaction with Google product teams to the Google Developer Experts program (Advocu).",
	},
	GDEStory: {
		backend:     GDE,
		slug:        "stories",
		description: "Submit a story about the impact of your community work to the Google Developer Experts program (Advocu).",
	},
	MVPVideoKind: {
		backend:     MVP,
		typeName:    "Video",
		display:     "Video",
		description: "Submit a video activity to Microsoft MVP. Valid roles for videos: Host, Presenter, Speaker.",
	},
	MVPBlogKind: {
		backend:     MVP,
		typeName:    "Blog",
		display:     "Blog",
		description: "Submit a blog post activity to Microsoft MVP.",
	},
	MVPSpeakingKind: {
		backend:     MVP,
		typeName:    "Speaking (Conference)",
		display:     "Speaking",
		description: "Submit a speaking/conference activity to Microsoft MVP.",
	},
	MVPBookKind: {
		backend:     MVP,
		typeName:    "Book/E-book",
		display:     "Book",
		description: "Submit a book or e-book activity to Microsoft MVP. Valid roles for books: Author, Co-Author, Contributor.",
	},
}

// order fixes the advertised tool order.
var order = []Kind{
	GDEContentCreation,
	GDEPublicSpeaking,
	GDEWorkshop,
	GDEMentoring,
	GDEProductFeedback,
	GDEGooglerInteraction,
	GDEStory,
	MVPVideoKind,
	MVPBlogKind,
	MVPSpeakingKind,
	MVPBookKind,
}

// Kinds returns the kinds served by backend b in a stable order.
func Kinds(b Backend) []Kind {
	var out []Kind
	for _, k := range order {
		if registry[k].backend == b {
			out = append(out, k)
		}
	}
	return out
}

// ParseKind returns the kind registered under s.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := registry[k]; !ok {
		return "", fmt.Errorf("activity: unknown kind %q", s)
	}
	return k, nil
}

// Backend returns the backend that accepts k.
func (k Kind) Backend() Backend { return registry[k].backend }

// ToolName is the MCP tool name advertised for k.
func (k Kind) ToolName() string { return "submit_" + string(k) }

// Description is the human-readable tool description for k.
func (k Kind) Description() string { return registry[k].description }

// Endpoint is the path, relative to the backend base URL, that accepts k.
func (k Kind) Endpoint() string {
	info := registry[k]
	if info.backend == MVP {
		return "/Activities/"
	}
	return "/activity-drafts/" + info.slug
}

// Slug is the GDE endpoint slug, or "" for MVP kinds.
func (k Kind) Slug() string { return registry[k].slug }

// TypeName is the MVP activityTypeName, or "" for GDE kinds.
func (k Kind) TypeName() string { return registry[k].typeName }
