package activity

// ContentType is the GDE content creation category.
type ContentType string

const (
	ContentArticles                 ContentType = "Articles"
	ContentBooks                    ContentType = "Books"
	ContentConsoleProjects          ContentType = "Console Projects"
	ContentDemos                    ContentType = "Demos"
	ContentNewsletters              ContentType = "Newsletters"
	ContentPodcasts                 ContentType = "Podcasts"
	ContentReusableGCPPresentations ContentType = "Reusable GCP presentations"
	ContentVideos                   ContentType = "Videos"
)

// ContentTypes lists every [ContentType] in form order.
var ContentTypes = []ContentType{
	ContentArticles,
	ContentBooks,
	ContentConsoleProjects,
	ContentDemos,
	ContentNewsletters,
	ContentPodcasts,
	ContentReusableGCPPresentations,
	ContentVideos,
}

// EventFormat describes how a talk, workshop or mentoring session was held.
type EventFormat string

const (
	FormatInPerson EventFormat = "In-Person"
	FormatVirtual  EventFormat = "Virtual"
	FormatHybrid   EventFormat = "Hybrid"
)

var EventFormats = []EventFormat{FormatInPerson, FormatVirtual, FormatHybrid}

// Physical reports whether attendees were present on site, in which case the
// country and the in-person head count must be provided.
func (f EventFormat) Physical() bool {
	return f == FormatInPerson || f == FormatHybrid
}

// Country is a member of [Countries].
type Country string

// ProductFeedbackType is the kind of product feedback programme.
type ProductFeedbackType string

const (
	FeedbackEarlyAccess ProductFeedbackType = "Early access program"
	FeedbackSession     ProductFeedbackType = "Product feedback session"
)

var ProductFeedbackTypes = []ProductFeedbackType{FeedbackEarlyAccess, FeedbackSession}

// InteractionFormat is the medium of an interaction with Googlers.
type InteractionFormat string

var InteractionFormats = []InteractionFormat{
	"Survey",
	"Video feedback",
	"In-person feedback sessions",
	"Online feedback sessions",
	"Feedback summits",
	"User study / focus group",
	"Feedback submissions",
	"Other",
}

// InteractionType is the category of an interaction with Googlers.
type InteractionType string

var InteractionTypes = []InteractionType{
	"Product feedback (research studies, roadmap input, Customer Advisory Boards, EAP)",
	"File bugs / help out with finding bugs",
	"GitHub",
	"Stack Overflow",
	"Industry",
	"Other interactions with Google Product Teams",
}

// SignificanceType classifies why a story matters.
type SignificanceType string

var SignificanceTypes = []SignificanceType{
	"Diversity & Inclusion",
	"Helping Business",
	"Social Impact",
	"Feedback to Google",
	"Community Leading",
	"Technology / Open source",
}

// Role is the part the MVP played in an activity.
type Role string

const (
	RoleAuthor      Role = "Author"
	RoleCoAuthor    Role = "Co-Author"
	RoleContributor Role = "Contributor"
	RoleHost        Role = "Host"
	RoleModerator   Role = "Moderator"
	RoleOrganizer   Role = "Organizer"
	RolePanelist    Role = "Panelist"
	RolePresenter   Role = "Presenter"
	RoleSpeaker     Role = "Speaker"
)

// Roles lists every [Role]. Individual activity kinds accept a subset.
var Roles = []Role{
	RoleAuthor,
	RoleCoAuthor,
	RoleContributor,
	RoleHost,
	RoleModerator,
	RoleOrganizer,
	RolePanelist,
	RolePresenter,
	RoleSpeaker,
}

// Audience is an MVP target audience.
type Audience string

var Audiences = []Audience{
	"Developer",
	"Technical Decision Maker",
	"Business Decision Maker",
	"Student",
	"IT Pro",
	"End User",
}
