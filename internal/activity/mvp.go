package activity

// MVPTenant is the tenant marker every MVP activity carries.
const MVPTenant = "MVP"

// MVPBase holds the fields shared by every MVP activity in the shape the
// MVP portal API expects.
type MVPBase struct {
	// ID is always 0 for new submissions.
	ID               int    `json:"id"`
	ActivityTypeName string `json:"activityTypeName"`
	TypeName         string `json:"typeName,omitempty"`

	// Date is an ISO-8601 instant, e.g. 2025-03-14T00:00:00.000Z.
	Date                string     `json:"date"`
	Description         string     `json:"description"`
	IsPrivate           bool       `json:"isPrivate"`
	TargetAudience      []Audience `json:"targetAudience"`
	Tenant              string     `json:"tenant"`
	Title               string     `json:"title"`
	URL                 string     `json:"url"`
	UserProfileID       int        `json:"userProfileId"`
	Role                Role       `json:"role"`
	TechnologyFocusArea string     `json:"technologyFocusArea"`
	ImageURL            string     `json:"imageUrl"`
}

func (b MVPBase) Headline() string { return b.Title }
func (MVPBase) sealed()            {}

// MVPVideo is a video activity. Technology areas beyond the focus area are
// not collected for videos, so AdditionalTechnologyAreas is always empty.
type MVPVideo struct {
	MVPBase
	AdditionalTechnologyAreas []string `json:"additionalTechnologyAreas"`
	LiveStreamViews           int      `json:"liveStreamViews"`
	OnDemandViews             int      `json:"onDemandViews"`
	NumberOfSessions          int      `json:"numberOfSessions"`
	InPersonAttendees         int      `json:"inPersonAttendees"`
	SubscriberBase            int      `json:"subscriberBase"`
}

type MVPBlog struct {
	MVPBase
	AdditionalTechnologyAreas []string `json:"additionalTechnologyAreas,omitempty"`
	NumberOfViews             int      `json:"numberOfViews"`
	SubscriberBase            int      `json:"subscriberBase"`
}

type MVPSpeaking struct {
	MVPBase
	AdditionalTechnologyAreas []string `json:"additionalTechnologyAreas,omitempty"`
	InPersonAttendees         int      `json:"inPersonAttendees"`
	NumberOfSessions          int      `json:"numberOfSessions"`
	LiveStreamViews           int      `json:"liveStreamViews"`
	OnDemandViews             int      `json:"onDemandViews"`
}

type MVPBook struct {
	MVPBase
	AdditionalTechnologyAreas []string `json:"additionalTechnologyAreas,omitempty"`
	CopiesSold                int      `json:"copiesSold"`
	SubscriberBase            int      `json:"subscriberBase"`
}

func (*MVPVideo) Kind() Kind    { return MVPVideoKind }
func (*MVPBlog) Kind() Kind     { return MVPBlogKind }
func (*MVPSpeaking) Kind() Kind { return MVPSpeakingKind }
func (*MVPBook) Kind() Kind     { return MVPBookKind }
