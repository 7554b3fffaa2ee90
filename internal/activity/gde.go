package activity

// Activity is a normalized submission ready to be sent to its backend. The
// set of implementations is closed: GDE drafts and MVP activities defined in
// this package.
type Activity interface {
	// Kind reports which activity kind produced the value.
	Kind() Kind

	// Headline is the caller-facing title, used in result and error texts.
	Headline() string

	sealed()
}

// DraftBase holds the fields shared by every GDE activity draft.
type DraftBase struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ActivityDate string `json:"activityDate"`

	// Tags is always serialised; an omitted list becomes [].
	Tags           []string `json:"tags"`
	AdditionalInfo string   `json:"additionalInfo,omitempty"`
	Private        bool     `json:"private"`
}

func (b DraftBase) Headline() string { return b.Title }
func (DraftBase) sealed()            {}

type ReaderMetrics struct {
	Readers int `json:"readers"`
}

type AttendeeMetrics struct {
	Attendees int `json:"attendees"`
}

type TimeMetrics struct {
	// TimeSpent is in minutes.
	TimeSpent int `json:"timeSpent"`
}

type ImpactMetrics struct {
	Impact int `json:"impact"`
}

// ContentCreation is a GDE content creation draft.
type ContentCreation struct {
	DraftBase
	ContentType ContentType   `json:"contentType"`
	Metrics     ReaderMetrics `json:"metrics"`
	ActivityURL string        `json:"activityUrl"`
}

// EventDraft holds the fields shared by talks, workshops and mentoring.
type EventDraft struct {
	DraftBase
	Metrics     AttendeeMetrics `json:"metrics"`
	EventFormat EventFormat     `json:"eventFormat"`
	Country     Country         `json:"country,omitempty"`

	// InPersonAttendees is nil for virtual events that did not report it.
	InPersonAttendees *int   `json:"inPersonAttendees,omitempty"`
	ActivityURL       string `json:"activityUrl"`
}

type PublicSpeaking struct{ EventDraft }

type Workshop struct{ EventDraft }

type Mentoring struct{ EventDraft }

type ProductFeedback struct {
	DraftBase
	ContentType        ProductFeedbackType `json:"contentType"`
	ProductDescription string              `json:"productDescription"`
	Metrics            TimeMetrics         `json:"metrics"`
}

type GooglerInteraction struct {
	DraftBase
	Format          InteractionFormat `json:"format"`
	InteractionType InteractionType   `json:"interactionType"`
	Metrics         TimeMetrics       `json:"metrics"`
	AdditionalLinks string            `json:"additionalLinks,omitempty"`
}

type Story struct {
	DraftBase
	WhyIsSignificant string           `json:"whyIsSignificant"`
	SignificanceType SignificanceType `json:"significanceType"`
	ActivityURL      string           `json:"activityUrl"`
	Metrics          ImpactMetrics    `json:"metrics"`
}

func (*ContentCreation) Kind() Kind    { return GDEContentCreation }
func (*PublicSpeaking) Kind() Kind     { return GDEPublicSpeaking }
func (*Workshop) Kind() Kind           { return GDEWorkshop }
func (*Mentoring) Kind() Kind          { return GDEMentoring }
func (*ProductFeedback) Kind() Kind    { return GDEProductFeedback }
func (*GooglerInteraction) Kind() Kind { return GDEGooglerInteraction }
func (*Story) Kind() Kind              { return GDEStory }
