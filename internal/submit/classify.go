package submit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MrWong99/activitymcp/internal/activity"
)

// checklists name what to verify after a 400 response.
var checklists = map[activity.Backend][]string{
	activity.MVP: {
		"Activity type is correct for the data provided",
		"Role is valid for this activity type",
		"All required fields are present",
		"Date format is correct (YYYY-MM-DD)",
	},
	activity.GDE: {
		"All required fields are present",
		"Field values match expected formats",
		"Tags are valid",
		"Date format is correct (YYYY-MM-DD)",
	},
}

const mvpTokenSteps = `To fix:
1. Log in to https://mvp.microsoft.com/
2. Open DevTools → Network tab
3. Create/edit an activity
4. Export as HAR file
5. Extract the Bearer token from Authorization header
6. Update your configuration`

func classify(a activity.Activity, status int, body string) *Result {
	kind := a.Kind()
	b := kind.Backend()
	res := &Result{Backend: b, Kind: kind, Status: status, Body: body}

	switch {
	case status >= 200 && status < 300:
		res.Outcome = OutcomeSuccess
		res.Text = fmt.Sprintf("%s Activity submitted!\n\n%s", b, target(kind))
		if b == activity.MVP {
			res.Text += "\nTitle: " + a.Headline()
		}
		res.Text += "\n\nResponse: " + pretty(body)
	case status == http.StatusUnauthorized:
		res.Outcome = OutcomeAuthFailed
		res.Text = authText(b)
	case status == http.StatusBadRequest:
		res.Outcome = OutcomeRejected
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s API rejected the request:\n\n%s\n\nPlease check:", b, body)
		for _, item := range checklists[b] {
			sb.WriteString("\n- " + item)
		}
		res.Text = sb.String()
	case status == http.StatusTooManyRequests:
		res.Outcome = OutcomeRateLimited
		if b == activity.GDE {
			res.Text = "GDE API rate limit exceeded (30 requests/minute). Please wait and try again."
		} else {
			res.Text = "MVP API rate limit exceeded. Please wait a moment and try again."
		}
	default:
		res.Outcome = OutcomeBackendError
		res.Text = fmt.Sprintf("%s API error (%d %s):\n\n%s", b, status, http.StatusText(status), body)
	}
	return res
}

func authText(b activity.Backend) string {
	if b == activity.MVP {
		return "MVP authentication failed. Your MVP_ACCESS_TOKEN may be expired or invalid.\n\n" + mvpTokenSteps
	}
	return "GDE authentication failed. Your ADVOCU_ACCESS_TOKEN may be expired or invalid.\n\n" +
		"Please check your Advocu access token configuration."
}

// target names where an activity went: the MVP activity type or the GDE
// endpoint slug.
func target(k activity.Kind) string {
	if k.Backend() == activity.MVP {
		return "Type: " + k.TypeName()
	}
	return "Endpoint: " + k.Slug()
}

// pretty re-indents a JSON body, or returns it unchanged when it is not JSON.
func pretty(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}
