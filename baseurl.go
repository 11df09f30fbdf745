package brain

import "regexp"

const (
	// DefaultAPIBase is the production Databutton API host used when no
	// override host is configured.
	DefaultAPIBase = "https://api.databutton.com"
)

// localhostOrigin matches origins served from a local dev server, which
// Databutton and Vite both run on four-digit ports (e.g. localhost:3000,
// localhost:5173).
var localhostOrigin = regexp.MustCompile(`(?i)localhost:\d{4}`)

// ResolveBaseURL derives the API base URL from the application origin and
// the build-time configuration.
//
// A local dev origin keeps API traffic on the same host so the dev server's
// proxy can forward it. Otherwise an explicitly configured host wins, and
// the production Databutton API is the fallback.
func ResolveBaseURL(origin, apiHost, apiPath string) string {
	if localhostOrigin.MatchString(origin) {
		return origin + apiPath
	}
	if apiHost != "" {
		return apiHost
	}
	return DefaultAPIBase + apiPath
}
