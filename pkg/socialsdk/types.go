package socialsdk

import "time"

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks is only present on /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency as "ok" or "error: <reason>".
type HealthChecks struct {
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

// Identity is the public view of a signed-in identity. Provider credentials
// and the raw provider payload are never exposed.
type Identity struct {
	ID              string    `json:"id"`
	Provider        string    `json:"provider"`
	Name            string    `json:"name,omitempty"`
	Location        string    `json:"location,omitempty"`
	Email           string    `json:"email,omitempty"`
	ProfileLink     string    `json:"profile_link,omitempty"`
	PortraitLink    string    `json:"portrait_link,omitempty"`
	FavoriteColor   string    `json:"favorite_color"`
	IsAdministrator bool      `json:"is_administrator"`
	CreatedAt       time.Time `json:"created_at"`
	EditedAt        time.Time `json:"edited_at"`
}

// FavoriteRequest is the body of PUT /v1/identities/{id}/favorite.
type FavoriteRequest struct {
	Favorite string `json:"favorite"`
}

// ShareRequest is the body of POST /v1/share/{provider}.
type ShareRequest struct {
	Message string `json:"message"`
}

// ShareResponse describes the post that was made.
type ShareResponse struct {
	PostID string `json:"post_id"`
	URL    string `json:"url,omitempty"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
