package constants

const (
	// Session
	SessionCookieName = "project_session"
	SessionMaxAge     = 86400 * 7
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	SessionKeyState   = "oauth_state"

	// Context keys set by resource-loading middleware
	ContextKeyProject = "project"
	ContextKeyTask    = "task"

	// Credentials
	MinUsernameLength = 3
	MinPasswordLength = 6
	BcryptCost        = 10

	// OAuth
	OAuthStateBytes           = 16
	PlaceholderUsernamePrefix = "user_"
)
