package handlers

const (
	SessionCookieName = "session_id"

	MsgInvalidRequest  = "Invalid request"
	MsgTooManyRequests = "Too many requests"

	// maxBodyBytes bounds JSON request bodies
	maxBodyBytes = 1 << 20
)
