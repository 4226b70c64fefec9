package handlers

// Custom WebSocket close codes, more specific than the standard set.
const (
	BadSubprotocolError   = 3000 // Client connected with an unsupported subprotocol.
	InvalidAuthTokenError = 3001 // Auth cookie missing, invalid or expired.
	UnknownUserError      = 3002 // Token subject no longer resolves to a user.
)
