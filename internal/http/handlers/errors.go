package handlers

// Fixed API error messages.
const (
	msgUserNotFound   = "User not found"
	msgBadBody        = "invalid request body"
	msgFollowRequired = "follow or unfollow required"
	msgInternal       = "internal server error"

	// Fallback messages used by the router.
	MsgRouteNotFound    = "route not found"
	MsgMethodNotAllowed = "method not allowed"
)
