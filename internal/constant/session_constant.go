package constant

import "time"

const (
	// SessionTTL bounds both the cookie max-age and the server-side
	// session row expiry.
	SessionTTL = 7 * 24 * time.Hour

	SessionCookiePath = "/"
)
