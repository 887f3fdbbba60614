package middleware

import (
	"net/http"
	"strings"
)

// UnknownSource is the shared rate-limit bucket for requests whose origin
// cannot be determined from proxy headers.
const UnknownSource = "unknown"

// SourceAddress derives the client-identifying string from proxy headers:
// the first hop of X-Forwarded-For, then X-Real-IP. It is used only to key
// the rate limiter and to log origin, never for authorization.
func SourceAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return UnknownSource
}
