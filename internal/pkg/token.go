package pkg

import (
	"net/http"
	"strings"
)

// BearerToken returns the token of an "Authorization: Bearer" header, falling back to
// the token query parameter that browsers use for websocket upgrades.
func BearerToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get("token")
}
