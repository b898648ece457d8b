package chi

import (
	"net/http"
	"strings"

	searchuc "github.com/kailas-cloud/mediadex/internal/usecase/search"
)

// VisibilityFunc decides what the caller of r may see.
type VisibilityFunc func(r *http.Request) searchuc.Visibility

// RestrictedVisibility treats every caller as an anonymous, safe-for-work user.
func RestrictedVisibility(*http.Request) searchuc.Visibility { return searchuc.Restricted }

// BearerVisibility grants full visibility to requests carrying one of
// adminKeys as a Bearer token. Everyone else is restricted.
// If adminKeys is empty, every request is restricted.
func BearerVisibility(adminKeys []string) VisibilityFunc {
	validKeys := make(map[string]struct{}, len(adminKeys))
	for _, k := range adminKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}
	if len(validKeys) == 0 {
		return RestrictedVisibility
	}

	return func(r *http.Request) searchuc.Visibility {
		const bearerPrefix = "Bearer "
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			return searchuc.Restricted
		}
		if _, ok := validKeys[auth[len(bearerPrefix):]]; !ok {
			return searchuc.Restricted
		}
		return searchuc.Visibility{Admin: true}
	}
}
