package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	searchuc "github.com/kailas-cloud/mediadex/internal/usecase/search"
)

func TestBearerVisibility(t *testing.T) {
	vis := BearerVisibility([]string{"secret", ""})
	admin := searchuc.Visibility{Admin: true}

	tests := []struct {
		name   string
		header string
		want   searchuc.Visibility
	}{
		{"missing header", "", searchuc.Restricted},
		{"wrong scheme", "Basic secret", searchuc.Restricted},
		{"invalid key", "Bearer nope", searchuc.Restricted},
		{"empty token", "Bearer ", searchuc.Restricted},
		{"valid key", "Bearer secret", admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/search", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := vis(req); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBearerVisibility_NoKeys(t *testing.T) {
	vis := BearerVisibility([]string{"", ""})

	req := httptest.NewRequest("GET", "/search", http.NoBody)
	req.Header.Set("Authorization", "Bearer ")
	if got := vis(req); got != searchuc.Restricted {
		t.Errorf("got %+v, want restricted", got)
	}
}
