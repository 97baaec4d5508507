package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSameOrigin(t *testing.T) {
	handler := SameOrigin("https://chriscakes.com/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name      string
		method    string
		origin    string
		fetchSite string
		want      int
	}{
		{"safe method from anywhere", http.MethodGet, "https://evil.test", "cross-site", http.StatusOK},
		{"no browser headers", http.MethodPost, "", "", http.StatusOK},
		{"same host origin", http.MethodPost, "http://example.com", "", http.StatusOK},
		{"configured site origin", http.MethodPost, "https://chriscakes.com", "cross-site", http.StatusOK},
		{"fetch metadata same-origin", http.MethodPost, "https://proxy.test", "same-origin", http.StatusOK},
		{"foreign origin", http.MethodPost, "https://evil.test", "", http.StatusForbidden},
		{"cross-site without origin", http.MethodPost, "", "cross-site", http.StatusForbidden},
		{"foreign origin delete", http.MethodDelete, "https://evil.test", "cross-site", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://example.com/api/contact", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.fetchSite != "" {
				req.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusForbidden && !strings.Contains(rr.Body.String(), `"error"`) {
				t.Errorf("rejection should be JSON: %q", rr.Body.String())
			}
		})
	}
}
