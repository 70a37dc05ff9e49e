package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                          "/",
		"/metrics":                  "/metrics",
		"/v1/auth/token":            "/v1/auth/token",
		"/v1/users/me":              "/v1/users/me",
		"/v1/initiatives":           "/v1/initiatives",
		"/v1/initiatives/abc":       "/v1/initiatives/:id",
		"/v1/initiatives?limit=10":  "/v1/initiatives",
		"/v1/initiatives/abc/extra": "/v1/initiatives/abc/extra",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
