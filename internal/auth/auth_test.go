package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthenticate(t *testing.T) {
	c := NewChecker("secret")

	cases := []struct {
		name string
		url  string
		want bool
	}{
		{"correct token", "/runner?token=secret", true},
		{"wrong token", "/runner?token=nope", false},
		{"missing token", "/runner", false},
		{"empty token", "/runner?token=", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.url, nil)
			if got := c.Authenticate(r); got != tc.want {
				t.Fatalf("Authenticate(%q) = %v, want %v", tc.url, got, tc.want)
			}
		})
	}
}
