package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathParam(t *testing.T) {
	var placeID, userID string
	var paramErr error

	r := chi.NewRouter()
	r.Get("/reviews/{placeID}/{userID}", func(w http.ResponseWriter, r *http.Request) {
		placeID, userID, paramErr = placeUserFromPath(r)
	})

	tests := []struct {
		target    string
		wantPlace string
		wantUser  string
	}{
		{target: "/reviews/P1/U1", wantPlace: "P1", wantUser: "U1"},
		{target: "/reviews/a%2Fb/U1", wantPlace: "a/b", wantUser: "U1"},
		{target: "/reviews/50%25%20off/U%201", wantPlace: "50% off", wantUser: "U 1"},
		{target: "/reviews/a%2Fb/100%25", wantPlace: "a/b", wantUser: "100%"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, paramErr)
			assert.Equal(t, tt.wantPlace, placeID)
			assert.Equal(t, tt.wantUser, userID)
		})
	}
}
