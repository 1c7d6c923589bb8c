package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// pathParam returns the decoded value of a route parameter. chi matches on
// RawPath when the request has one, so parameters are still escaped then.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}

	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", name, err)
	}
	return decoded, nil
}

// placeUserFromPath reads the {placeID}/{userID} pair.
func placeUserFromPath(r *http.Request) (placeID, userID string, err error) {
	if placeID, err = pathParam(r, "placeID"); err != nil {
		return "", "", err
	}
	if userID, err = pathParam(r, "userID"); err != nil {
		return "", "", err
	}
	return placeID, userID, nil
}
