package main

import (
	"fmt"
	"net/http"

	"placereviews/internal/auth"
	"placereviews/internal/domain/locations"
)

// listLocationsHandler godoc
//
//	@Summary		List reviewed places
//	@Description	Returns every place that currently has at least one review. Requires the Administrator role.
//	@Tags			locations
//	@Produce		json
//	@Success		200	{array}		locations.Location
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/locations [get]
func (app *application) listLocationsHandler(w http.ResponseWriter, r *http.Request) {
	if !getIdentityFromContext(r).IsAdmin() {
		app.forbiddenResponse(w, r, fmt.Errorf("listing locations requires the %s role", auth.RoleAdministrator))
		return
	}

	out, err := app.store.Locations.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if out == nil {
		out = []locations.Location{}
	}

	app.jsonResponse(w, http.StatusOK, out)
}
