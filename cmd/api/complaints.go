package main

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"placereviews/internal/domain/complaints"
)

// CreateComplaintPayload is the body accepted by POST /complaints.
type CreateComplaintPayload struct {
	PlaceID string `json:"place_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	Comment string `json:"comment"`
}

// UpdateComplaintPayload is the body accepted by PUT /complaints/{placeID}/{userID}/{timeSubmitted}.
// The key fields must repeat the path.
type UpdateComplaintPayload struct {
	PlaceID       string    `json:"place_id" validate:"required"`
	UserID        string    `json:"user_id" validate:"required"`
	TimeSubmitted time.Time `json:"time_submitted" validate:"required"`
	Comment       string    `json:"comment"`
}

// complaintKeyFromPath reads the three key segments. timeSubmitted is RFC 3339,
// fractional seconds optional.
func complaintKeyFromPath(r *http.Request) (complaints.Key, error) {
	placeID, userID, err := placeUserFromPath(r)
	if err != nil {
		return complaints.Key{}, err
	}
	raw, err := pathParam(r, "timeSubmitted")
	if err != nil {
		return complaints.Key{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return complaints.Key{}, fmt.Errorf("invalid timeSubmitted %q: expected RFC 3339", raw)
	}

	return complaints.Key{PlaceID: placeID, UserID: userID, TimeSubmitted: ts}, nil
}

func complaintLocation(c *complaints.Complaint) string {
	return fmt.Sprintf("/v1/complaints/%s/%s/%s",
		url.PathEscape(c.PlaceID),
		url.PathEscape(c.UserID),
		url.PathEscape(c.TimeSubmitted.UTC().Format(time.RFC3339Nano)))
}

// listComplaintsHandler godoc
//
//	@Summary		List all complaints
//	@Description	Requires the Administrator role.
//	@Tags			complaints
//	@Produce		json
//	@Success		200	{array}		complaints.Complaint
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/complaints [get]
func (app *application) listComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	out, err := app.complaints.List(r.Context(), getIdentityFromContext(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, out)
}

// getComplaintHandler godoc
//
//	@Summary		Get one complaint
//	@Description	Requires the Administrator role.
//	@Tags			complaints
//	@Produce		json
//	@Param			placeID			path		string	true	"Place ID"
//	@Param			userID			path		string	true	"User ID"
//	@Param			timeSubmitted	path		string	true	"Submission time, RFC 3339"
//	@Success		200				{object}	complaints.Complaint
//	@Failure		400				{object}	ErrorResponse
//	@Failure		403				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/complaints/{placeID}/{userID}/{timeSubmitted} [get]
func (app *application) getComplaintHandler(w http.ResponseWriter, r *http.Request) {
	key, err := complaintKeyFromPath(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c, err := app.complaints.Get(r.Context(), getIdentityFromContext(r), key)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, c)
}

// createComplaintHandler godoc
//
//	@Summary		File a complaint
//	@Description	The caller must be user_id or an Administrator. time_submitted is assigned by the server.
//	@Tags			complaints
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateComplaintPayload	true	"Complaint"
//	@Success		201		{object}	complaints.Complaint
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/complaints [post]
func (app *application) createComplaintHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateComplaintPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := &complaints.Complaint{
		PlaceID: payload.PlaceID,
		UserID:  payload.UserID,
		Comment: payload.Comment,
	}
	if err := app.complaints.Create(r.Context(), getIdentityFromContext(r), c); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", complaintLocation(c))
	app.jsonResponse(w, http.StatusCreated, c)
}

// updateComplaintHandler godoc
//
//	@Summary		Update a complaint
//	@Description	Replaces the comment. Requires the Administrator role. The body key must match the path.
//	@Tags			complaints
//	@Accept			json
//	@Param			placeID			path	string					true	"Place ID"
//	@Param			userID			path	string					true	"User ID"
//	@Param			timeSubmitted	path	string					true	"Submission time, RFC 3339"
//	@Param			payload			body	UpdateComplaintPayload	true	"Complaint"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/complaints/{placeID}/{userID}/{timeSubmitted} [put]
func (app *application) updateComplaintHandler(w http.ResponseWriter, r *http.Request) {
	key, err := complaintKeyFromPath(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateComplaintPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := &complaints.Complaint{
		PlaceID:       payload.PlaceID,
		UserID:        payload.UserID,
		TimeSubmitted: payload.TimeSubmitted,
		Comment:       payload.Comment,
	}
	if err := app.complaints.Update(r.Context(), getIdentityFromContext(r), key, c); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteComplaintHandler godoc
//
//	@Summary		Delete a complaint
//	@Description	Requires the Administrator role. Returns the deleted complaint.
//	@Tags			complaints
//	@Produce		json
//	@Param			placeID			path		string	true	"Place ID"
//	@Param			userID			path		string	true	"User ID"
//	@Param			timeSubmitted	path		string	true	"Submission time, RFC 3339"
//	@Success		200				{object}	complaints.Complaint
//	@Failure		400				{object}	ErrorResponse
//	@Failure		403				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/complaints/{placeID}/{userID}/{timeSubmitted} [delete]
func (app *application) deleteComplaintHandler(w http.ResponseWriter, r *http.Request) {
	key, err := complaintKeyFromPath(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c, err := app.complaints.Delete(r.Context(), getIdentityFromContext(r), key)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, c)
}
