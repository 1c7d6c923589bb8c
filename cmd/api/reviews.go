package main

import (
	"fmt"
	"net/http"
	"net/url"

	"placereviews/internal/domain/reviews"
	"placereviews/internal/params"
)

// ReviewPayload is the body accepted by POST and PUT /reviews.
type ReviewPayload struct {
	PlaceID         string `json:"place_id" validate:"required"`
	UserID          string `json:"user_id" validate:"required"`
	OverallRating   *uint8 `json:"overall_rating" validate:"required"`
	LocationRating  uint8  `json:"location_rating"`
	AmenitiesRating uint8  `json:"amenities_rating"`
	ServiceRating   uint8  `json:"service_rating"`
	Comment         string `json:"comment"`
}

func (p ReviewPayload) toReview() *reviews.Review {
	rv := &reviews.Review{
		PlaceID:         p.PlaceID,
		UserID:          p.UserID,
		LocationRating:  p.LocationRating,
		AmenitiesRating: p.AmenitiesRating,
		ServiceRating:   p.ServiceRating,
		Comment:         p.Comment,
	}
	if p.OverallRating != nil {
		rv.OverallRating = *p.OverallRating
	}
	return rv
}

func (app *application) readReviewPayload(w http.ResponseWriter, r *http.Request) (*reviews.Review, bool) {
	var payload ReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}
	return payload.toReview(), true
}

func reviewLocation(rv *reviews.Review) string {
	return fmt.Sprintf("/v1/reviews/%s/%s", url.PathEscape(rv.PlaceID), url.PathEscape(rv.UserID))
}

// listReviewsHandler godoc
//
//	@Summary		List all reviews
//	@Description	Returns every review. Requires the Administrator role.
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{array}		reviews.Review
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews [get]
func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	out, err := app.reviews.List(r.Context(), getIdentityFromContext(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, out)
}

// getPlaceReviewsHandler godoc
//
//	@Summary		Get a set of reviews for a place
//	@Description	Returns set N (five per set, newest first) of commented reviews for the place.
//	@Tags			reviews
//	@Produce		json
//	@Param			placeID	path		string	true	"Place ID"
//	@Param			set		query		int		false	"Set index, starts at 0"
//	@Success		200		{array}		reviews.Review
//	@Failure		400		{object}	ErrorResponse	"Invalid set"
//	@Failure		404		{object}	ErrorResponse	"No reviews found"
//	@Router			/reviews/placeId/{placeID} [get]
func (app *application) getPlaceReviewsHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	set, err := params.ParseSet(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	out, err := app.reviews.ListByPlace(r.Context(), placeID, set.Index)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, out)
}

// getPlaceReviewStatsHandler godoc
//
//	@Summary		Rating summary for a place
//	@Description	Returns the review count and the average of each rating for the place.
//	@Tags			reviews
//	@Produce		json
//	@Param			placeID	path		string	true	"Place ID"
//	@Success		200		{object}	reviews.Stats
//	@Failure		404		{object}	ErrorResponse	"No reviews found"
//	@Router			/reviews/placeId/{placeID}/stats [get]
func (app *application) getPlaceReviewStatsHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	st, err := app.reviews.Stats(r.Context(), placeID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, st)
}

// getUserReviewsHandler godoc
//
//	@Summary		Get all reviews of a user
//	@Tags			reviews
//	@Produce		json
//	@Param			userID	path		string	true	"User ID"
//	@Success		200		{array}		reviews.Review
//	@Failure		404		{object}	ErrorResponse	"No reviews found"
//	@Router			/reviews/userId/{userID} [get]
func (app *application) getUserReviewsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	out, err := app.reviews.ListByUser(r.Context(), userID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, out)
}

// getReviewHandler godoc
//
//	@Summary		Get one review
//	@Tags			reviews
//	@Produce		json
//	@Param			placeID	path		string	true	"Place ID"
//	@Param			userID	path		string	true	"User ID"
//	@Success		200		{object}	reviews.Review
//	@Failure		404		{object}	ErrorResponse
//	@Router			/reviews/{placeID}/{userID} [get]
func (app *application) getReviewHandler(w http.ResponseWriter, r *http.Request) {
	placeID, userID, err := placeUserFromPath(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rv, err := app.reviews.Get(r.Context(), placeID, userID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, rv)
}

// createReviewHandler godoc
//
//	@Summary		Post a review
//	@Description	Creates the review for (place_id, user_id). The caller must be that user or an Administrator.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		ReviewPayload	true	"Review"
//	@Success		201		{object}	reviews.Review
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Review for user and place exists"
//	@Security		ApiKeyAuth
//	@Router			/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	rv, ok := app.readReviewPayload(w, r)
	if !ok {
		return
	}

	if err := app.reviews.Create(r.Context(), getIdentityFromContext(r), rv); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", reviewLocation(rv))
	app.jsonResponse(w, http.StatusCreated, rv)
}

// updateReviewHandler godoc
//
//	@Summary		Update a review
//	@Description	Overwrites the ratings and comment. The body key must match the path.
//	@Tags			reviews
//	@Accept			json
//	@Param			placeID	path	string			true	"Place ID"
//	@Param			userID	path	string			true	"User ID"
//	@Param			payload	body	ReviewPayload	true	"Updated review"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/{placeID}/{userID} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	placeID, userID, err := placeUserFromPath(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rv, ok := app.readReviewPayload(w, r)
	if !ok {
		return
	}

	if err := app.reviews.Update(r.Context(), getIdentityFromContext(r), placeID, userID, rv); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteReviewHandler godoc
//
//	@Summary		Delete a review
//	@Description	Deletes the review and returns it. The place's location record goes with its last review.
//	@Tags			reviews
//	@Produce		json
//	@Param			placeID	path		string	true	"Place ID"
//	@Param			userID	path		string	true	"User ID"
//	@Success		200		{object}	reviews.Review
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/{placeID}/{userID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	placeID, userID, err := placeUserFromPath(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rv, err := app.reviews.Delete(r.Context(), getIdentityFromContext(r), placeID, userID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, rv)
}
