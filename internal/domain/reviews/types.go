package reviews

import (
	"errors"
	"fmt"
	"time"

	"placereviews/internal/apperr"
)

var (
	ErrNoReviews      = fmt.Errorf("%w: no reviews for place", apperr.ErrNotFound)
	ErrPageOutOfRange = fmt.Errorf("%w: review set is past the last page", apperr.ErrNotFound)
	ErrUnknownUser    = fmt.Errorf("%w: user does not exist", apperr.ErrInvalidArgument)
	ErrDuplicate      = fmt.Errorf("%w: review for this place and user exists", apperr.ErrConflict)
	errEmptyKey       = errors.New("place id and user id are required")
)

// Review is keyed by (PlaceID, UserID). TimeAdded is set by the database on
// create and refreshed on every update.
type Review struct {
	PlaceID         string    `json:"place_id"`
	UserID          string    `json:"user_id"`
	TimeAdded       time.Time `json:"time_added"`
	OverallRating   uint8     `json:"overall_rating"`
	LocationRating  uint8     `json:"location_rating"`
	AmenitiesRating uint8     `json:"amenities_rating"`
	ServiceRating   uint8     `json:"service_rating"`
	Comment         string    `json:"comment,omitempty"`
}

// Stats aggregates the ratings of every review for one place.
type Stats struct {
	PlaceID          string  `json:"place_id"`
	TotalReviews     int     `json:"total_reviews"`
	AverageOverall   float64 `json:"average_overall"`
	AverageLocation  float64 `json:"average_location"`
	AverageAmenities float64 `json:"average_amenities"`
	AverageService   float64 `json:"average_service"`
}
