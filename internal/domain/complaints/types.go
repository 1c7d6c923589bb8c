package complaints

import (
	"fmt"
	"time"

	"placereviews/internal/apperr"
)

var ErrUnknownUser = fmt.Errorf("%w: user does not exist", apperr.ErrInvalidArgument)

// Complaint is keyed by (PlaceID, UserID, TimeSubmitted). TimeSubmitted is
// assigned by the database on insert.
type Complaint struct {
	PlaceID       string    `json:"place_id"`
	UserID        string    `json:"user_id"`
	TimeSubmitted time.Time `json:"time_submitted"`
	Comment       string    `json:"comment"`
}

// Key identifies one complaint.
type Key struct {
	PlaceID       string
	UserID        string
	TimeSubmitted time.Time
}

func (c Complaint) Key() Key {
	return Key{PlaceID: c.PlaceID, UserID: c.UserID, TimeSubmitted: c.TimeSubmitted}
}

// Matches compares keys. Timestamps compare by instant, not by location.
func (k Key) Matches(other Key) bool {
	return k.PlaceID == other.PlaceID && k.UserID == other.UserID && k.TimeSubmitted.Equal(other.TimeSubmitted)
}
