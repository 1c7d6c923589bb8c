package locations

// Location marks a place that has at least one review.
type Location struct {
	PlaceID string `json:"place_id"`
}
