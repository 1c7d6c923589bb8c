package params

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// SetSize is the fixed number of reviews served per set.
const SetSize = 5

// MaxSet is the largest set index whose offset fits in an int.
const MaxSet = math.MaxInt / SetSize

// URL: /reviews/placeId/{placeId}?set=2
// → ParseSet() → Set{Index:2, Limit:5, Offset:10}
// → SQL: ... LIMIT 5 OFFSET 10
type Set struct {
	Index  int `json:"set"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ParseSet reads ?set=N. A missing value means set 0. Non-numeric values are
// rejected; negative values are returned as-is so the caller can reject them
// with its own error.
func ParseSet(q url.Values) (Set, error) {
	s := Set{Limit: SetSize}

	raw := strings.TrimSpace(q.Get("set"))
	if raw == "" {
		return s, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return s, fmt.Errorf("set must be an integer, got %q", raw)
	}

	s.Index = n
	if n <= MaxSet {
		s.Offset = n * SetSize
	}
	return s, nil
}

// NewSet returns the window for set index n. n must be in [0, MaxSet].
func NewSet(n int) Set {
	return Set{Index: n, Limit: SetSize, Offset: n * SetSize}
}
