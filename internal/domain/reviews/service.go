package reviews

import (
	"context"

	"placereviews/internal/apperr"
	"placereviews/internal/auth"
	"placereviews/internal/params"
)

// Service applies the review rules on top of a Store. The caller identity is
// passed in explicitly so every authorization decision is a pure function of
// the arguments.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns every review. Administrators only.
func (s *Service) List(ctx context.Context, caller auth.Identity) ([]Review, error) {
	if !caller.IsAdmin() {
		return nil, apperr.Forbidden("listing all reviews requires the %s role", auth.RoleAdministrator)
	}
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Review{}
	}
	return out, nil
}

// ListByPlace returns set number n (five per set) of commented reviews for a
// place, newest first. An empty set is NotFound; the wrapped error says
// whether the place has no commented reviews or n is past the last set.
func (s *Service) ListByPlace(ctx context.Context, placeID string, n int) ([]Review, error) {
	if n < 0 {
		return nil, apperr.Invalid("invalid set %d", n)
	}

	// Past MaxSet the offset would overflow; no place has that many reviews.
	if n <= params.MaxSet {
		set := params.NewSet(n)
		out, err := s.store.ListByPlace(ctx, placeID, set.Limit, set.Offset)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 {
			return out, nil
		}
	}

	if n == 0 {
		return nil, ErrNoReviews
	}
	total, err := s.store.CountByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrNoReviews
	}
	return nil, ErrPageOutOfRange
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	out, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, apperr.ErrNotFound
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, placeID, userID string) (*Review, error) {
	return s.store.Get(ctx, placeID, userID)
}

// Create stores a new review for (PlaceID, UserID). The location row for the
// place is created with it when needed.
func (s *Service) Create(ctx context.Context, caller auth.Identity, review *Review) error {
	if review == nil || review.PlaceID == "" || review.UserID == "" {
		return apperr.Invalid("%s", errEmptyKey)
	}
	if !auth.CanAccessOwnedData(caller, review.UserID) {
		return apperr.Forbidden("cannot post a review as user %q", review.UserID)
	}
	return s.store.Create(ctx, review)
}

// Update overwrites the ratings and comment of the review at (placeID,
// userID). The key in the body must match the key in the path.
func (s *Service) Update(ctx context.Context, caller auth.Identity, placeID, userID string, review *Review) error {
	if review == nil || review.PlaceID != placeID || review.UserID != userID {
		return apperr.Invalid("review key does not match the request path")
	}
	if !auth.CanAccessOwnedData(caller, review.UserID) {
		return apperr.Forbidden("cannot update reviews of user %q", review.UserID)
	}

	return s.store.Update(ctx, review)
}

// Delete removes the review and returns it. Missing reviews are reported
// before permission is checked.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, placeID, userID string) (*Review, error) {
	existing, err := s.store.Get(ctx, placeID, userID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessOwnedData(caller, existing.UserID) {
		return nil, apperr.Forbidden("cannot delete reviews of user %q", existing.UserID)
	}
	return s.store.Delete(ctx, placeID, userID)
}

func (s *Service) Stats(ctx context.Context, placeID string) (*Stats, error) {
	st, err := s.store.Stats(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if st.TotalReviews == 0 {
		return nil, ErrNoReviews
	}
	return st, nil
}
