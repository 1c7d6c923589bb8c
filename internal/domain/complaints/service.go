package complaints

import (
	"context"

	"placereviews/internal/apperr"
	"placereviews/internal/auth"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func requireAdmin(caller auth.Identity, action string) error {
	if !caller.IsAdmin() {
		return apperr.Forbidden("%s requires the %s role", action, auth.RoleAdministrator)
	}
	return nil
}

func (s *Service) List(ctx context.Context, caller auth.Identity) ([]Complaint, error) {
	if err := requireAdmin(caller, "listing complaints"); err != nil {
		return nil, err
	}
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Complaint{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, caller auth.Identity, key Key) (*Complaint, error) {
	if err := requireAdmin(caller, "reading a complaint"); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, key)
}

// Create files a complaint on behalf of complaint.UserID. On success the
// complaint carries its generated TimeSubmitted.
func (s *Service) Create(ctx context.Context, caller auth.Identity, complaint *Complaint) error {
	if complaint == nil || complaint.PlaceID == "" || complaint.UserID == "" {
		return apperr.Invalid("place id and user id are required")
	}
	if !auth.CanAccessOwnedData(caller, complaint.UserID) {
		return apperr.Forbidden("cannot file a complaint as user %q", complaint.UserID)
	}
	return s.store.Create(ctx, complaint)
}

// Update replaces the comment of the complaint at key. The key in the body
// must match key.
func (s *Service) Update(ctx context.Context, caller auth.Identity, key Key, complaint *Complaint) error {
	if complaint == nil || !key.Matches(complaint.Key()) {
		return apperr.Invalid("complaint key does not match the request path")
	}
	if err := requireAdmin(caller, "updating a complaint"); err != nil {
		return err
	}
	complaint.TimeSubmitted = key.TimeSubmitted
	return s.store.Update(ctx, complaint)
}

func (s *Service) Delete(ctx context.Context, caller auth.Identity, key Key) (*Complaint, error) {
	if err := requireAdmin(caller, "deleting a complaint"); err != nil {
		return nil, err
	}
	return s.store.Delete(ctx, key)
}
