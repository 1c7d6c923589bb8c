package complaints

import (
	"context"
	"testing"
	"time"

	"placereviews/internal/apperr"
	"placereviews/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	rows  []Complaint
	clock time.Time
	calls int
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *memStore) find(key Key) int {
	for i, c := range m.rows {
		if c.Key().Matches(key) {
			return i
		}
	}
	return -1
}

func (m *memStore) List(context.Context) ([]Complaint, error) {
	m.calls++
	return append([]Complaint(nil), m.rows...), nil
}

func (m *memStore) Get(_ context.Context, key Key) (*Complaint, error) {
	m.calls++
	i := m.find(key)
	if i < 0 {
		return nil, apperr.ErrNotFound
	}
	c := m.rows[i]
	return &c, nil
}

func (m *memStore) Create(_ context.Context, c *Complaint) error {
	m.calls++
	m.clock = m.clock.Add(time.Microsecond)
	c.TimeSubmitted = m.clock
	m.rows = append(m.rows, *c)
	return nil
}

func (m *memStore) Update(_ context.Context, c *Complaint) error {
	m.calls++
	i := m.find(c.Key())
	if i < 0 {
		return apperr.ErrNotFound
	}
	m.rows[i].Comment = c.Comment
	return nil
}

func (m *memStore) Delete(_ context.Context, key Key) (*Complaint, error) {
	m.calls++
	i := m.find(key)
	if i < 0 {
		return nil, apperr.ErrNotFound
	}
	c := m.rows[i]
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return &c, nil
}

var (
	owner = auth.Identity{Subject: "U1"}
	other = auth.Identity{Subject: "U2"}
	admin = auth.Identity{Subject: "A1", Roles: []string{auth.RoleAdministrator}}
)

func TestCreateReturnsGeneratedKey(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	before := store.clock
	c := &Complaint{PlaceID: "P1", UserID: "U1", Comment: "noisy"}
	require.NoError(t, svc.Create(ctx, owner, c))
	assert.True(t, c.TimeSubmitted.After(before))

	got, err := svc.Get(ctx, admin, c.Key())
	require.NoError(t, err)
	assert.Equal(t, "noisy", got.Comment)
	assert.True(t, got.TimeSubmitted.After(before))
}

func TestCreateRules(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	require.ErrorIs(t, svc.Create(ctx, owner, &Complaint{UserID: "U1"}), apperr.ErrInvalidArgument)
	require.ErrorIs(t, svc.Create(ctx, owner, nil), apperr.ErrInvalidArgument)
	require.ErrorIs(t, svc.Create(ctx, other, &Complaint{PlaceID: "P1", UserID: "U1"}), apperr.ErrPermissionDenied)
	assert.Zero(t, store.calls)

	require.NoError(t, svc.Create(ctx, admin, &Complaint{PlaceID: "P1", UserID: "U1"}))
}

func TestAdminOnlyOperations(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	c := &Complaint{PlaceID: "P1", UserID: "U1", Comment: "x"}
	require.NoError(t, svc.Create(ctx, owner, c))

	_, err := svc.List(ctx, owner)
	require.ErrorIs(t, err, apperr.ErrPermissionDenied)
	_, err = svc.Get(ctx, owner, c.Key())
	require.ErrorIs(t, err, apperr.ErrPermissionDenied)
	_, err = svc.Delete(ctx, owner, c.Key())
	require.ErrorIs(t, err, apperr.ErrPermissionDenied)
	err = svc.Update(ctx, owner, c.Key(), &Complaint{PlaceID: "P1", UserID: "U1", TimeSubmitted: c.TimeSubmitted})
	require.ErrorIs(t, err, apperr.ErrPermissionDenied)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdate(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	c := &Complaint{PlaceID: "P1", UserID: "U1", Comment: "old"}
	require.NoError(t, svc.Create(ctx, owner, c))
	key := c.Key()

	t.Run("mismatch rejected before the store", func(t *testing.T) {
		calls := store.calls
		bad := &Complaint{PlaceID: "P1", UserID: "U1", TimeSubmitted: key.TimeSubmitted.Add(time.Second)}
		require.ErrorIs(t, svc.Update(ctx, admin, key, bad), apperr.ErrInvalidArgument)
		bad = &Complaint{PlaceID: "P2", UserID: "U1", TimeSubmitted: key.TimeSubmitted}
		require.ErrorIs(t, svc.Update(ctx, admin, key, bad), apperr.ErrInvalidArgument)
		assert.Equal(t, calls, store.calls)
	})

	t.Run("same instant in another zone matches", func(t *testing.T) {
		body := &Complaint{PlaceID: "P1", UserID: "U1", TimeSubmitted: key.TimeSubmitted.In(time.FixedZone("X", 3600)), Comment: "new"}
		require.NoError(t, svc.Update(ctx, admin, key, body))
		got, err := svc.Get(ctx, admin, key)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Comment)
	})

	t.Run("missing complaint", func(t *testing.T) {
		missing := Key{PlaceID: "P9", UserID: "U1", TimeSubmitted: key.TimeSubmitted}
		body := &Complaint{PlaceID: "P9", UserID: "U1", TimeSubmitted: key.TimeSubmitted}
		require.ErrorIs(t, svc.Update(ctx, admin, missing, body), apperr.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	c := &Complaint{PlaceID: "P1", UserID: "U1", Comment: "gone"}
	require.NoError(t, svc.Create(ctx, owner, c))

	deleted, err := svc.Delete(ctx, admin, c.Key())
	require.NoError(t, err)
	assert.Equal(t, "gone", deleted.Comment)

	_, err = svc.Delete(ctx, admin, c.Key())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
