package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"placereviews/internal/apperr"
	"placereviews/internal/auth"
	"placereviews/internal/domain/complaints"
	"placereviews/internal/domain/locations"
	"placereviews/internal/domain/reviews"
	"placereviews/internal/domain/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type reviewKey struct{ place, user string }

// fakeStore backs all three stores so location rows follow reviews the way
// the database transactions keep them.
type fakeStore struct {
	mu         sync.Mutex
	reviews    map[reviewKey]reviews.Review
	complaints []complaints.Complaint
	locations  map[string]bool
	users      map[string]bool
	clock      time.Time
}

func newFakeStore(users ...string) *fakeStore {
	fs := &fakeStore{
		reviews:   map[reviewKey]reviews.Review{},
		locations: map[string]bool{},
		users:     map[string]bool{},
		clock:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, u := range users {
		fs.users[u] = true
	}
	return fs
}

func (fs *fakeStore) tick() time.Time {
	fs.clock = fs.clock.Add(time.Millisecond * 1500)
	return fs.clock
}

func (fs *fakeStore) filter(keep func(reviews.Review) bool) []reviews.Review {
	var out []reviews.Review
	for _, rv := range fs.reviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeAdded.After(out[j].TimeAdded) })
	return out
}

type fakeReviews struct{ *fakeStore }

func (f fakeReviews) List(context.Context) ([]reviews.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(func(reviews.Review) bool { return true }), nil
}

func (f fakeReviews) ListByPlace(_ context.Context, placeID string, limit, offset int) ([]reviews.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.filter(func(rv reviews.Review) bool { return rv.PlaceID == placeID && rv.Comment != "" })
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (f fakeReviews) CountByPlace(_ context.Context, placeID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filter(func(rv reviews.Review) bool { return rv.PlaceID == placeID && rv.Comment != "" })), nil
}

func (f fakeReviews) ListByUser(_ context.Context, userID string) ([]reviews.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(func(rv reviews.Review) bool { return rv.UserID == userID }), nil
}

func (f fakeReviews) Get(_ context.Context, placeID, userID string) (*reviews.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rv, ok := f.reviews[reviewKey{placeID, userID}]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &rv, nil
}

func (f fakeReviews) Create(_ context.Context, review *reviews.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := reviewKey{review.PlaceID, review.UserID}
	if _, ok := f.reviews[k]; ok {
		return reviews.ErrDuplicate
	}
	if !f.users[review.UserID] {
		return reviews.ErrUnknownUser
	}
	f.locations[review.PlaceID] = true
	review.TimeAdded = f.tick()
	f.reviews[k] = *review
	return nil
}

func (f fakeReviews) Update(_ context.Context, review *reviews.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := reviewKey{review.PlaceID, review.UserID}
	if _, ok := f.reviews[k]; !ok {
		return apperr.ErrNotFound
	}
	review.TimeAdded = f.tick()
	f.reviews[k] = *review
	return nil
}

func (f fakeReviews) Delete(_ context.Context, placeID, userID string) (*reviews.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := reviewKey{placeID, userID}
	rv, ok := f.reviews[k]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	delete(f.reviews, k)
	if len(f.filter(func(r reviews.Review) bool { return r.PlaceID == placeID })) == 0 {
		delete(f.locations, placeID)
	}
	return &rv, nil
}

func (f fakeReviews) Stats(_ context.Context, placeID string) (*reviews.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := &reviews.Stats{PlaceID: placeID}
	var overall float64
	for _, rv := range f.reviews {
		if rv.PlaceID == placeID {
			st.TotalReviews++
			overall += float64(rv.OverallRating)
		}
	}
	if st.TotalReviews > 0 {
		st.AverageOverall = overall / float64(st.TotalReviews)
	}
	return st, nil
}

type fakeComplaints struct{ *fakeStore }

func (f fakeComplaints) find(key complaints.Key) int {
	for i, c := range f.complaints {
		if key.Matches(c.Key()) {
			return i
		}
	}
	return -1
}

func (f fakeComplaints) List(context.Context) ([]complaints.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]complaints.Complaint(nil), f.complaints...), nil
}

func (f fakeComplaints) Get(_ context.Context, key complaints.Key) (*complaints.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(key)
	if i < 0 {
		return nil, apperr.ErrNotFound
	}
	c := f.complaints[i]
	return &c, nil
}

func (f fakeComplaints) Create(_ context.Context, c *complaints.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.users[c.UserID] {
		return complaints.ErrUnknownUser
	}
	c.TimeSubmitted = f.tick().Add(123456 * time.Nanosecond)
	f.complaints = append(f.complaints, *c)
	return nil
}

func (f fakeComplaints) Update(_ context.Context, c *complaints.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(c.Key())
	if i < 0 {
		return apperr.ErrNotFound
	}
	f.complaints[i].Comment = c.Comment
	return nil
}

func (f fakeComplaints) Delete(_ context.Context, key complaints.Key) (*complaints.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(key)
	if i < 0 {
		return nil, apperr.ErrNotFound
	}
	c := f.complaints[i]
	f.complaints = append(f.complaints[:i], f.complaints[i+1:]...)
	return &c, nil
}

type fakeLocations struct{ *fakeStore }

func (f fakeLocations) Ensure(_ context.Context, placeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locations[placeID] {
		return false, nil
	}
	f.locations[placeID] = true
	return true, nil
}

func (f fakeLocations) DeleteIfOrphaned(_ context.Context, placeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.reviews {
		if k.place == placeID {
			return false, nil
		}
	}
	_, ok := f.locations[placeID]
	delete(f.locations, placeID)
	return ok, nil
}

func (f fakeLocations) List(context.Context) ([]locations.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []locations.Location
	for id := range f.locations {
		out = append(out, locations.Location{PlaceID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlaceID < out[j].PlaceID })
	return out, nil
}

func newTestApplication(t *testing.T, fs *fakeStore) *application {
	t.Helper()

	store := &storage.Container{
		Reviews:    fakeReviews{fs},
		Complaints: fakeComplaints{fs},
		Locations:  fakeLocations{fs},
	}

	return &application{
		config: config{
			env: "test",
			auth: authConfig{
				basic: basicConfig{user: "ops", pass: "secret"},
				token: tokenConfig{secret: testSecret, aud: "placereviews", iss: "placereviews"},
			},
		},
		store:         store,
		reviews:       reviews.NewService(store.Reviews),
		complaints:    complaints.NewService(store.Complaints),
		logger:        zap.NewNop().Sugar(),
		authenticator: auth.NewJWTAuthenticator(testSecret, "placereviews", "placereviews"),
	}
}

func tokenFor(t *testing.T, app *application, subject string, roles ...string) string {
	t.Helper()
	tok, err := app.authenticator.GenerateToken(auth.Identity{Subject: subject, Roles: roles}, time.Hour)
	require.NoError(t, err)
	return tok
}

func executeRequest(mux http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

// decodeData unwraps the {"data": ...} envelope.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	return e
}
