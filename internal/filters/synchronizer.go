package filters

import (
	"context"
	"fmt"
	"net/url"

	"inmomax/internal/model"
)

// Navigator moves the page to a new query string, adding a history entry.
type Navigator interface {
	Push(ctx context.Context, query url.Values) error
}

// Fetcher loads one page of listings for a FilterSet.
type Fetcher interface {
	List(ctx context.Context, f FilterSet, page, limit int) (*model.PropertyListResponse, error)
}

// DefaultPageSize is the number of listings per page.
const DefaultPageSize = 12

// Synchronizer owns the filter state of one listing page for the lifetime of
// the page. Form edits only touch the draft; the URL changes on Apply and
// Clear, and a URL change re-derives both the draft and the applied set.
//
// A Synchronizer is not safe for concurrent use.
type Synchronizer struct {
	nav   Navigator
	fetch Fetcher

	applied FilterSet
	draft   FilterSet
	page    int
	limit   int

	results *model.PropertyListResponse
}

// NewSynchronizer seeds the state from the page's current query string.
// It does not fetch; call Load once the page is mounted.
func NewSynchronizer(initial url.Values, nav Navigator, fetch Fetcher) *Synchronizer {
	f := Decode(initial)
	return &Synchronizer{
		nav:     nav,
		fetch:   fetch,
		applied: f,
		draft:   f,
		page:    1,
		limit:   DefaultPageSize,
	}
}

// WithPageSize overrides the number of listings per page.
func (s *Synchronizer) WithPageSize(n int) *Synchronizer {
	if n > 0 {
		s.limit = n
	}
	return s
}

// Applied returns the FilterSet the current results were fetched with.
func (s *Synchronizer) Applied() FilterSet { return s.applied }

// Draft returns the FilterSet currently shown in the form.
func (s *Synchronizer) Draft() FilterSet { return s.draft }

// Page returns the current page number, starting at 1.
func (s *Synchronizer) Page() int { return s.page }

// Results returns the last fetched page, nil before the first fetch.
func (s *Synchronizer) Results() *model.PropertyListResponse { return s.results }

// HasActiveFilters drives the "clear filters" affordance.
func (s *Synchronizer) HasActiveFilters() bool { return IsActive(s.draft) }

// Edit changes one form field without touching the URL.
func (s *Synchronizer) Edit(field Field, value string) error {
	return s.draft.Set(field, value)
}

// ToggleRooms selects a room count, or clears it when already selected.
func (s *Synchronizer) ToggleRooms(rooms string) {
	s.draft.Rooms = ToggleRooms(s.draft.Rooms, rooms)
}

// ToggleAmenity flips one amenity checkbox.
func (s *Synchronizer) ToggleAmenity(a Amenity) {
	s.draft.Amenities.Set(a, !s.draft.Amenities.Has(a))
}

// Load fetches the current page for the applied FilterSet.
func (s *Synchronizer) Load(ctx context.Context) error {
	return s.refresh(ctx)
}

// Apply submits the draft: it pushes the encoded draft to the URL, resets
// pagination and re-fetches. The returned FilterSet is the draft unchanged.
func (s *Synchronizer) Apply(ctx context.Context) (FilterSet, error) {
	f := s.draft
	if err := s.nav.Push(ctx, Encode(f)); err != nil {
		return f, fmt.Errorf("push filters: %w", err)
	}
	s.applied = f
	s.page = 1
	return f, s.refresh(ctx)
}

// Clear resets the draft to the defaults and applies it.
func (s *Synchronizer) Clear(ctx context.Context) (FilterSet, error) {
	s.draft = Default()
	return s.Apply(ctx)
}

// OnURLChange handles navigation the page did not start itself (back/forward,
// a bookmarked link). The echo of our own Apply is recognised and ignored.
func (s *Synchronizer) OnURLChange(ctx context.Context, query url.Values) error {
	f := Decode(query)
	if QueryString(f) == QueryString(s.applied) && s.results != nil {
		return nil
	}
	s.applied = f
	s.draft = f
	s.page = 1
	return s.refresh(ctx)
}

// SetPage moves to another results page with the same filters.
func (s *Synchronizer) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.page = page
	return s.refresh(ctx)
}

func (s *Synchronizer) refresh(ctx context.Context) error {
	res, err := s.fetch.List(ctx, s.applied, s.page, s.limit)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}
	s.results = res
	return nil
}
