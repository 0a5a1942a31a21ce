package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"inmomax/internal/model"
	"inmomax/internal/utils"
)

// MemoryRepository keeps properties in process memory. It is the default
// storage and is seeded with the mock dataset.
type MemoryRepository struct {
	mu         sync.RWMutex
	properties []model.Property
	favorites  map[string]map[int64]bool
	nextID     int64
	now        func() time.Time
}

var _ PropertyRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates a repository holding a copy of seed.
func NewMemoryRepository(seed []model.Property) *MemoryRepository {
	r := &MemoryRepository{
		properties: make([]model.Property, 0, len(seed)),
		favorites:  make(map[string]map[int64]bool),
		nextID:     1,
		now:        time.Now,
	}
	for _, p := range seed {
		r.properties = append(r.properties, clone(p))
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

// List filters, sorts and paginates the available properties.
func (r *MemoryRepository) List(_ context.Context, q model.PropertyQuery) ([]model.Property, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []model.Property
	for _, p := range r.properties {
		if p.Status == model.StatusAvailable && matches(p, q) {
			matched = append(matched, p)
		}
	}
	sortProperties(matched, q.Sort)

	total := len(matched)
	start := max(q.Offset, 0)
	if start > total {
		start = total
	}
	end := total
	if q.Limit > 0 && q.Limit < end-start {
		end = start + q.Limit
	}

	page := make([]model.Property, 0, end-start)
	for _, p := range matched[start:end] {
		page = append(page, clone(p))
	}
	return page, total, nil
}

// Get returns a property unless it is missing or deleted.
func (r *MemoryRepository) Get(_ context.Context, id int64) (*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := clone(r.properties[i])
	return &p, nil
}

func (r *MemoryRepository) IncrementViews(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	r.properties[i].Views++
	return nil
}

func (r *MemoryRepository) Create(_ context.Context, p *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.properties = append(r.properties, clone(*p))
	return nil
}

// Update replaces the stored property with the same ID, keeping its views
// and publication date.
func (r *MemoryRepository) Update(_ context.Context, p *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	old := r.properties[i]
	p.Views = old.Views
	p.PublishedAt = old.PublishedAt
	now := r.now()
	p.UpdatedAt = &now
	r.properties[i] = clone(*p)
	return nil
}

func (r *MemoryRepository) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	now := r.now()
	r.properties[i].Status = model.StatusInactive
	r.properties[i].UpdatedAt = &now
	return nil
}

func (r *MemoryRepository) ToggleFavorite(_ context.Context, userID string, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(id) < 0 {
		return false, ErrNotFound
	}
	favs, ok := r.favorites[userID]
	if !ok {
		favs = make(map[int64]bool)
		r.favorites[userID] = favs
	}
	if favs[id] {
		delete(favs, id)
		return false, nil
	}
	favs[id] = true
	return true, nil
}

// Stats summarizes the available properties.
func (r *MemoryRepository) Stats(_ context.Context) (*model.PropertyStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &model.PropertyStats{
		ByType:      map[string]int{},
		ByOperation: map[string]int{},
	}
	var sum float64
	for _, p := range r.properties {
		if p.Status != model.StatusAvailable {
			continue
		}
		stats.Total++
		stats.ByType[string(p.Type)]++
		stats.ByOperation[string(p.Operation)]++
		sum += p.Price
		if p.Featured {
			stats.Featured++
		}
	}
	if stats.Total > 0 {
		stats.AveragePrice = sum / float64(stats.Total)
	}
	return stats, nil
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }

func (r *MemoryRepository) Close() error { return nil }

// index finds a property that has not been deleted. Callers hold the lock.
func (r *MemoryRepository) index(id int64) int {
	for i := range r.properties {
		if r.properties[i].ID == id && r.properties[i].Status != model.StatusInactive {
			return i
		}
	}
	return -1
}

func matches(p model.Property, q model.PropertyQuery) bool {
	if q.ExcludeID != 0 && p.ID == q.ExcludeID {
		return false
	}
	if q.Type != "" && p.Type != q.Type {
		return false
	}
	if q.Operation != "" && p.Operation != q.Operation {
		return false
	}
	if q.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(q.Location)) {
		return false
	}
	if q.PriceMin != nil && p.Price < *q.PriceMin {
		return false
	}
	if q.PriceMax != nil && p.Price > *q.PriceMax {
		return false
	}
	if q.RoomsMin != nil && p.Rooms < *q.RoomsMin {
		return false
	}
	if q.BathsMin != nil && p.Bathrooms < *q.BathsMin {
		return false
	}
	if q.SurfaceMin != nil && p.Surface < *q.SurfaceMin {
		return false
	}
	if q.SurfaceMax != nil && p.Surface > *q.SurfaceMax {
		return false
	}
	if q.AgeMin != nil || q.AgeMax != nil {
		if p.Age == nil {
			return false
		}
		if q.AgeMin != nil && *p.Age < *q.AgeMin {
			return false
		}
		if q.AgeMax != nil && *p.Age > *q.AgeMax {
			return false
		}
	}
	for _, keywords := range q.Amenities {
		if !utils.MatchAmenity(keywords, p.Features) {
			return false
		}
	}
	if q.Featured != nil && p.Featured != *q.Featured {
		return false
	}
	return true
}

// sortProperties orders in place. An empty order keeps ID order.
func sortProperties(props []model.Property, order model.SortOrder) {
	var less func(a, b model.Property) bool
	switch order {
	case model.SortPriceAsc:
		less = func(a, b model.Property) bool { return a.Price < b.Price }
	case model.SortPriceDesc:
		less = func(a, b model.Property) bool { return a.Price > b.Price }
	case model.SortSurfaceDesc:
		less = func(a, b model.Property) bool { return a.Surface > b.Surface }
	case model.SortRecent:
		less = func(a, b model.Property) bool { return a.PublishedAt.After(b.PublishedAt) }
	default:
		less = func(a, b model.Property) bool { return a.ID < b.ID }
	}
	sort.SliceStable(props, func(i, j int) bool { return less(props[i], props[j]) })
}

func clone(p model.Property) model.Property {
	p.Features = append(model.JSONArray(nil), p.Features...)
	p.Services = append(model.JSONArray(nil), p.Services...)
	p.Images = append(model.JSONArray(nil), p.Images...)
	if p.Coordinates != nil {
		c := *p.Coordinates
		p.Coordinates = &c
	}
	return p
}
