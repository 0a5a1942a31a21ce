package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"inmomax/internal/config"
	"inmomax/internal/filters"
	"inmomax/internal/logger"
	"inmomax/internal/mockdata"
	"inmomax/internal/model"
	"inmomax/internal/repository"
	"inmomax/internal/utils"
)

// ErrInvalidInput marks errors caused by the caller's request.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound is returned for missing or deleted properties.
var ErrNotFound = repository.ErrNotFound

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// similarPriceRange is the relative price band of similar properties.
const similarPriceRange = 0.3

// legacyKeys maps the backend's snake_case filter names to FilterSet keys.
var legacyKeys = map[string]filters.Field{
	"precio_min": filters.FieldPriceMin,
	"precio_max": filters.FieldPriceMax,
	"metros_min": filters.FieldSurfaceMin,
	"metros_max": filters.FieldSurfaceMax,
}

// PropertyService handles property business logic
type PropertyService struct {
	repo   repository.PropertyRepository
	limits config.CatalogConfig
	now    func() time.Time
}

// NewPropertyService creates a new property service
func NewPropertyService(repo repository.PropertyRepository, limits config.CatalogConfig) *PropertyService {
	return &PropertyService{
		repo:   repo,
		limits: limits,
		now:    time.Now,
	}
}

// List answers a listing query. query carries FilterSet keys plus pagina,
// limite (or limit), featured and banos.
func (s *PropertyService) List(ctx context.Context, query url.Values) (*model.PropertyListResponse, error) {
	query = withLegacyKeys(query)

	f := filters.Decode(query)
	if err := filters.Validate(f); err != nil {
		return nil, invalid("%v", err)
	}

	page, err := intParam(query, "pagina", 1)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, invalid("pagina must be at least 1, got %d", page)
	}

	limitKey := "limite"
	if query.Get(limitKey) == "" {
		limitKey = "limit"
	}
	limit, err := intParam(query, limitKey, 0)
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, s.limits.DefaultLimit, s.limits.MaxLimit)
	if limit <= 0 {
		limit = filters.DefaultPageSize
	}

	q := toPropertyQuery(f)
	if v := query.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return nil, invalid("featured must be a boolean, got %q", v)
		}
		q.Featured = &featured
	}
	if n, ok := parseInt(query.Get("banos")); ok {
		q.BathsMin = &n
	}
	if page-1 > math.MaxInt/limit {
		return nil, invalid("pagina %d is out of range", page)
	}
	q.Limit = limit
	q.Offset = (page - 1) * limit

	props, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	if props == nil {
		props = []model.Property{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	logger.FromContext(ctx).Debug("properties listed",
		zap.String("filters", filters.QueryString(f)),
		zap.Int("page", page),
		zap.Int("total", total),
	)

	return &model.PropertyListResponse{
		Properties: props,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns a property and counts the view.
func (s *PropertyService) Get(ctx context.Context, id int64) (*model.Property, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Create publishes a new available, non-featured property.
func (s *PropertyService) Create(ctx context.Context, in model.PropertyInput) (*model.Property, error) {
	agent, ok := mockdata.AgentByID(in.AgentID)
	if !ok {
		return nil, invalid("agente %d not found", in.AgentID)
	}

	p := fromInput(in)
	p.Agent = agent
	p.Status = model.StatusAvailable
	p.PublishedAt = s.now()

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	logger.FromContext(ctx).Info("property created", zap.Int64("id", p.ID), zap.String("title", p.Title))
	return &p, nil
}

// Update replaces the editable fields of a property.
func (s *PropertyService) Update(ctx context.Context, id int64, in model.PropertyInput) (*model.Property, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	agent, ok := mockdata.AgentByID(in.AgentID)
	if !ok {
		return nil, invalid("agente %d not found", in.AgentID)
	}

	p := fromInput(in)
	p.ID = id
	p.Agent = agent
	p.Status = current.Status
	p.Featured = current.Featured

	if err := s.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete marks a property inactive.
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("property deleted", zap.Int64("id", id))
	return nil
}

// Similar returns available properties of the same type and operation priced
// within 30% of the given one.
func (s *PropertyService) Similar(ctx context.Context, id int64, limit int) ([]model.Property, error) {
	base, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	delta := base.Price * similarPriceRange
	minPrice := base.Price - delta
	maxPrice := base.Price + delta

	props, _, err := s.repo.List(ctx, model.PropertyQuery{
		Type:      base.Type,
		Operation: base.Operation,
		PriceMin:  &minPrice,
		PriceMax:  &maxPrice,
		ExcludeID: id,
		Limit:     clampLimit(limit, s.limits.SimilarDefaultLimit, s.limits.SimilarMaxLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("similar properties: %w", err)
	}
	if props == nil {
		props = []model.Property{}
	}
	return props, nil
}

// ToggleFavorite flips the user's favorite mark on a property.
func (s *PropertyService) ToggleFavorite(ctx context.Context, id int64, userID string) (*model.FavoriteResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, invalid("usuario_id is required")
	}

	on, err := s.repo.ToggleFavorite(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	msg := "Propiedad eliminada de favoritos"
	if on {
		msg = "Propiedad agregada a favoritos"
	}
	return &model.FavoriteResponse{
		Message:    msg,
		PropertyID: id,
		UserID:     userID,
		IsFavorite: on,
	}, nil
}

// Stats summarizes the available properties.
func (s *PropertyService) Stats(ctx context.Context) (*model.PropertyStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("property stats: %w", err)
	}
	return stats, nil
}

// toPropertyQuery turns a FilterSet into repository filters. Numeric fields
// that do not parse are ignored.
func toPropertyQuery(f filters.FilterSet) model.PropertyQuery {
	q := model.PropertyQuery{
		Type:      model.PropertyType(f.PropertyType),
		Operation: model.Operation(f.Operation),
		Location:  strings.TrimSpace(f.Location),
		Sort:      model.SortOrder(f.SortOrder),
	}

	if v, ok := parseFloat(f.PriceMin); ok {
		q.PriceMin = &v
	}
	if v, ok := parseFloat(f.PriceMax); ok {
		q.PriceMax = &v
	}
	if v, ok := parseFloat(f.SurfaceMin); ok {
		q.SurfaceMin = &v
	}
	if v, ok := parseFloat(f.SurfaceMax); ok {
		q.SurfaceMax = &v
	}
	if n, ok := filters.MinRooms(f.Rooms); ok {
		q.RoomsMin = &n
	}
	if lo, hi, ok := filters.AgeRange(f.Age); ok {
		q.AgeMin = &lo
		if hi >= 0 {
			q.AgeMax = &hi
		}
	}
	for _, a := range f.Amenities.Selected() {
		q.Amenities = append(q.Amenities, utils.AmenityKeywords(string(a)))
	}
	return q
}

func fromInput(in model.PropertyInput) model.Property {
	return model.Property{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Location:    strings.TrimSpace(in.Location),
		Address:     in.Address,
		Type:        in.Type,
		Operation:   in.Operation,
		Rooms:       in.Rooms,
		Bathrooms:   in.Bathrooms,
		Surface:     in.Surface,
		LandSurface: in.LandSurface,
		Age:         in.Age,
		Expenses:    in.Expenses,
		Features:    nonNil(in.Features),
		Services:    nonNil(in.Services),
		Images:      nonNil(in.Images),
		Coordinates: in.Coordinates,
	}
}

func nonNil(s []string) model.JSONArray {
	if s == nil {
		return model.JSONArray{}
	}
	return model.JSONArray(s)
}

func withLegacyKeys(query url.Values) url.Values {
	out := url.Values{}
	for k, v := range query {
		out[k] = v
	}
	for legacy, field := range legacyKeys {
		if v := query.Get(legacy); v != "" && query.Get(string(field)) == "" {
			out.Set(string(field), v)
		}
	}
	return out
}

// clampLimit applies the default to non-positive limits and caps the rest.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}

func intParam(query url.Values, key string, def int) (int, error) {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalid("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
