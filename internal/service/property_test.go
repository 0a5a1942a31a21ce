package service

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmomax/internal/config"
	"inmomax/internal/filters"
	"inmomax/internal/mockdata"
	"inmomax/internal/model"
	"inmomax/internal/repository"
)

var testLimits = config.CatalogConfig{
	DefaultLimit:        12,
	MaxLimit:            100,
	SimilarDefaultLimit: 4,
	SimilarMaxLimit:     10,
}

func newPropertyService() (*PropertyService, *repository.MemoryRepository) {
	repo := repository.NewMemoryRepository(mockdata.Properties())
	return NewPropertyService(repo, testLimits), repo
}

func ids(props []model.Property) []int64 {
	out := make([]int64, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

// failingRepo fails every read.
type failingRepo struct {
	repository.PropertyRepository
}

func (failingRepo) List(context.Context, model.PropertyQuery) ([]model.Property, int, error) {
	return nil, 0, errors.New("connection refused")
}

func TestPropertyService_ListDefaults(t *testing.T) {
	svc, _ := newPropertyService()

	res, err := svc.List(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 12, res.Limit)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, []int64{6, 5, 4, 3, 2, 1}, ids(res.Properties))
}

func TestPropertyService_ListFromFilterSet(t *testing.T) {
	svc, _ := newPropertyService()

	f := filters.Default()
	f.Operation = "venta"
	f.Rooms = "3"
	f.SortOrder = "precio-asc"
	f.Amenities.Pool = true

	res, err := svc.List(context.Background(), filters.Encode(f))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 6}, ids(res.Properties))
}

func TestPropertyService_ListFilters(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  []int64
	}{
		{name: "rooms 5+", query: url.Values{"habitaciones": {"5+"}}, want: []int64{}},
		{name: "rooms minimum", query: url.Values{"habitaciones": {"4"}}, want: []int64{6}},
		{name: "age bucket nueva", query: url.Values{"antiguedad": {"nueva"}}, want: []int64{5}},
		{name: "age bucket 20+", query: url.Values{"antiguedad": {"20+"}}, want: []int64{3}},
		{name: "age bucket 5-10", query: url.Values{"antiguedad": {"5-10"}, "orden": {"precio-asc"}}, want: []int64{4, 1, 6}},
		{name: "price free text ignored", query: url.Values{"precioMin": {"abc"}, "tipo": {"casa"}}, want: []int64{3, 1}},
		{name: "min above max", query: url.Values{"precioMin": {"400000"}, "precioMax": {"100000"}}, want: []int64{}},
		{name: "surface", query: url.Values{"superficieMin": {"100"}, "orden": {"metros-desc"}}, want: []int64{6, 1, 3}},
		{name: "legacy keys", query: url.Values{"precio_min": {"300000"}, "metros_max": {"150"}}, want: []int64{1}},
		{name: "featured", query: url.Values{"featured": {"true"}, "orden": {"precio-desc"}}, want: []int64{6, 1, 4, 2}},
		{name: "baths", query: url.Values{"banos": {"2"}, "orden": {"precio-asc"}}, want: []int64{3, 1, 6}},
		{name: "location", query: url.Values{"ubicacion": {" centro "}}, want: []int64{2}},
	}

	svc, _ := newPropertyService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.List(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res.Properties))
			assert.Equal(t, len(tt.want), res.Total)
		})
	}
}

func TestPropertyService_ListPagination(t *testing.T) {
	svc, _ := newPropertyService()

	res, err := svc.List(context.Background(), url.Values{"pagina": {"2"}, "limite": {"4"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 4, res.Limit)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, []int64{2, 1}, ids(res.Properties))

	res, err = svc.List(context.Background(), url.Values{"featured": {"true"}, "limit": {"3"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Limit)
	assert.Len(t, res.Properties, 3)

	res, err = svc.List(context.Background(), url.Values{"limite": {"500"}})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Limit)

	res, err = svc.List(context.Background(), url.Values{"tipo": {"oficina"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalPages)
	assert.NotNil(t, res.Properties)
}

func TestPropertyService_ListInvalid(t *testing.T) {
	svc, _ := newPropertyService()

	for _, q := range []url.Values{
		{"tipo": {"castillo"}},
		{"orden": {"random"}},
		{"pagina": {"0"}},
		{"pagina": {"dos"}},
		{"limite": {"x"}},
		{"featured": {"maybe"}},
	} {
		_, err := svc.List(context.Background(), q)
		assert.ErrorIs(t, err, ErrInvalidInput, q.Encode())
	}
}

func TestPropertyService_ListPageOutOfRange(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	_, err := svc.List(ctx, url.Values{"pagina": {"1000000000000000000"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, url.Values{"pagina": {strconv.Itoa(math.MaxInt)}, "limite": {"2"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	res, err := svc.List(ctx, url.Values{"pagina": {"1000000"}})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
	assert.Empty(t, res.Properties)
}

func TestPropertyService_ListRepositoryError(t *testing.T) {
	svc := NewPropertyService(failingRepo{}, testLimits)

	_, err := svc.List(context.Background(), url.Values{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPropertyService_GetCountsView(t *testing.T) {
	svc, _ := newPropertyService()

	p, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 146, p.Views)

	_, err = svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func validInput() model.PropertyInput {
	return model.PropertyInput{
		Title:       "Departamento a estrenar en Echesortu",
		Description: "Departamento de dos dormitorios a estrenar, con balcón al frente y amenities completos en el edificio.",
		Price:       95000,
		Location:    "Echesortu, Rosario",
		Type:        model.TypeApartment,
		Operation:   model.OperationSale,
		Rooms:       2,
		Bathrooms:   1,
		Surface:     58,
		Features:    []string{"Balcón al frente"},
		AgentID:     1,
	}
}

func TestPropertyService_Create(t *testing.T) {
	svc, _ := newPropertyService()
	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, model.StatusAvailable, p.Status)
	assert.False(t, p.Featured)
	assert.Equal(t, now, p.PublishedAt)
	assert.Equal(t, "María González", p.Agent.Name)
	assert.NotNil(t, p.Images)

	res, err := svc.List(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Properties[0].ID)

	in := validInput()
	in.AgentID = 9
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPropertyService_UpdateAndDelete(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	p, err := svc.Update(ctx, 2, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)
	assert.Equal(t, 95000.0, p.Price)
	assert.True(t, p.Featured)
	assert.Equal(t, 89, p.Views)

	_, err = svc.Update(ctx, 77, validInput())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 2))
	assert.ErrorIs(t, svc.Delete(ctx, 2), ErrNotFound)
	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyService_Similar(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	in := validInput()
	in.Type = model.TypeHouse
	in.Price = 300000
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)

	props, err := svc.Similar(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{created.ID}, ids(props))

	props, err = svc.Similar(ctx, 4, 0)
	require.NoError(t, err)
	assert.Empty(t, props)
	assert.NotNil(t, props)

	_, err = svc.Similar(ctx, 99, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyService_ToggleFavorite(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	res, err := svc.ToggleFavorite(ctx, 3, "u-1")
	require.NoError(t, err)
	assert.True(t, res.IsFavorite)
	assert.Equal(t, "Propiedad agregada a favoritos", res.Message)

	res, err = svc.ToggleFavorite(ctx, 3, "u-1")
	require.NoError(t, err)
	assert.False(t, res.IsFavorite)

	_, err = svc.ToggleFavorite(ctx, 3, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ToggleFavorite(ctx, 99, "u-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyService_Stats(t *testing.T) {
	svc, _ := newPropertyService()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 4, stats.Featured)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 12, clampLimit(0, 12, 100))
	assert.Equal(t, 12, clampLimit(-3, 12, 100))
	assert.Equal(t, 40, clampLimit(40, 12, 100))
	assert.Equal(t, 100, clampLimit(1000, 12, 100))
	assert.Equal(t, 7, clampLimit(7, 12, 0))
}
