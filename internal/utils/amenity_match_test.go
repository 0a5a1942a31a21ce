package utils

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmenityKeywords(t *testing.T) {
	assert.Equal(t, []string{"jardin", "jardín"}, AmenityKeywords("Jardin"))
	assert.Equal(t, []string{"ascensor"}, AmenityKeywords(" Ascensor "))

	kw := AmenityKeywords("balcon")
	kw[0] = "x"
	assert.Equal(t, []string{"balcon", "balcón"}, AmenityKeywords("balcon"))
}

func TestMatchAmenity(t *testing.T) {
	features := []string{"Jardín delantero y trasero", "Cochera cubierta", "Parrilla"}

	tests := []struct {
		amenity string
		want    bool
	}{
		{"jardin", true},
		{"cochera", true},
		{"parrilla", true},
		{"piscina", false},
		{"balcon", false},
		{"terraza", false},
	}
	for _, tt := range tests {
		t.Run(tt.amenity, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAmenity(AmenityKeywords(tt.amenity), features))
		})
	}

	assert.True(t, MatchAmenity(AmenityKeywords("balcon"), []string{"Balcón con vista a la ciudad"}))
	assert.False(t, MatchAmenity(nil, features))
	assert.False(t, MatchAmenity([]string{""}, features))
}

func TestBuildAmenityQuery(t *testing.T) {
	conds, params, next := BuildAmenityQuery("caracteristicas", [][]string{{"piscina", "pileta"}, {"terraza"}}, 3)

	require.Len(t, conds, 2)
	assert.Equal(t, "EXISTS (SELECT 1 FROM jsonb_array_elements_text(caracteristicas) elem WHERE elem ILIKE ANY($3))", conds[0])
	assert.Contains(t, conds[1], "ANY($4)")
	assert.Equal(t, 5, next)
	assert.Equal(t, []interface{}{
		pq.Array([]string{"%piscina%", "%pileta%"}),
		pq.Array([]string{"%terraza%"}),
	}, params)
}

func TestBuildAmenityQuery_Empty(t *testing.T) {
	conds, params, next := BuildAmenityQuery("caracteristicas", nil, 7)
	assert.Nil(t, conds)
	assert.Nil(t, params)
	assert.Equal(t, 7, next)

	conds, _, next = BuildAmenityQuery("caracteristicas", [][]string{{""}}, 7)
	assert.Empty(t, conds)
	assert.Equal(t, 7, next)
}
