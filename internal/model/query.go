package model

// SortOrder is the listing order of a property query
type SortOrder string

const (
	SortRecent      SortOrder = "recientes"
	SortPriceAsc    SortOrder = "precio-asc"
	SortPriceDesc   SortOrder = "precio-desc"
	SortSurfaceDesc SortOrder = "metros-desc"
)

// PropertyQuery represents typed listing filters as the repositories see them.
// Nil pointers and empty strings mean "no constraint".
type PropertyQuery struct {
	Type       PropertyType
	Operation  Operation
	Location   string
	PriceMin   *float64
	PriceMax   *float64
	RoomsMin   *int
	BathsMin   *int
	SurfaceMin *float64
	SurfaceMax *float64
	AgeMin     *int
	AgeMax     *int
	// Amenities holds, per requested amenity, the feature keywords any of
	// which must appear in the property's features.
	Amenities [][]string
	Featured  *bool
	ExcludeID int64
	Sort      SortOrder
	Limit     int
	Offset    int
}
