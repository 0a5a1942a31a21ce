// Package filters keeps the property search criteria of a listing page, its
// form draft and the page URL consistent.
package filters

import (
	"fmt"
	"strconv"
	"strings"

	"inmomax/internal/model"
)

// Field is a FilterSet field, named by its query-string key.
type Field string

const (
	FieldType       Field = "tipo"
	FieldOperation  Field = "operacion"
	FieldLocation   Field = "ubicacion"
	FieldPriceMin   Field = "precioMin"
	FieldPriceMax   Field = "precioMax"
	FieldRooms      Field = "habitaciones"
	FieldSurfaceMin Field = "superficieMin"
	FieldSurfaceMax Field = "superficieMax"
	FieldAge        Field = "antiguedad"
	FieldSort       Field = "orden"
)

// textFields is the encoding order of the string-valued fields.
var textFields = []Field{
	FieldType, FieldOperation, FieldLocation,
	FieldPriceMin, FieldPriceMax, FieldRooms,
	FieldSurfaceMin, FieldSurfaceMax, FieldAge, FieldSort,
}

// Amenity is an advanced boolean filter, named by its query-string key.
type Amenity string

const (
	AmenityGarage  Amenity = "cochera"
	AmenityGarden  Amenity = "jardin"
	AmenityGrill   Amenity = "parrilla"
	AmenityPool    Amenity = "piscina"
	AmenityBalcony Amenity = "balcon"
	AmenityTerrace Amenity = "terraza"
)

// AllAmenities lists the amenities in display order.
var AllAmenities = []Amenity{
	AmenityGarage, AmenityGarden, AmenityGrill,
	AmenityPool, AmenityBalcony, AmenityTerrace,
}

// DefaultSort is the sort order of a fresh FilterSet. It never counts as an
// active filter.
const DefaultSort = string(model.SortRecent)

// RoomOptions are the selectable room counts.
var RoomOptions = []string{"1", "2", "3", "4", "5+"}

// AgeBuckets are the selectable age ranges.
var AgeBuckets = []string{"nueva", "0-5", "5-10", "10-20", "20+"}

// SortOrders are the selectable sort orders.
var SortOrders = []string{
	string(model.SortRecent), string(model.SortPriceAsc),
	string(model.SortPriceDesc), string(model.SortSurfaceDesc),
}

// Amenities is the set of advanced boolean filters.
type Amenities struct {
	Garage  bool
	Garden  bool
	Grill   bool
	Pool    bool
	Balcony bool
	Terrace bool
}

func (a *Amenities) flag(name Amenity) *bool {
	switch name {
	case AmenityGarage:
		return &a.Garage
	case AmenityGarden:
		return &a.Garden
	case AmenityGrill:
		return &a.Grill
	case AmenityPool:
		return &a.Pool
	case AmenityBalcony:
		return &a.Balcony
	case AmenityTerrace:
		return &a.Terrace
	}
	return nil
}

// Has reports whether the amenity is required.
func (a Amenities) Has(name Amenity) bool {
	if f := a.flag(name); f != nil {
		return *f
	}
	return false
}

// Set requires or releases an amenity. Unknown names are ignored.
func (a *Amenities) Set(name Amenity, on bool) {
	if f := a.flag(name); f != nil {
		*f = on
	}
}

// Selected returns the required amenities in display order.
func (a Amenities) Selected() []Amenity {
	var out []Amenity
	for _, name := range AllAmenities {
		if a.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// FilterSet represents the current search criteria of a listing page.
// Numeric bounds are kept as the text the user typed; no min <= max check
// is made here.
type FilterSet struct {
	PropertyType string
	Operation    string
	Location     string
	PriceMin     string
	PriceMax     string
	Rooms        string
	SurfaceMin   string
	SurfaceMax   string
	Age          string
	Amenities    Amenities
	SortOrder    string
}

// Default returns a FilterSet with every field at its default.
func Default() FilterSet {
	return FilterSet{SortOrder: DefaultSort}
}

// Get returns the text value of a field.
func (f FilterSet) Get(field Field) string {
	if p := (&f).text(field); p != nil {
		return *p
	}
	if f.Amenities.Has(Amenity(field)) {
		return "true"
	}
	return ""
}

// Set assigns a field from its form or query-string value. Amenity fields
// accept any strconv.ParseBool value plus "on".
func (f *FilterSet) Set(field Field, value string) error {
	if p := f.text(field); p != nil {
		*p = value
		return nil
	}
	if f.Amenities.flag(Amenity(field)) != nil {
		f.Amenities.Set(Amenity(field), parseFlag(value))
		return nil
	}
	return fmt.Errorf("unknown filter field %q", field)
}

func (f *FilterSet) text(field Field) *string {
	switch field {
	case FieldType:
		return &f.PropertyType
	case FieldOperation:
		return &f.Operation
	case FieldLocation:
		return &f.Location
	case FieldPriceMin:
		return &f.PriceMin
	case FieldPriceMax:
		return &f.PriceMax
	case FieldRooms:
		return &f.Rooms
	case FieldSurfaceMin:
		return &f.SurfaceMin
	case FieldSurfaceMax:
		return &f.SurfaceMax
	case FieldAge:
		return &f.Age
	case FieldSort:
		return &f.SortOrder
	}
	return nil
}

func parseFlag(value string) bool {
	if strings.EqualFold(value, "on") {
		return true
	}
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

// isActiveValue reports whether a field value differs from its default.
func isActiveValue(field Field, value string) bool {
	if value == "" {
		return false
	}
	return field != FieldSort || value != DefaultSort
}

// ActiveFields lists the fields that differ from their default, text fields
// first, then amenities.
func ActiveFields(f FilterSet) []Field {
	var out []Field
	for _, field := range textFields {
		if isActiveValue(field, f.Get(field)) {
			out = append(out, field)
		}
	}
	for _, a := range f.Amenities.Selected() {
		out = append(out, Field(a))
	}
	return out
}

// IsActive reports whether at least one field differs from its default.
func IsActive(f FilterSet) bool {
	return len(ActiveFields(f)) > 0
}

// ToggleRooms implements single-select toggling: choosing the current value
// again clears it back to "any".
func ToggleRooms(current, selected string) string {
	if current == selected {
		return ""
	}
	return selected
}

// Validate checks the enumerated fields. Free-text fields, including the
// numeric bounds, are never rejected.
func Validate(f FilterSet) error {
	if f.PropertyType != "" && !contains(propertyTypes(), f.PropertyType) {
		return fmt.Errorf("invalid %s %q", FieldType, f.PropertyType)
	}
	if f.Operation != "" && !contains(operations(), f.Operation) {
		return fmt.Errorf("invalid %s %q", FieldOperation, f.Operation)
	}
	if f.Rooms != "" && !contains(RoomOptions, f.Rooms) {
		return fmt.Errorf("invalid %s %q", FieldRooms, f.Rooms)
	}
	if f.Age != "" && !contains(AgeBuckets, f.Age) {
		return fmt.Errorf("invalid %s %q", FieldAge, f.Age)
	}
	if f.SortOrder != "" && !contains(SortOrders, f.SortOrder) {
		return fmt.Errorf("invalid %s %q", FieldSort, f.SortOrder)
	}
	return nil
}

// AgeRange maps an age bucket to inclusive bounds in years. max is -1 for
// open-ended buckets. ok is false for an empty or unknown bucket.
func AgeRange(bucket string) (min, max int, ok bool) {
	switch bucket {
	case "nueva":
		return 0, 0, true
	case "0-5":
		return 0, 5, true
	case "5-10":
		return 5, 10, true
	case "10-20":
		return 10, 20, true
	case "20+":
		return 20, -1, true
	}
	return 0, 0, false
}

// MinRooms maps a room option to the minimum room count it selects.
func MinRooms(rooms string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(rooms, "+"))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func propertyTypes() []string {
	out := make([]string, len(model.PropertyTypes))
	for i, t := range model.PropertyTypes {
		out[i] = string(t)
	}
	return out
}

func operations() []string {
	out := make([]string, len(model.Operations))
	for i, o := range model.Operations {
		out[i] = string(o)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
