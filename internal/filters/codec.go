package filters

import "net/url"

// Encode renders the active fields of f as query parameters keyed by field
// name. Empty fields, the default sort order and unset amenities are omitted,
// so Decode(Encode(f)) restores f.
func Encode(f FilterSet) url.Values {
	v := url.Values{}
	for _, field := range textFields {
		if value := f.Get(field); isActiveValue(field, value) {
			v.Set(string(field), value)
		}
	}
	for _, a := range f.Amenities.Selected() {
		v.Set(string(a), "true")
	}
	return v
}

// Decode derives a FilterSet from query parameters. Missing keys take their
// defaults and unknown keys are ignored.
func Decode(q url.Values) FilterSet {
	f := Default()
	for _, field := range textFields {
		if value := q.Get(string(field)); value != "" {
			_ = f.Set(field, value)
		}
	}
	for _, a := range AllAmenities {
		if value := q.Get(string(a)); value != "" {
			f.Amenities.Set(a, parseFlag(value))
		}
	}
	return f
}

// QueryString is the encoded, key-sorted form of Encode(f).
func QueryString(f FilterSet) string {
	return Encode(f).Encode()
}
