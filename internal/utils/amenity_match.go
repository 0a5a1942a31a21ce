package utils

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// amenityAliases lists, per amenity filter, the feature text fragments that
// satisfy it. Listings spell features freely ("Cochera cubierta",
// "Jardín delantero"), with or without accents.
var amenityAliases = map[string][]string{
	"cochera":  {"cochera", "garage"},
	"jardin":   {"jardin", "jardín"},
	"parrilla": {"parrilla", "quincho"},
	"piscina":  {"piscina", "pileta"},
	"balcon":   {"balcon", "balcón"},
	"terraza":  {"terraza"},
}

// AmenityKeywords returns the lower-case fragments matching an amenity
// filter. Unknown names match themselves.
func AmenityKeywords(amenity string) []string {
	name := strings.ToLower(strings.TrimSpace(amenity))
	if aliases, ok := amenityAliases[name]; ok {
		return append([]string(nil), aliases...)
	}
	return []string{name}
}

// MatchAmenity reports whether any feature contains any of the keywords,
// case-insensitively.
func MatchAmenity(keywords []string, features []string) bool {
	for _, f := range features {
		lower := strings.ToLower(f)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// BuildAmenityQuery builds one JSONB condition per keyword group over the
// given column: a row matches a group when some array element ILIKEs any of
// the group's keywords. It returns the conditions, their parameters and the
// next free parameter index.
func BuildAmenityQuery(column string, groups [][]string, paramIndex int) ([]string, []interface{}, int) {
	if len(groups) == 0 {
		return nil, nil, paramIndex
	}

	var conditions []string
	var params []interface{}

	for _, keywords := range groups {
		patterns := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			if kw != "" {
				patterns = append(patterns, "%"+kw+"%")
			}
		}
		if len(patterns) == 0 {
			continue
		}

		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(%s) elem WHERE elem ILIKE ANY($%d))",
			column, paramIndex,
		))
		params = append(params, pq.Array(patterns))
		paramIndex++
	}

	return conditions, params, paramIndex
}
