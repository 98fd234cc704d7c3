package app

import (
	"strings"

	"hotel_recommender/internal/domain"
)

// FilterHotels keeps the hotels matching every criterion, preserving input order.
// An empty location or amenity list skips that check.
func FilterHotels(hotels []domain.Hotel, c domain.FilterCriteria) []domain.Hotel {
	loc := strings.ToLower(c.Location)
	required := lowerAll(c.Amenities)

	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if loc != "" && !strings.Contains(strings.ToLower(h.Location), loc) {
			continue
		}
		if h.Price < c.MinPrice || h.Price > c.MaxPrice {
			continue
		}
		if !hasAll(h.Amenities, required) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// hasAll reports whether have contains every entry of want (already lowercased).
func hasAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, a := range have {
		set[strings.ToLower(a)] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
