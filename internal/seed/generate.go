// Package seed builds procedural demo hotels for an empty store.
package seed

import (
	"fmt"
	"math"
	"math/rand/v2"

	"hotel_recommender/internal/domain"
)

var (
	cities = []string{
		"New York", "London", "Miami", "Denver", "Berlin", "Paris", "Tokyo",
		"Sydney", "Dubai", "Rome", "Barcelona", "Amsterdam", "San Francisco",
		"Los Angeles", "Chicago", "Bangkok", "Singapore", "Istanbul",
	}
	adjectives = []string{
		"Grand", "Cozy", "Royal", "Urban", "Seaside", "Mountain", "Hidden",
		"Luxury", "Modern", "Vintage", "Golden", "Silver", "Crystal", "Sunset", "Sunrise",
	}
	nouns = []string{
		"Plaza", "Hotel", "Inn", "Resort", "Lodge", "Retreat", "Suites",
		"Palace", "Hostel", "Motel", "Sanctuary", "Haven", "Stay",
	}
	amenityPool = []string{
		"WiFi", "Pool", "Gym", "Spa", "Beach Access", "Bar", "Breakfast",
		"Parking", "Restaurant", "Room Service", "Conference Room", "Pet Friendly",
	}
	blurbs = []string{
		"Perfect for relaxation.", "Ideal for business.", "Great for families.",
		"A romantic getaway.", "Budget friendly choice.",
	}
)

// MaxHotels is the number of distinct names the word lists can produce.
var MaxHotels = len(adjectives) * len(nouns)

// Generate returns n hotels with unique names. The same seed always yields
// the same hotels. n is capped at MaxHotels.
func Generate(n int, seed uint64) []domain.Hotel {
	if n > MaxHotels {
		n = MaxHotels
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	used := make(map[string]struct{}, n)
	out := make([]domain.Hotel, 0, n)
	for len(out) < n {
		name := pick(r, adjectives) + " " + pick(r, nouns)
		if _, dup := used[name]; dup {
			continue
		}
		used[name] = struct{}{}

		city := pick(r, cities)
		out = append(out, domain.Hotel{
			Name:        name,
			Location:    city,
			Price:       float64(50 + r.IntN(751)),                 // 50..800
			Rating:      math.Round((3.0+r.Float64()*2.0)*10) / 10, // 3.0..5.0
			Amenities:   sample(r, amenityPool, 3+r.IntN(6)),       // 3..8
			Description: fmt.Sprintf("Experience the %s in %s. %s", name, city, pick(r, blurbs)),
		})
	}
	return out
}

// Batches splits hs into chunks of at most size.
func Batches(hs []domain.Hotel, size int) [][]domain.Hotel {
	if size <= 0 {
		size = len(hs)
	}
	var out [][]domain.Hotel
	for i := 0; i < len(hs); i += size {
		out = append(out, hs[i:min(i+size, len(hs))])
	}
	return out
}

func pick(r *rand.Rand, xs []string) string { return xs[r.IntN(len(xs))] }

func sample(r *rand.Rand, xs []string, k int) []string {
	idx := r.Perm(len(xs))[:k]
	out := make([]string, 0, k)
	for _, i := range idx {
		out = append(out, xs[i])
	}
	return out
}
