package app

import (
	"math"

	"hotel_recommender/internal/domain"
)

const (
	priceWeight      = 40.0
	ratingWeight     = 30.0
	amenityWeight    = 30.0
	pointsPerAmenity = 6.0
)

// Score returns the match score of h for p, rounded to one decimal.
//
//	price:     flat 40 when p.MaxPrice > 0 and h.Price <= p.MaxPrice
//	rating:    rating/5 * 30
//	amenities: 6 per amenity, capped at 30
//
// The amenity part counts the hotel's amenities; it does not look at the
// amenities the user asked for.
func Score(h domain.Hotel, p domain.UserPreference) float64 {
	score := 0.0

	if p.MaxPrice > 0 && h.Price <= p.MaxPrice {
		score += priceWeight
	}

	score += (h.Rating / 5.0) * ratingWeight
	score += math.Min(float64(len(h.Amenities))*pointsPerAmenity, amenityWeight)

	return math.Round(score*10) / 10
}
