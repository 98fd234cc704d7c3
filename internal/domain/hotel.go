package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Hotel struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description"`
}

// UserPreference is built per request and discarded afterwards.
// MinPrice > MaxPrice is allowed and simply matches nothing.
type UserPreference struct {
	Location          string   `json:"location,omitempty"`
	MinPrice          float64  `json:"min_price"`
	MaxPrice          float64  `json:"max_price"`
	RequiredAmenities []string `json:"required_amenities"`
	TripDescription   string   `json:"trip_description,omitempty"`
}

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 10000
)

// Criteria returns the filter subset of the preference.
func (p UserPreference) Criteria() FilterCriteria {
	return FilterCriteria{
		Location:  p.Location,
		MinPrice:  p.MinPrice,
		MaxPrice:  p.MaxPrice,
		Amenities: p.RequiredAmenities,
	}
}

type FilterCriteria struct {
	Location  string
	MinPrice  float64
	MaxPrice  float64
	Amenities []string
}

type ScoredHotel struct {
	Hotel     Hotel   `json:"hotel"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// RankingItem is one element of the reranker reply. Pointers distinguish
// "absent" from zero values.
type RankingItem struct {
	Index     *int       `json:"index"`
	Score     *RankScore `json:"score"`
	Reasoning *string    `json:"reasoning"`
}

// RankScore is a score that may arrive as a JSON number or a numeric string
// ("90"). Any other string fails the decode.
type RankScore float64

func (s *RankScore) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*s = RankScore(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("score: want number or numeric string, got %s", b)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	*s = RankScore(f)
	return nil
}
