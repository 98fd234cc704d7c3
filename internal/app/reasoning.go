package app

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/domain"
)

// Reasoner explains a recommendation. A nil generator means no remote
// capability is configured and the template is always used.
type Reasoner struct {
	gen domain.TextGenerator
}

func NewReasoner(gen domain.TextGenerator) *Reasoner {
	return &Reasoner{gen: gen}
}

// Reason never fails: any problem with the remote call yields FallbackReason.
func (r *Reasoner) Reason(ctx context.Context, h domain.Hotel, p domain.UserPreference, score float64) string {
	if r == nil || r.gen == nil {
		return FallbackReason(h)
	}

	text, err := r.gen.Complete(ctx, reasonPrompt(h, p))
	if err != nil {
		log.Warn().Err(err).Int64("hotel_id", h.ID).Msg("reasoning generation failed")
		return FallbackReason(h)
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if text == "" {
		log.Warn().Int64("hotel_id", h.ID).Msg("reasoning generation returned no text")
		return FallbackReason(h)
	}
	return text
}

func FallbackReason(h domain.Hotel) string {
	return fmt.Sprintf(
		"This hotel is a great match located in %s with a rating of %s. It costs $%s per night.",
		h.Location, formatNum(h.Rating), formatNum(h.Price),
	)
}

func reasonPrompt(h domain.Hotel, p domain.UserPreference) string {
	return fmt.Sprintf(
		"Explain why '%s' is a good recommendation for a traveler looking for a hotel in %s with a budget of $%s. "+
			"The hotel costs $%s, has a %s star rating, and these amenities: %s. "+
			"Keep it persuasive but short (under 50 words).",
		h.Name, p.Location, formatNum(p.MaxPrice),
		formatNum(h.Price), formatNum(h.Rating), strings.Join(h.Amenities, ", "),
	)
}

// formatNum prints whole numbers with one decimal (120 -> "120.0") and
// everything else in shortest form (4.5 -> "4.5").
func formatNum(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
