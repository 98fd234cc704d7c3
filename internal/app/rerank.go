package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/domain"
)

const defaultRankReasoning = "AI Recommended"

// Reranker reorders a shortlist against the user's free-text trip description.
type Reranker struct {
	gen domain.TextGenerator
}

func NewReranker(gen domain.TextGenerator) *Reranker {
	return &Reranker{gen: gen}
}

// Rerank returns nil whenever the caller should fall back to plain scoring:
// no generator, no description, no candidates, or any call/parse failure.
func (r *Reranker) Rerank(ctx context.Context, candidates []domain.Hotel, p domain.UserPreference) []domain.ScoredHotel {
	if r == nil || r.gen == nil || strings.TrimSpace(p.TripDescription) == "" || len(candidates) == 0 {
		return nil
	}

	text, err := r.gen.Complete(ctx, rerankPrompt(candidates, p.TripDescription))
	if err != nil {
		log.Warn().Err(err).Int("candidates", len(candidates)).Msg("rerank call failed")
		return nil
	}

	items, err := parseRanking(text)
	if err != nil {
		log.Warn().Err(err).Msg("rerank reply not parseable")
		return nil
	}

	out := make([]domain.ScoredHotel, 0, len(items))
	for _, it := range items {
		if it.Index == nil || *it.Index < 0 || *it.Index >= len(candidates) {
			continue
		}
		sh := domain.ScoredHotel{
			Hotel:     candidates[*it.Index],
			Reasoning: defaultRankReasoning,
		}
		if it.Score != nil {
			sh.Score = float64(*it.Score)
		}
		if it.Reasoning != nil {
			sh.Reasoning = *it.Reasoning
		}
		out = append(out, sh)
	}
	return out
}

func rerankPrompt(candidates []domain.Hotel, description string) string {
	var b strings.Builder
	for i, h := range candidates {
		fmt.Fprintf(&b, "Hotel %d: %s ($%s, %s stars). Amenities: %s. Loc: %s.\n",
			i, h.Name, formatNum(h.Price), formatNum(h.Rating), strings.Join(h.Amenities, ", "), h.Location)
	}
	return fmt.Sprintf(
		"User is looking for: '%s'.\nHere are the candidates:\n%s\n"+
			"Task: Rank these hotels from best to worst match for the user's specific request. "+
			"Return a JSON array where each object has: 'index' (int), 'score' (0-100), and 'reasoning' (max 20 words). "+
			"The JSON should be the only output.",
		description, b.String(),
	)
}

// parseRanking decodes the reply, tolerating a ```json fenced block around it.
func parseRanking(text string) ([]domain.RankingItem, error) {
	var items []domain.RankingItem
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &items); err != nil {
		return nil, fmt.Errorf("decode ranking: %w", err)
	}
	return items, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// drop the info string ("json") up to the first newline
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
