package app

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/domain"
)

const DefaultShortlistSize = 5

type QueryService struct {
	repo      domain.HotelRepository
	reasoner  *Reasoner
	reranker  *Reranker
	shortlist int
}

// NewQueryService wires the read side. repo and gen may be nil when the store
// or the text generator is not configured.
func NewQueryService(repo domain.HotelRepository, gen domain.TextGenerator, shortlist int) *QueryService {
	if shortlist <= 0 {
		shortlist = DefaultShortlistSize
	}
	return &QueryService{
		repo:      repo,
		reasoner:  NewReasoner(gen),
		reranker:  NewReranker(gen),
		shortlist: shortlist,
	}
}

// allHotels degrades to an empty collection on any store problem.
func (s *QueryService) allHotels(ctx context.Context) []domain.Hotel {
	if s.repo == nil {
		return nil
	}
	hs, err := s.repo.ListHotels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("list hotels failed, serving empty collection")
		return nil
	}
	return hs
}

// Search filters the whole collection and returns the [skip, skip+limit) window.
func (s *QueryService) Search(ctx context.Context, c domain.FilterCriteria, skip, limit int) []domain.Hotel {
	filtered := FilterHotels(s.allHotels(ctx), c)
	return paginate(filtered, skip, limit)
}

func paginate(hs []domain.Hotel, skip, limit int) []domain.Hotel {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(hs) || limit <= 0 {
		return []domain.Hotel{}
	}
	end := skip + limit
	if end > len(hs) {
		end = len(hs)
	}
	return hs[skip:end]
}

// Recommend filters by the preference, then either reranks a shortlist with
// the text generator (when a trip description is given) or scores and
// explains every match.
func (s *QueryService) Recommend(ctx context.Context, p domain.UserPreference) []domain.ScoredHotel {
	filtered := FilterHotels(s.allHotels(ctx), p.Criteria())

	if p.TripDescription != "" {
		if reranked := s.reranker.Rerank(ctx, s.shortlistFor(filtered, p), p); len(reranked) > 0 {
			return reranked
		}
	}

	out := make([]domain.ScoredHotel, 0, len(filtered))
	for _, h := range filtered {
		score := Score(h, p)
		out = append(out, domain.ScoredHotel{
			Hotel:     h,
			Score:     score,
			Reasoning: s.reasoner.Reason(ctx, h, p, score),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// shortlistFor returns the top-N hotels by preliminary score.
func (s *QueryService) shortlistFor(hs []domain.Hotel, p domain.UserPreference) []domain.Hotel {
	type scored struct {
		h     domain.Hotel
		score float64
	}
	ranked := make([]scored, 0, len(hs))
	for _, h := range hs {
		ranked = append(ranked, scored{h: h, score: Score(h, p)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	n := min(s.shortlist, len(ranked))
	out := make([]domain.Hotel, 0, n)
	for _, r := range ranked[:n] {
		out = append(out, r.h)
	}
	return out
}
