package app_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
)

// ---- tests ----

func TestRecommend_ScoresAndSortsWithoutGenerator(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{hotels: sampleHotels()}, nil, 0)

	got := q.Recommend(context.Background(), domain.UserPreference{MaxPrice: 200, TripDescription: "anything"})
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %+v", got)
	}
	if got[0].Hotel.ID != 2 || got[0].Score != 100 || got[1].Hotel.ID != 1 || got[1].Score != 76 {
		t.Fatalf("unexpected order/scores: %+v", got)
	}
	for _, r := range got {
		if r.Reasoning != app.FallbackReason(r.Hotel) {
			t.Fatalf("expected template reasoning, got %q", r.Reasoning)
		}
	}
}

func TestRecommend_UsesRerankedShortlist(t *testing.T) {
	gen := &fakeGen{text: `[{"index":0,"score":70,"reasoning":"Best spa in town"}]`}
	q := app.NewQueryService(&fakeRepo{hotels: sampleHotels()}, gen, 5)

	got := q.Recommend(context.Background(), domain.UserPreference{MaxPrice: 200, TripDescription: "spa weekend"})
	if len(got) != 1 {
		t.Fatalf("expected reranked result, got %+v", got)
	}
	// index 0 of the shortlist is the best preliminary score: hotel 2
	if got[0].Hotel.ID != 2 || got[0].Score != 70 || got[0].Reasoning != "Best spa in town" {
		t.Fatalf("unexpected: %+v", got[0])
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected a single rerank call, got %d", len(gen.prompts))
	}
}

func TestRecommend_ShortlistSizeBoundsRerank(t *testing.T) {
	gen := &fakeGen{text: `[{"index":0,"score":50},{"index":1,"score":40}]`}
	q := app.NewQueryService(&fakeRepo{hotels: sampleHotels()}, gen, 1)

	got := q.Recommend(context.Background(), domain.UserPreference{MaxPrice: 1000, TripDescription: "x"})
	if len(got) != 1 || got[0].Hotel.ID != 2 {
		t.Fatalf("expected only the top hotel, got %+v", got)
	}
}

func TestRecommend_FailedRerankFallsBackToScoring(t *testing.T) {
	gen := &fakeGen{text: "not json"}
	q := app.NewQueryService(&fakeRepo{hotels: sampleHotels()}, gen, 5)

	got := q.Recommend(context.Background(), domain.UserPreference{MaxPrice: 200, TripDescription: "business trip"})
	if !slices.Equal(idsOf(got), []int64{2, 1}) {
		t.Fatalf("unexpected fallback order: %v", idsOf(got))
	}
	// the reasoner reuses the generator, one call per hotel after the rerank
	if len(gen.prompts) != 3 {
		t.Fatalf("expected 3 generator calls, got %d", len(gen.prompts))
	}
	if got[0].Reasoning != "not json" {
		t.Fatalf("expected generated reasoning, got %q", got[0].Reasoning)
	}
}

func TestRecommend_StoreFailureIsEmpty(t *testing.T) {
	for name, repo := range map[string]domain.HotelRepository{
		"unconfigured": nil,
		"error":        &fakeRepo{listErr: errors.New("connection refused")},
	} {
		t.Run(name, func(t *testing.T) {
			q := app.NewQueryService(repo, nil, 0)
			if got := q.Recommend(context.Background(), domain.UserPreference{MaxPrice: 1000}); len(got) != 0 {
				t.Fatalf("expected empty, got %+v", got)
			}
			if got := q.Search(context.Background(), domain.FilterCriteria{MaxPrice: 1000}, 0, 10); len(got) != 0 {
				t.Fatalf("expected empty, got %+v", got)
			}
		})
	}
}

func TestSearch_Paginates(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{hotels: sampleHotels()}, nil, 0)
	c := domain.FilterCriteria{MaxPrice: 1000}
	ctx := context.Background()

	if got := q.Search(ctx, c, 0, 10); !slices.Equal(ids(got), []int64{1, 2, 3}) {
		t.Fatalf("all: %v", ids(got))
	}
	if got := q.Search(ctx, c, 1, 1); !slices.Equal(ids(got), []int64{2}) {
		t.Fatalf("window: %v", ids(got))
	}
	if got := q.Search(ctx, c, 2, 10); !slices.Equal(ids(got), []int64{3}) {
		t.Fatalf("tail: %v", ids(got))
	}
	if got := q.Search(ctx, c, 5, 10); got == nil || len(got) != 0 {
		t.Fatalf("past the end should be an empty slice, got %#v", got)
	}
}

func TestSearch_EndToEndPriceFilter(t *testing.T) {
	repo := &fakeRepo{hotels: []domain.Hotel{
		{ID: 10, Price: 80}, {ID: 11, Price: 150}, {ID: 12, Price: 500},
	}}
	q := app.NewQueryService(repo, nil, 0)
	got := q.Search(context.Background(), domain.FilterCriteria{MaxPrice: 200}, 0, 10)
	if !slices.Equal(ids(got), []int64{10, 11}) {
		t.Fatalf("got %v", ids(got))
	}
}

func idsOf(rs []domain.ScoredHotel) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Hotel.ID)
	}
	return out
}

func TestRecommend_BlankTripDescriptionSkipsRerank(t *testing.T) {
	gen := &fakeGen{text: "Lovely stay."}
	q := app.NewQueryService(&fakeRepo{hotels: sampleHotels()}, gen, 5)

	got := q.Recommend(context.Background(), domain.UserPreference{MaxPrice: 200, TripDescription: "   \n\t"})
	if len(got) != 2 || got[0].Reasoning != "Lovely stay." {
		t.Fatalf("expected scored results with generated reasons, got %+v", got)
	}
	for _, p := range gen.prompts {
		if strings.Contains(p, "User is looking for") {
			t.Fatalf("rerank prompt sent for a blank description: %q", p)
		}
	}
}
