package app_test

import (
	"context"
	"strings"
	"testing"

	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
)

var withTrip = domain.UserPreference{MaxPrice: 1000, TripDescription: "quiet romantic weekend"}

func TestRerank_EmptyWhenNothingToDo(t *testing.T) {
	gen := &fakeGen{text: `[{"index":0,"score":90,"reasoning":"x"}]`}
	ctx := context.Background()

	if got := app.NewReranker(gen).Rerank(ctx, nil, withTrip); len(got) != 0 {
		t.Fatalf("no candidates: got %v", got)
	}
	if got := app.NewReranker(gen).Rerank(ctx, sampleHotels(), domain.UserPreference{MaxPrice: 1000}); len(got) != 0 {
		t.Fatalf("no description: got %v", got)
	}
	if got := app.NewReranker(nil).Rerank(ctx, sampleHotels(), withTrip); len(got) != 0 {
		t.Fatalf("no generator: got %v", got)
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator should not be called, got %d calls", len(gen.prompts))
	}
}

func TestRerank_ParsesFencedReplyAndDropsBadIndices(t *testing.T) {
	gen := &fakeGen{text: "```json\n" + `[
		{"index": 2, "score": 95, "reasoning": "Quiet and elegant"},
		{"index": 7, "score": 80, "reasoning": "out of range"},
		{"index": -1, "score": 70},
		{"score": 60, "reasoning": "no index"},
		{"index": 0}
	]` + "\n```"}

	got := app.NewReranker(gen).Rerank(context.Background(), sampleHotels(), withTrip)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %+v", got)
	}
	if got[0].Hotel.ID != 3 || got[0].Score != 95 || got[0].Reasoning != "Quiet and elegant" {
		t.Fatalf("unexpected first item: %+v", got[0])
	}
	if got[1].Hotel.ID != 1 || got[1].Score != 0 || got[1].Reasoning != "AI Recommended" {
		t.Fatalf("defaults not applied: %+v", got[1])
	}
}

func TestRerank_PlainJSONReply(t *testing.T) {
	gen := &fakeGen{text: `[{"index":1,"score":88.5,"reasoning":"Spa"}]`}
	got := app.NewReranker(gen).Rerank(context.Background(), sampleHotels(), withTrip)
	if len(got) != 1 || got[0].Hotel.ID != 2 || got[0].Score != 88.5 {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestRerank_FailuresYieldEmpty(t *testing.T) {
	for name, gen := range map[string]*fakeGen{
		"call error": {err: errRemote},
		"prose":      {text: "Sure! Here is my ranking: hotel 1 is best."},
		"object":     {text: `{"index":0}`},
	} {
		t.Run(name, func(t *testing.T) {
			if got := app.NewReranker(gen).Rerank(context.Background(), sampleHotels(), withTrip); len(got) != 0 {
				t.Fatalf("expected empty, got %+v", got)
			}
		})
	}
}

func TestRerank_PromptListsCandidates(t *testing.T) {
	gen := &fakeGen{text: "[]"}
	app.NewReranker(gen).Rerank(context.Background(), sampleHotels()[:2], withTrip)

	if len(gen.prompts) != 1 {
		t.Fatalf("expected one call, got %d", len(gen.prompts))
	}
	p := gen.prompts[0]
	for _, part := range []string{
		"'quiet romantic weekend'",
		"Hotel 0: Cozy Inn ($80.0, 4.0 stars). Amenities: WiFi, Gym. Loc: New York.",
		"Hotel 1: Grand Plaza",
		"JSON",
	} {
		if !strings.Contains(p, part) {
			t.Fatalf("prompt missing %q:\n%s", part, p)
		}
	}
	if strings.Contains(p, "Royal Palace") {
		t.Fatalf("prompt lists a hotel outside the shortlist")
	}
}

func TestRerank_NumericStringScore(t *testing.T) {
	gen := &fakeGen{text: "```\n" + `[{"index":0,"score":"90"},{"index":2,"score":" 72.5 ","reasoning":"Views"}]` + "\n```"}
	got := app.NewReranker(gen).Rerank(context.Background(), sampleHotels(), withTrip)
	if len(got) != 2 || got[0].Score != 90 || got[1].Hotel.ID != 3 || got[1].Score != 72.5 {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestRerank_NonNumericScoreFailsWholeReply(t *testing.T) {
	gen := &fakeGen{text: `[{"index":0,"score":90},{"index":1,"score":"high"}]`}
	if got := app.NewReranker(gen).Rerank(context.Background(), sampleHotels(), withTrip); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
