package app_test

import (
	"context"
	"strings"
	"testing"

	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
)

func TestReason_NoGeneratorUsesTemplate(t *testing.T) {
	h := domain.Hotel{Name: "Cozy Inn", Location: "Paris", Price: 120, Rating: 4.5}
	got := app.NewReasoner(nil).Reason(context.Background(), h, domain.UserPreference{}, 80)

	want := "This hotel is a great match located in Paris with a rating of 4.5. It costs $120.0 per night."
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestReason_GeneratorErrorFallsBack(t *testing.T) {
	h := domain.Hotel{Location: "Rome", Price: 99.5, Rating: 4}
	got := app.NewReasoner(&fakeGen{err: errRemote}).Reason(context.Background(), h, domain.UserPreference{}, 50)
	if got != app.FallbackReason(h) {
		t.Fatalf("expected fallback, got %q", got)
	}
	if !strings.Contains(got, "rating of 4.0") || !strings.Contains(got, "$99.5") {
		t.Fatalf("unexpected number formatting: %q", got)
	}
}

func TestReason_BlankReplyFallsBack(t *testing.T) {
	h := domain.Hotel{Location: "Rome", Price: 100, Rating: 3}
	got := app.NewReasoner(&fakeGen{text: " \n "}).Reason(context.Background(), h, domain.UserPreference{}, 50)
	if got == "" || got != app.FallbackReason(h) {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestReason_UsesGeneratedText(t *testing.T) {
	gen := &fakeGen{text: "  Great pool.\nClose to the beach.\n"}
	h := domain.Hotel{Name: "Seaside Resort", Location: "Miami", Price: 210, Rating: 4.8, Amenities: []string{"Pool", "Beach Access"}}
	p := domain.UserPreference{Location: "Miami", MaxPrice: 300}

	got := app.NewReasoner(gen).Reason(context.Background(), h, p, 90)
	if got != "Great pool. Close to the beach." {
		t.Fatalf("got %q", got)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(gen.prompts))
	}
	for _, part := range []string{"'Seaside Resort'", "hotel in Miami", "budget of $300.0", "costs $210.0", "4.8 star", "Pool, Beach Access"} {
		if !strings.Contains(gen.prompts[0], part) {
			t.Fatalf("prompt missing %q: %s", part, gen.prompts[0])
		}
	}
}
