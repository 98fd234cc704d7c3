package app_test

import (
	"context"
	"errors"
	"sync"

	"hotel_recommender/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	hotels  []domain.Hotel
	listErr error

	created []domain.Hotel
	deleted []int64
	prices  map[int64]float64
	missing bool
}

func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.hotels, nil
}

func (f *fakeRepo) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	if h.ID == 0 {
		h.ID = int64(len(f.created) + 1)
	}
	f.created = append(f.created, h)
	return h, nil
}

func (f *fakeRepo) DeleteHotel(ctx context.Context, id int64) error {
	if f.missing {
		return domain.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) UpdatePrice(ctx context.Context, id int64, price float64) error {
	if f.missing {
		return domain.ErrNotFound
	}
	if f.prices == nil {
		f.prices = map[int64]float64{}
	}
	f.prices[id] = price
	return nil
}

func (f *fakeRepo) InsertHotels(ctx context.Context, hs []domain.Hotel) error { return nil }

type fakeGen struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (g *fakeGen) Complete(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

var errRemote = errors.New("remote down")

type fakeNotifier struct {
	got chan domain.Booking
	err error
}

func (n *fakeNotifier) NotifyBooking(ctx context.Context, b domain.Booking) error {
	n.got <- b
	return n.err
}

// ---- fixtures ----

func sampleHotels() []domain.Hotel {
	return []domain.Hotel{
		{ID: 1, Name: "Cozy Inn", Location: "New York", Price: 80, Rating: 4.0, Amenities: []string{"WiFi", "Gym"}},
		{ID: 2, Name: "Grand Plaza", Location: "new york city", Price: 150, Rating: 5.0, Amenities: []string{"wifi", "Pool", "Spa", "Bar", "Gym"}},
		{ID: 3, Name: "Royal Palace", Location: "London", Price: 500, Rating: 4.5, Amenities: []string{"WiFi", "Pool"}},
	}
}

func ids(hs []domain.Hotel) []int64 {
	out := make([]int64, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
