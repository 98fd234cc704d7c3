package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_recommender/internal/adapters/redis"
	"hotel_recommender/internal/domain"
)

func TestQueue_NotifyBookingPushesJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	q := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = q.Close() })
	ctx := context.Background()

	if err := q.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	b := domain.Booking{
		ID:        "c0ffee",
		HotelID:   12,
		UserEmail: "ana@example.com",
		GuestName: "Ana",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := q.NotifyBooking(ctx, b); err != nil {
		t.Fatalf("notify: %v", err)
	}

	items, err := mr.List(redisad.DefaultQueueKey)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one queued item, got %v (%v)", items, err)
	}

	pending, err := q.Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("unexpected pending: %+v", pending)
	}
	got := pending[0]
	if got.ID != b.ID || got.HotelID != b.HotelID || got.UserEmail != b.UserEmail || !got.CreatedAt.Equal(b.CreatedAt) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestQueue_NotifyBookingServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	q := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = q.Close() })
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := q.NotifyBooking(ctx, domain.Booking{ID: "x"}); err == nil {
		t.Fatal("expected error with redis down")
	}
}
