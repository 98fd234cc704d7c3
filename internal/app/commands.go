package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/domain"
)

// AdminService passes admin writes through to the store. Every method
// reports domain.ErrStoreUnavailable when no store is configured.
type AdminService struct {
	repo domain.HotelRepository
}

func NewAdminService(r domain.HotelRepository) *AdminService {
	return &AdminService{repo: r}
}

func (s *AdminService) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	if s.repo == nil {
		return domain.Hotel{}, domain.ErrStoreUnavailable
	}
	if h.Amenities == nil {
		h.Amenities = []string{}
	}
	out, err := s.repo.CreateHotel(ctx, h)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("create hotel: %w", err)
	}
	return out, nil
}

func (s *AdminService) DeleteHotel(ctx context.Context, id int64) error {
	if s.repo == nil {
		return domain.ErrStoreUnavailable
	}
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return fmt.Errorf("delete hotel %d: %w", id, err)
	}
	return nil
}

func (s *AdminService) UpdatePrice(ctx context.Context, id int64, price float64) error {
	if s.repo == nil {
		return domain.ErrStoreUnavailable
	}
	if err := s.repo.UpdatePrice(ctx, id, price); err != nil {
		return fmt.Errorf("update price of hotel %d: %w", id, err)
	}
	return nil
}

// Dispatcher runs fn outside the request. The default starts a goroutine.
type Dispatcher func(fn func())

func GoDispatcher(fn func()) { go fn() }

// BookingService acknowledges bookings and fires the confirmation
// notification without waiting for it.
type BookingService struct {
	notifier domain.BookingNotifier
	dispatch Dispatcher
	now      func() time.Time
}

func NewBookingService(n domain.BookingNotifier, d Dispatcher) *BookingService {
	if d == nil {
		d = GoDispatcher
	}
	return &BookingService{notifier: n, dispatch: d, now: time.Now}
}

func (s *BookingService) Book(ctx context.Context, req domain.BookingRequest) domain.Booking {
	b := domain.Booking{
		ID:        uuid.NewString(),
		HotelID:   req.HotelID,
		UserEmail: req.UserEmail,
		GuestName: req.GuestName,
		CreatedAt: s.now().UTC(),
	}
	if s.notifier == nil {
		return b
	}

	// the request context is cancelled once the response is written
	nctx := context.WithoutCancel(ctx)
	s.dispatch(func() {
		if err := s.notifier.NotifyBooking(nctx, b); err != nil {
			log.Warn().Err(err).Str("booking_id", b.ID).Msg("booking notification failed")
		}
	})
	return b
}
