package domain

import "context"

type HotelRepository interface {
	// Read path
	ListHotels(ctx context.Context) ([]Hotel, error)

	// Admin paths
	CreateHotel(ctx context.Context, h Hotel) (Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error
	UpdatePrice(ctx context.Context, id int64, price float64) error

	// Seeding
	InsertHotels(ctx context.Context, hs []Hotel) error
}

// TextGenerator completes a prompt. Any error or empty text is treated the
// same way by callers.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type BookingNotifier interface {
	NotifyBooking(ctx context.Context, b Booking) error
}
