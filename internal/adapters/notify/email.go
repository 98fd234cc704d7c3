// Package notify holds in-process booking notifiers.
package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"hotel_recommender/internal/adapters/observability"
	"hotel_recommender/internal/domain"
)

// EmailLogger stands in for a mail gateway: it waits Delay, then logs the
// confirmation it would have sent.
type EmailLogger struct {
	Delay time.Duration
	Log   zerolog.Logger
}

func NewEmailLogger(delay time.Duration, l zerolog.Logger) *EmailLogger {
	return &EmailLogger{Delay: delay, Log: l}
}

func (n *EmailLogger) NotifyBooking(ctx context.Context, b domain.Booking) error {
	if !sleepCtx(ctx, n.Delay) {
		observability.ObserveNotification("email", ctx.Err())
		return ctx.Err()
	}
	n.Log.Info().
		Str("booking_id", b.ID).
		Str("to", b.UserEmail).
		Int64("hotel_id", b.HotelID).
		Msg("confirmation email sent")
	observability.ObserveNotification("email", nil)
	return nil
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
