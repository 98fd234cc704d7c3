package domain

import "time"

type BookingRequest struct {
	HotelID   int64  `json:"hotel_id" validate:"required,gt=0"`
	UserEmail string `json:"user_email" validate:"required,email"`
	GuestName string `json:"guest_name" validate:"required,max=200"`
}

type Booking struct {
	ID        string    `json:"booking_id"`
	HotelID   int64     `json:"hotel_id"`
	UserEmail string    `json:"user_email"`
	GuestName string    `json:"guest_name"`
	CreatedAt time.Time `json:"created_at"`
}
