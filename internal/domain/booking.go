package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking is a reservation of a coworking area for a time window
type Booking struct {
	ID         int64
	AreaID     int64
	UserID     int64
	StartAt    time.Time
	EndAt      time.Time // exclusive
	GuestCount int
	Status     BookingStatus

	// Price snapshot at checkout time
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	PricingBranch string
	PricingRuleID int64

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts against the area capacity
func (b *Booking) IsActive() bool {
	return IsActiveStatus(b.Status)
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeReviewed returns true if a host still has to approve or reject the booking
func (b *Booking) CanBeReviewed() bool {
	return b.Status == StatusPending
}

// IsActiveStatus reports whether a status is one of ActiveStatuses
func IsActiveStatus(s BookingStatus) bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// AreaBookingsFilter narrows the bookings of one area for the host listing
type AreaBookingsFilter struct {
	AreaID          int64          // required
	From            *time.Time     // bookings ending after From
	To              *time.Time     // bookings starting before To
	Status          *BookingStatus // exact status, wins over IncludeInactive
	IncludeInactive bool           // also return rejected, cancelled and completed bookings
}
