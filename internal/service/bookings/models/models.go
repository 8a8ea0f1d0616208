package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"-"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Status *string // Фильтр по статусу (опционально)
}

// GetAreaBookingsRequest запрос на получение бронирований зоны
type GetAreaBookingsRequest struct {
	UserID          int64 // хост, запрашивающий список
	AreaID          int64
	From            *time.Time
	To              *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAreaBookingsRequest) ToDomainFilter() (domain.AreaBookingsFilter, error) {
	filter := domain.AreaBookingsFilter{
		AreaID:          r.AreaID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.From != nil && r.To != nil && !r.To.After(*r.From) {
		return filter, errors.New("to must be after from")
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	AreaID     int64  `json:"areaId"`
	UserID     int64  `json:"userId"`
	StartAt    string `json:"startAt"` // "2026-03-14T18:30:00Z"
	EndAt      string `json:"endAt"`
	GuestCount int    `json:"guestCount"`
	Status     string `json:"status"`

	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PricingBranch string          `json:"pricingBranch,omitempty"`
	PricingRuleID int64           `json:"pricingRuleId,omitempty"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		AreaID:             b.AreaID,
		UserID:             b.UserID,
		StartAt:            domain.FormatDateTime(b.StartAt),
		EndAt:              domain.FormatDateTime(b.EndAt),
		GuestCount:         b.GuestCount,
		Status:             string(b.Status),
		UnitPrice:          b.UnitPrice,
		TotalPrice:         b.TotalPrice,
		PricingBranch:      b.PricingBranch,
		PricingRuleID:      b.PricingRuleID,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusRejected,
		domain.StatusCancelled,
		domain.StatusCompleted:
		return s, nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", status)
	}
}
