package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rezdyLink/internal/modules/bookings/application/port"
	"rezdyLink/internal/modules/bookings/domain"
)

// ErrMissingBookingID is raised when a cancel request names no order.
var ErrMissingBookingID = errors.New("a booking id is required")

// CancelBookingUseCase cancels an upstream order and projects the resulting
// cancellation record.
type CancelBookingUseCase struct {
	API    port.BookingAPI
	Events port.EventSink
}

func NewCancelBookingUseCase(api port.BookingAPI, events port.EventSink) *CancelBookingUseCase {
	return &CancelBookingUseCase{API: api, Events: events}
}

func (uc *CancelBookingUseCase) Execute(ctx context.Context, bookingID string) (*domain.Booking, error) {
	trimmed := strings.TrimSpace(bookingID)
	if trimmed == "" {
		return nil, ErrMissingBookingID
	}

	payload, err := uc.API.CancelBooking(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("booking cancellation: %w", err)
	}

	var cancellation *domain.Booking
	if records := domain.ExtractBookings(payload); len(records) > 0 {
		cancellation = domain.ProjectBooking(records[0])
	}
	if cancellation == nil {
		// Some cancel responses carry no body; synthesize the record the
		// caller needs from what we already know.
		cancellation = &domain.Booking{
			ID:                trimmed,
			SupplierBookingID: trimmed,
			Status:            domain.BookingStatusCancelled,
			Cancellable:       false,
		}
	}

	slog.Info("booking cancelled", slog.String("orderNumber", cancellation.ID))
	if uc.Events != nil {
		uc.Events.PublishBookingEvent(ctx, domain.NewEvent(domain.EventActionCancelled, cancellation))
	}
	return cancellation, nil
}
