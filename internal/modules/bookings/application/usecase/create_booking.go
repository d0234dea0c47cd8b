package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rezdyLink/internal/modules/bookings/application/port"
	"rezdyLink/internal/modules/bookings/domain"
	"rezdyLink/internal/shared/auth"
)

// ErrEmptyBookingResponse is raised when the upstream accepts a booking but
// returns nothing projectable.
var ErrEmptyBookingResponse = errors.New("upstream returned no booking record")

// CreateBookingInput pairs the availability key with the caller's booking
// details.
type CreateBookingInput struct {
	AvailabilityKey string
	Details         domain.CreateInput
}

// CreateBookingUseCase redeems an availability key into an upstream order.
type CreateBookingUseCase struct {
	API    port.BookingAPI
	Codec  *auth.KeyCodec
	Events port.EventSink
}

func NewCreateBookingUseCase(api port.BookingAPI, codec *auth.KeyCodec, events port.EventSink) *CreateBookingUseCase {
	return &CreateBookingUseCase{API: api, Codec: codec, Events: events}
}

func (uc *CreateBookingUseCase) Execute(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	hasKey := strings.TrimSpace(input.AvailabilityKey) != ""
	if err := domain.ValidateCreateInput(hasKey, input.Details.Holder); err != nil {
		return nil, err
	}

	key, err := uc.Codec.Decode(input.AvailabilityKey)
	if err != nil {
		return nil, err
	}

	request := domain.BuildCreateRequest(key, input.Details)
	payload, err := uc.API.CreateBooking(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("booking creation: %w", err)
	}

	records := domain.ExtractBookings(payload)
	if len(records) == 0 {
		return nil, ErrEmptyBookingResponse
	}
	booking := domain.ProjectBooking(records[0])
	if booking == nil {
		return nil, ErrEmptyBookingResponse
	}

	slog.Info("booking created", slog.String("orderNumber", booking.ID), slog.String("status", string(booking.Status)))
	if uc.Events != nil {
		uc.Events.PublishBookingEvent(ctx, domain.NewEvent(domain.EventActionCreated, booking))
	}
	return booking, nil
}
