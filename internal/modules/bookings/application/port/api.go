package port

import (
	"context"

	"rezdyLink/internal/modules/bookings/domain"
)

// BookingAPI is the slice of the upstream client the booking use cases need.
type BookingAPI interface {
	CreateBooking(ctx context.Context, request any) (any, error)
	FetchBooking(ctx context.Context, id string) (any, error)
	SearchBookingsByReference(ctx context.Context, reference string) (any, error)
	SearchBookingsByText(ctx context.Context, term string) (any, error)
	SearchBookingsByDateRange(ctx context.Context, minTourStart, maxTourStart string) (any, error)
	CancelBooking(ctx context.Context, id string) (any, error)
}

// EventSink receives booking lifecycle events. Implementations must never
// fail the originating operation; delivery problems are theirs to log.
type EventSink interface {
	PublishBookingEvent(ctx context.Context, event domain.Event)
}
