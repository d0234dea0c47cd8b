package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rezdyLink/internal/modules/bookings/application/port"
	"rezdyLink/internal/modules/bookings/domain"
	"rezdyLink/internal/platform/rezdy"
	"rezdyLink/internal/shared/fanout"
)

var (
	// ErrMissingSearchParams is raised when neither a booking id nor a
	// travel-date range is supplied.
	ErrMissingSearchParams = errors.New("a booking id or travel date range is required")
	// ErrSearchExhausted distinguishes "we could not actually search" from
	// "legitimately nothing found": every strategy that could have answered
	// failed with a real error and no strategy produced a result.
	ErrSearchExhausted = errors.New("booking search failed due to API errors")
)

// SearchBookingInput selects one of the two search branches. BookingID wins
// when both are set.
type SearchBookingInput struct {
	BookingID       string
	TravelDateStart string
	TravelDateEnd   string
}

// SearchBookingUseCase probes several upstream lookup strategies
// concurrently, merges and deduplicates their results, and classifies
// failures. A "no order found" response from any strategy is a valid empty
// result; only real errors count against the search.
type SearchBookingUseCase struct {
	API   port.BookingAPI
	Limit int
}

func NewSearchBookingUseCase(api port.BookingAPI, limit int) *SearchBookingUseCase {
	if limit <= 0 {
		limit = fanout.DefaultLimit
	}
	return &SearchBookingUseCase{API: api, Limit: limit}
}

func (uc *SearchBookingUseCase) Execute(ctx context.Context, input SearchBookingInput) ([]domain.Booking, error) {
	bookingID := strings.TrimSpace(input.BookingID)
	switch {
	case bookingID != "":
		return uc.searchByIdentifier(ctx, bookingID)
	case input.TravelDateStart != "" || input.TravelDateEnd != "":
		return uc.searchByDateRange(ctx, input.TravelDateStart, input.TravelDateEnd)
	default:
		return nil, ErrMissingSearchParams
	}
}

// searchByIdentifier fans the identifier across every lookup the upstream
// offers: direct id, reseller reference and free text. Strategies are
// independent; one failing does not abort its siblings.
func (uc *SearchBookingUseCase) searchByIdentifier(ctx context.Context, bookingID string) ([]domain.Booking, error) {
	strategies := []struct {
		name string
		call func(context.Context) (any, error)
	}{
		{"direct", func(ctx context.Context) (any, error) { return uc.API.FetchBooking(ctx, bookingID) }},
		{"reference", func(ctx context.Context) (any, error) { return uc.API.SearchBookingsByReference(ctx, bookingID) }},
		{"text", func(ctx context.Context) (any, error) { return uc.API.SearchBookingsByText(ctx, bookingID) }},
	}

	results := fanout.Map(ctx, uc.Limit, len(strategies), func(ctx context.Context, i int) (any, error) {
		return strategies[i].call(ctx)
	})

	merged := make([]map[string]any, 0)
	failures := 0
	for i, result := range results {
		if result.Err != nil {
			if rezdy.IsNotFound(result.Err) {
				continue
			}
			failures++
			slog.Warn("booking lookup strategy failed",
				slog.String("strategy", strategies[i].name),
				slog.Any("error", result.Err))
			continue
		}
		merged = append(merged, domain.ExtractBookings(result.Value)...)
	}

	bookings := dedupeAndProject(merged)
	if len(bookings) == 0 && failures > 0 {
		return nil, ErrSearchExhausted
	}
	return bookings, nil
}

// searchByDateRange is a single lookup: not-found means empty, anything else
// propagates.
func (uc *SearchBookingUseCase) searchByDateRange(ctx context.Context, start, end string) ([]domain.Booking, error) {
	payload, err := uc.API.SearchBookingsByDateRange(ctx, start, end)
	if err != nil {
		if rezdy.IsNotFound(err) {
			return []domain.Booking{}, nil
		}
		return nil, fmt.Errorf("booking date search: %w", err)
	}
	return dedupeAndProject(domain.ExtractBookings(payload)), nil
}

// dedupeAndProject keeps the first record per order identifier, discarding
// records without one, then projects each (dropping any that project to nil).
func dedupeAndProject(records []map[string]any) []domain.Booking {
	seen := make(map[string]struct{}, len(records))
	bookings := make([]domain.Booking, 0, len(records))
	for _, record := range records {
		booking := domain.ProjectBooking(record)
		if booking == nil {
			continue
		}
		if _, duplicate := seen[booking.ID]; duplicate {
			continue
		}
		seen[booking.ID] = struct{}{}
		bookings = append(bookings, *booking)
	}
	return bookings
}
