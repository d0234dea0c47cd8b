package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rezdyLink/internal/modules/availability/application/port"
	"rezdyLink/internal/modules/availability/domain"
	"rezdyLink/internal/platform/rezdy"
	"rezdyLink/internal/shared/auth"
	"rezdyLink/internal/shared/fanout"
)

var (
	// ErrLengthMismatch is raised when the parallel id/unit arrays disagree.
	ErrLengthMismatch = errors.New("productIds, optionIds and units must have the same length")
	// ErrMissingProductOption is raised when any product or option id is blank.
	ErrMissingProductOption = errors.New("product and option ids are required")
)

// SearchInput carries the parallel arrays of an availability search. The
// entry at index i of each slice describes the same requested combination;
// array position is the only correlation key, so callers must keep the
// slices aligned.
type SearchInput struct {
	ProductIDs     []string
	OptionIDs      []string
	Units          [][]domain.UnitQuantity
	LocalDateStart string
	LocalDateEnd   string
}

func (in SearchInput) validate() error {
	if len(in.ProductIDs) != len(in.OptionIDs) || len(in.ProductIDs) != len(in.Units) {
		return ErrLengthMismatch
	}
	for i := range in.ProductIDs {
		if strings.TrimSpace(in.ProductIDs[i]) == "" || strings.TrimSpace(in.OptionIDs[i]) == "" {
			return ErrMissingProductOption
		}
	}
	return nil
}

// SearchAvailabilityUseCase fetches per-product sessions with bounded
// concurrency, drops unsellable sessions, and projects the rest, minting a
// signed availability key per session when keys are requested.
type SearchAvailabilityUseCase struct {
	API   port.SessionAPI
	Codec *auth.KeyCodec
	Limit int
}

func NewSearchAvailabilityUseCase(api port.SessionAPI, codec *auth.KeyCodec, limit int) *SearchAvailabilityUseCase {
	if limit <= 0 {
		limit = fanout.DefaultLimit
	}
	return &SearchAvailabilityUseCase{API: api, Codec: codec, Limit: limit}
}

// Search runs the availability search that mints keys. The signing secret is
// required up front, before any upstream call.
func (uc *SearchAvailabilityUseCase) Search(ctx context.Context, input SearchInput) ([]domain.Availability, error) {
	if !uc.Codec.Configured() {
		return nil, auth.ErrSecretNotConfigured
	}
	return uc.run(ctx, input, true)
}

// Calendar runs the read-only availability preview. It never mints keys and
// therefore works without a signing secret.
func (uc *SearchAvailabilityUseCase) Calendar(ctx context.Context, input SearchInput) ([]domain.Availability, error) {
	return uc.run(ctx, input, false)
}

func (uc *SearchAvailabilityUseCase) run(ctx context.Context, input SearchInput, mintKeys bool) ([]domain.Availability, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	pickups, err := uc.fetchPickups(ctx, input.ProductIDs)
	if err != nil {
		return nil, err
	}

	results := fanout.Map(ctx, uc.Limit, len(input.ProductIDs), func(ctx context.Context, i int) (any, error) {
		return uc.API.FetchSessions(ctx, input.ProductIDs[i], input.LocalDateStart, input.LocalDateEnd)
	})

	output := make([]domain.Availability, 0, len(results))
	for i, result := range results {
		if result.Err != nil {
			return nil, fmt.Errorf("availability fetch for %s: %w", input.ProductIDs[i], result.Err)
		}
		productID := input.ProductIDs[i]
		optionID := input.OptionIDs[i]
		units := input.Units[i]
		for _, record := range domain.ExtractSessions(result.Value, productID) {
			session := domain.ParseSession(record, productID, optionID)
			session.Pickups = pickups[productID]
			if !session.Sellable() {
				continue
			}
			projected := domain.Availability{
				ProductID:      session.ProductID,
				OptionID:       session.OptionID,
				StartTimeLocal: session.StartTimeLocal,
				EndTimeLocal:   session.EndTimeLocal,
				AllDay:         session.AllDay,
				Status:         session.Status,
				Vacancies:      session.Seats,
				PriceOptions:   session.PriceOptions,
				Pickups:        session.Pickups,
			}
			line, total := domain.ResolveSelection(productID, session.StartTimeLocal, units, session.PriceOptions)
			projected.TotalAmount = total
			if mintKeys {
				key, err := uc.Codec.Encode(auth.AvailabilityKey{
					Items:       []auth.BookingLine{line},
					TotalAmount: total,
				})
				if err != nil {
					return nil, err
				}
				projected.Key = key
			}
			output = append(output, projected)
		}
	}
	return output, nil
}

// fetchPickups loads each product's pickup points once per search rather
// than once per session. A not-found response simply means the product has
// no pickups configured.
func (uc *SearchAvailabilityUseCase) fetchPickups(ctx context.Context, productIDs []string) (map[string][]domain.PickupPoint, error) {
	unique := make([]string, 0, len(productIDs))
	seen := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	results := fanout.Map(ctx, uc.Limit, len(unique), func(ctx context.Context, i int) (any, error) {
		return uc.API.FetchPickups(ctx, unique[i])
	})

	pickups := make(map[string][]domain.PickupPoint, len(unique))
	for i, result := range results {
		if result.Err != nil {
			if rezdy.IsNotFound(result.Err) {
				continue
			}
			return nil, fmt.Errorf("pickup fetch for %s: %w", unique[i], result.Err)
		}
		records := domain.ExtractSessions(result.Value, unique[i])
		entries := make([]any, 0, len(records))
		for _, record := range records {
			entries = append(entries, any(record))
		}
		points := domain.ParsePickupPoints(entries)
		if len(points) > 0 {
			pickups[unique[i]] = points
		}
	}
	slog.Debug("pickup points resolved", slog.Int("products", len(unique)), slog.Int("withPickups", len(pickups)))
	return pickups, nil
}
