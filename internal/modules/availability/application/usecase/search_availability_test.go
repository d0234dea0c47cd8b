package usecase

import (
	"context"
	"errors"
	"testing"

	"rezdyLink/internal/modules/availability/domain"
	"rezdyLink/internal/platform/rezdy"
	"rezdyLink/internal/shared/auth"
)

type fakeSessionAPI struct {
	sessions    map[string]any
	sessionErr  map[string]error
	pickups     map[string]any
	pickupErr   map[string]error
	pickupCalls map[string]int
}

func (f *fakeSessionAPI) FetchSessions(_ context.Context, productCode, _, _ string) (any, error) {
	if err := f.sessionErr[productCode]; err != nil {
		return nil, err
	}
	return f.sessions[productCode], nil
}

func (f *fakeSessionAPI) FetchPickups(_ context.Context, productCode string) (any, error) {
	if f.pickupCalls == nil {
		f.pickupCalls = make(map[string]int)
	}
	f.pickupCalls[productCode]++
	if err := f.pickupErr[productCode]; err != nil {
		return nil, err
	}
	if payload, ok := f.pickups[productCode]; ok {
		return payload, nil
	}
	return nil, rezdy.ErrNotFound
}

func sessionPayload(sessions ...map[string]any) any {
	entries := make([]any, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, session)
	}
	return map[string]any{
		"requestStatus": map[string]any{"success": true},
		"sessions":      entries,
	}
}

func TestSearchFiltersUnsellableSessions(t *testing.T) {
	api := &fakeSessionAPI{
		sessions: map[string]any{
			"P1": sessionPayload(
				map[string]any{
					"startTimeLocal": "2026-09-01T09:00:00",
					"seatsAvailable": 4.0,
					"priceOptions":   []any{map[string]any{"id": "O1", "label": "Adult", "price": 30.0}},
				},
				map[string]any{
					"startTimeLocal": "2026-09-01T14:00:00",
					"status":         "SOLD_OUT",
					"seatsAvailable": 0.0,
				},
				map[string]any{
					"seatsAvailable": 9.0,
				},
			),
		},
	}
	uc := NewSearchAvailabilityUseCase(api, auth.NewKeyCodec("secret"), 0)

	results, err := uc.Search(context.Background(), SearchInput{
		ProductIDs: []string{"P1"},
		OptionIDs:  []string{"O1"},
		Units:      [][]domain.UnitQuantity{{{UnitID: "O1", Quantity: 2}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 sellable session, got %d", len(results))
	}
	record := results[0]
	if record.StartTimeLocal != "2026-09-01T09:00:00" {
		t.Fatalf("unexpected session survived: %+v", record)
	}
	if record.Vacancies != 4 {
		t.Fatalf("expected 4 vacancies, got %d", record.Vacancies)
	}
	if record.TotalAmount != 60 {
		t.Fatalf("expected total 60, got %v", record.TotalAmount)
	}
	if record.Key == "" {
		t.Fatal("expected a minted availability key")
	}

	decoded, err := auth.NewKeyCodec("secret").Decode(record.Key)
	if err != nil {
		t.Fatalf("decode minted key: %v", err)
	}
	if decoded.TotalAmount != 60 || len(decoded.Items) != 1 || decoded.Items[0].ProductCode != "P1" {
		t.Fatalf("unexpected key payload %+v", decoded)
	}
}

func TestSearchRequiresSecretBeforeUpstream(t *testing.T) {
	api := &fakeSessionAPI{sessionErr: map[string]error{"P1": errors.New("must not be reached")}}
	uc := NewSearchAvailabilityUseCase(api, auth.NewKeyCodec(""), 0)

	_, err := uc.Search(context.Background(), SearchInput{
		ProductIDs: []string{"P1"},
		OptionIDs:  []string{"O1"},
		Units:      [][]domain.UnitQuantity{{}},
	})
	if !errors.Is(err, auth.ErrSecretNotConfigured) {
		t.Fatalf("expected ErrSecretNotConfigured, got %v", err)
	}
}

func TestCalendarMintsNoKeysAndNeedsNoSecret(t *testing.T) {
	api := &fakeSessionAPI{
		sessions: map[string]any{
			"P1": sessionPayload(map[string]any{
				"startTimeLocal": "2026-09-01T09:00:00",
				"seatsAvailable": 2.0,
			}),
		},
	}
	uc := NewSearchAvailabilityUseCase(api, auth.NewKeyCodec(""), 0)

	results, err := uc.Calendar(context.Background(), SearchInput{
		ProductIDs: []string{"P1"},
		OptionIDs:  []string{"O1"},
		Units:      [][]domain.UnitQuantity{{}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 record, got %d", len(results))
	}
	if results[0].Key != "" {
		t.Fatalf("expected no key on calendar records, got %q", results[0].Key)
	}
}

func TestSearchValidation(t *testing.T) {
	uc := NewSearchAvailabilityUseCase(&fakeSessionAPI{}, auth.NewKeyCodec("secret"), 0)

	_, err := uc.Search(context.Background(), SearchInput{
		ProductIDs: []string{"P1", "P2"},
		OptionIDs:  []string{"O1"},
		Units:      [][]domain.UnitQuantity{{}, {}},
	})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	_, err = uc.Search(context.Background(), SearchInput{
		ProductIDs: []string{"P1"},
		OptionIDs:  []string{"  "},
		Units:      [][]domain.UnitQuantity{{}},
	})
	if !errors.Is(err, ErrMissingProductOption) {
		t.Fatalf("expected ErrMissingProductOption, got %v", err)
	}
}

func TestSearchPropagatesSessionErrors(t *testing.T) {
	upstream := errors.New("upstream down")
	api := &fakeSessionAPI{sessionErr: map[string]error{"P1": upstream}}
	uc := NewSearchAvailabilityUseCase(api, auth.NewKeyCodec("secret"), 0)

	_, err := uc.Search(context.Background(), SearchInput{
		ProductIDs: []string{"P1"},
		OptionIDs:  []string{"O1"},
		Units:      [][]domain.UnitQuantity{{}},
	})
	if !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSearchFetchesPickupsOncePerProduct(t *testing.T) {
	payload := sessionPayload(map[string]any{
		"startTimeLocal": "2026-09-01T09:00:00",
		"seatsAvailable": 3.0,
	})
	api := &fakeSessionAPI{
		sessions: map[string]any{"P1": payload},
		pickups: map[string]any{
			"P1": []any{map[string]any{"locationName": "Harbour"}},
		},
	}
	uc := NewSearchAvailabilityUseCase(api, auth.NewKeyCodec("secret"), 0)

	results, err := uc.Search(context.Background(), SearchInput{
		ProductIDs: []string{"P1", "P1"},
		OptionIDs:  []string{"O1", "O2"},
		Units:      [][]domain.UnitQuantity{{}, {}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.pickupCalls["P1"] != 1 {
		t.Fatalf("expected 1 pickup fetch, got %d", api.pickupCalls["P1"])
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 records, got %d", len(results))
	}
	for _, record := range results {
		if len(record.Pickups) != 1 || record.Pickups[0].Name != "Harbour" {
			t.Fatalf("expected pickup on record, got %+v", record.Pickups)
		}
	}
}

func TestSearchToleratesMissingPickups(t *testing.T) {
	api := &fakeSessionAPI{
		sessions: map[string]any{
			"P1": sessionPayload(map[string]any{
				"startTimeLocal": "2026-09-01T09:00:00",
				"seatsAvailable": 1.0,
			}),
		},
	}
	uc := NewSearchAvailabilityUseCase(api, auth.NewKeyCodec("secret"), 0)

	results, err := uc.Search(context.Background(), SearchInput{
		ProductIDs: []string{"P1"},
		OptionIDs:  []string{"O1"},
		Units:      [][]domain.UnitQuantity{{}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Pickups != nil {
		t.Fatalf("expected record without pickups, got %+v", results)
	}
}

func TestSearchPreservesRequestOrder(t *testing.T) {
	api := &fakeSessionAPI{
		sessions: map[string]any{
			"P1": sessionPayload(map[string]any{"startTimeLocal": "a", "seatsAvailable": 1.0}),
			"P2": sessionPayload(map[string]any{"startTimeLocal": "b", "seatsAvailable": 1.0}),
			"P3": sessionPayload(map[string]any{"startTimeLocal": "c", "seatsAvailable": 1.0}),
		},
	}
	uc := NewSearchAvailabilityUseCase(api, auth.NewKeyCodec("secret"), 2)

	results, err := uc.Search(context.Background(), SearchInput{
		ProductIDs: []string{"P1", "P2", "P3"},
		OptionIDs:  []string{"O1", "O1", "O1"},
		Units:      [][]domain.UnitQuantity{{}, {}, {}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 records, got %d", len(results))
	}
	for i, expected := range []string{"P1", "P2", "P3"} {
		if results[i].ProductID != expected {
			t.Fatalf("expected %q at index %d, got %q", expected, i, results[i].ProductID)
		}
	}
}
