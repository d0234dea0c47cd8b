// Package plugin exposes the connector facade consumed by the hosting
// platform: token validation, product search, availability search and
// calendar, booking creation, search and cancellation, and the (empty)
// quote search. Every operation is stateless end-to-end; the only state
// crossing calls is the signed availability key held by the caller.
package plugin

import (
	"context"
	"net/http"
	"time"

	availabilityuc "rezdyLink/internal/modules/availability/application/usecase"
	availability "rezdyLink/internal/modules/availability/domain"
	cataloguc "rezdyLink/internal/modules/catalog/application/usecase"
	catalog "rezdyLink/internal/modules/catalog/domain"
	bookingsport "rezdyLink/internal/modules/bookings/application/port"
	bookingsuc "rezdyLink/internal/modules/bookings/application/usecase"
	bookings "rezdyLink/internal/modules/bookings/domain"
	"rezdyLink/internal/platform/rezdy"
	"rezdyLink/internal/shared/auth"
	"rezdyLink/internal/shared/fanout"
)

// Token is the caller-supplied credential bundle, passed per call and never
// persisted. Endpoint may arrive as any JSON value; non-string non-empty
// values fail endpoint validation.
type Token struct {
	Endpoint   any    `json:"endpoint,omitempty"`
	APIKey     string `json:"apiKey"`
	ResellerID string `json:"resellerId,omitempty"`
}

// Config carries the plugin-level settings shared by all calls.
type Config struct {
	// Endpoint is the default upstream base URL when the token has none.
	Endpoint string
	// KeySecret signs availability keys. SearchAvailability refuses to run
	// without it; AvailabilityCalendar does not need it.
	KeySecret string
	// Timeout bounds each upstream HTTP call.
	Timeout time.Duration
	// Concurrency caps in-flight upstream calls for multi-request
	// operations.
	Concurrency int
	// Events receives booking lifecycle notifications; nil disables them.
	Events bookingsport.EventSink
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Plugin is the connector facade. It owns configuration and builds one
// upstream client per call from the resolved endpoint and token; there is no
// shared mutable state between operations.
type Plugin struct {
	endpoint    string
	codec       *auth.KeyCodec
	timeout     time.Duration
	concurrency int
	events      bookingsport.EventSink
	httpClient  *http.Client
}

func New(cfg Config) *Plugin {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = fanout.DefaultLimit
	}
	return &Plugin{
		endpoint:    cfg.Endpoint,
		codec:       auth.NewKeyCodec(cfg.KeySecret),
		timeout:     cfg.Timeout,
		concurrency: concurrency,
		events:      cfg.Events,
		httpClient:  cfg.HTTPClient,
	}
}

// client resolves the endpoint for one call and builds the upstream client.
func (p *Plugin) client(token Token) (*rezdy.Client, error) {
	endpoint, err := rezdy.ValidateEndpoint(token.Endpoint, p.endpoint)
	if err != nil {
		return nil, err
	}
	return rezdy.NewClient(endpoint, token.APIKey, p.timeout, p.httpClient), nil
}

// ValidateToken probes the product listing. Any failure collapses to false;
// no error ever surfaces from this operation.
func (p *Plugin) ValidateToken(ctx context.Context, token Token) bool {
	client, err := p.client(token)
	if err != nil {
		return false
	}
	return cataloguc.NewValidateTokenUseCase(client).Execute(ctx)
}

// SearchProductsPayload selects products and optional raw-field filters.
type SearchProductsPayload struct {
	ProductID string         `json:"productId,omitempty"`
	Filters   map[string]any `json:"filters,omitempty"`
}

// ProductsResult wraps the projected product list.
type ProductsResult struct {
	Products []catalog.Product `json:"products"`
}

func (p *Plugin) SearchProducts(ctx context.Context, token Token, payload SearchProductsPayload) (*ProductsResult, error) {
	client, err := p.client(token)
	if err != nil {
		return nil, err
	}
	products, err := cataloguc.NewSearchProductsUseCase(client).Execute(ctx, cataloguc.SearchProductsInput{
		ProductID: payload.ProductID,
		Filters:   payload.Filters,
	})
	if err != nil {
		return nil, err
	}
	return &ProductsResult{Products: products}, nil
}

// AvailabilityPayload carries the parallel arrays of an availability search.
type AvailabilityPayload struct {
	ProductIDs     []string                      `json:"productIds"`
	OptionIDs      []string                      `json:"optionIds"`
	Units          [][]availability.UnitQuantity `json:"units"`
	LocalDateStart string                        `json:"localDateStart,omitempty"`
	LocalDateEnd   string                        `json:"localDateEnd,omitempty"`
}

// AvailabilityResult wraps projected availability records.
type AvailabilityResult struct {
	Availability []availability.Availability `json:"availability"`
}

func (p *Plugin) SearchAvailability(ctx context.Context, token Token, payload AvailabilityPayload) (*AvailabilityResult, error) {
	// The signing secret is checked before any endpoint or upstream work.
	if !p.codec.Configured() {
		return nil, auth.ErrSecretNotConfigured
	}
	client, err := p.client(token)
	if err != nil {
		return nil, err
	}
	uc := availabilityuc.NewSearchAvailabilityUseCase(client, p.codec, p.concurrency)
	records, err := uc.Search(ctx, searchInput(payload))
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{Availability: records}, nil
}

func (p *Plugin) AvailabilityCalendar(ctx context.Context, token Token, payload AvailabilityPayload) (*AvailabilityResult, error) {
	client, err := p.client(token)
	if err != nil {
		return nil, err
	}
	uc := availabilityuc.NewSearchAvailabilityUseCase(client, p.codec, p.concurrency)
	records, err := uc.Calendar(ctx, searchInput(payload))
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{Availability: records}, nil
}

func searchInput(payload AvailabilityPayload) availabilityuc.SearchInput {
	return availabilityuc.SearchInput{
		ProductIDs:     payload.ProductIDs,
		OptionIDs:      payload.OptionIDs,
		Units:          payload.Units,
		LocalDateStart: payload.LocalDateStart,
		LocalDateEnd:   payload.LocalDateEnd,
	}
}

// CreateBookingPayload redeems an availability key into an order.
type CreateBookingPayload struct {
	AvailabilityKey string           `json:"availabilityKey"`
	Holder          bookings.Holder  `json:"holder"`
	Notes           string           `json:"notes,omitempty"`
	Reference       string           `json:"reference,omitempty"`
	PickupPoint     string           `json:"pickupPoint,omitempty"`
	Participants    []map[string]any `json:"participants,omitempty"`
	Payments        []map[string]any `json:"payments,omitempty"`
	CreatedBy       string           `json:"createdBy,omitempty"`
}

// BookingResult wraps one projected booking.
type BookingResult struct {
	Booking *bookings.Booking `json:"booking"`
}

func (p *Plugin) CreateBooking(ctx context.Context, token Token, payload CreateBookingPayload) (*BookingResult, error) {
	client, err := p.client(token)
	if err != nil {
		return nil, err
	}
	uc := bookingsuc.NewCreateBookingUseCase(client, p.codec, p.events)
	booking, err := uc.Execute(ctx, bookingsuc.CreateBookingInput{
		AvailabilityKey: payload.AvailabilityKey,
		Details: bookings.CreateInput{
			Holder: bookings.HolderInput{
				Name:    payload.Holder.Name,
				Surname: payload.Holder.Surname,
				Email:   payload.Holder.Email,
				Phone:   payload.Holder.Phone,
				Country: payload.Holder.Country,
			},
			Notes:        payload.Notes,
			Reference:    payload.Reference,
			PickupPoint:  payload.PickupPoint,
			Participants: payload.Participants,
			Payments:     payload.Payments,
			ResellerID:   token.ResellerID,
			CreatedBy:    payload.CreatedBy,
		},
	})
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: booking}, nil
}

// CancelBookingPayload accepts either identifier spelling.
type CancelBookingPayload struct {
	BookingID         string `json:"bookingId,omitempty"`
	SupplierBookingID string `json:"supplierBookingId,omitempty"`
}

// CancellationResult wraps the projected cancellation record.
type CancellationResult struct {
	Cancellation *bookings.Booking `json:"cancellation"`
}

func (p *Plugin) CancelBooking(ctx context.Context, token Token, payload CancelBookingPayload) (*CancellationResult, error) {
	client, err := p.client(token)
	if err != nil {
		return nil, err
	}
	id := payload.BookingID
	if id == "" {
		id = payload.SupplierBookingID
	}
	cancellation, err := bookingsuc.NewCancelBookingUseCase(client, p.events).Execute(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CancellationResult{Cancellation: cancellation}, nil
}

// SearchBookingPayload selects a booking search branch.
type SearchBookingPayload struct {
	BookingID       string `json:"bookingId,omitempty"`
	TravelDateStart string `json:"travelDateStart,omitempty"`
	TravelDateEnd   string `json:"travelDateEnd,omitempty"`
}

// BookingsResult wraps the deduplicated search results.
type BookingsResult struct {
	Bookings []bookings.Booking `json:"bookings"`
}

func (p *Plugin) SearchBooking(ctx context.Context, token Token, payload SearchBookingPayload) (*BookingsResult, error) {
	client, err := p.client(token)
	if err != nil {
		return nil, err
	}
	results, err := bookingsuc.NewSearchBookingUseCase(client, p.concurrency).Execute(ctx, bookingsuc.SearchBookingInput{
		BookingID:       payload.BookingID,
		TravelDateStart: payload.TravelDateStart,
		TravelDateEnd:   payload.TravelDateEnd,
	})
	if err != nil {
		return nil, err
	}
	return &BookingsResult{Bookings: results}, nil
}

// QuoteResult is always empty: quote search is not implemented by the
// upstream API, and this is the documented contract rather than a stub.
type QuoteResult struct {
	Quote []any `json:"quote"`
}

func (p *Plugin) SearchQuote(ctx context.Context, token Token) (*QuoteResult, error) {
	return &QuoteResult{Quote: []any{}}, nil
}
