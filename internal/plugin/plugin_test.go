package plugin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"rezdyLink/internal/modules/bookings/domain"
	"rezdyLink/internal/platform/rezdy"
	"rezdyLink/internal/shared/auth"
)

type countingSink struct {
	events []domain.Event
}

func (s *countingSink) PublishBookingEvent(_ context.Context, event domain.Event) {
	s.events = append(s.events, event)
}

func TestEventFanout(t *testing.T) {
	first := &countingSink{}
	second := &countingSink{}
	fan := NewEventFanout(first, nil, second)

	fan.PublishBookingEvent(context.Background(), domain.Event{OrderNumber: "R1"})

	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("expected both sinks to receive the event, got %d and %d", len(first.events), len(second.events))
	}

	var nilFan *EventFanout
	nilFan.PublishBookingEvent(context.Background(), domain.Event{OrderNumber: "R2"})
}

func TestSearchQuoteAlwaysEmpty(t *testing.T) {
	p := New(Config{})
	result, err := p.SearchQuote(context.Background(), Token{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || len(result.Quote) != 0 {
		t.Fatalf("expected empty quote result, got %+v", result)
	}
}

func TestSearchAvailabilityRequiresSecret(t *testing.T) {
	p := New(Config{Endpoint: "https://example.com"})
	_, err := p.SearchAvailability(context.Background(), Token{APIKey: "k"}, AvailabilityPayload{})
	if !errors.Is(err, auth.ErrSecretNotConfigured) {
		t.Fatalf("expected ErrSecretNotConfigured, got %v", err)
	}
}

func TestOperationsRejectInvalidEndpoint(t *testing.T) {
	p := New(Config{KeySecret: "s"})
	token := Token{APIKey: "k", Endpoint: 42.0}

	if _, err := p.SearchProducts(context.Background(), token, SearchProductsPayload{}); !errors.Is(err, rezdy.ErrInvalidEndpoint) {
		t.Fatalf("expected ErrInvalidEndpoint, got %v", err)
	}
	if valid := p.ValidateToken(context.Background(), token); valid {
		t.Fatal("expected invalid endpoint to fail token validation")
	}
}

func TestCancelBookingAcceptsEitherIdentifier(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"orderNumber":"R9","status":"CANCELLED"}`))
	}))
	defer server.Close()

	p := New(Config{Endpoint: server.URL})
	result, err := p.CancelBooking(context.Background(), Token{APIKey: "k"}, CancelBookingPayload{SupplierBookingID: "R9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/bookings/R9/cancel" {
		t.Fatalf("unexpected path %q", path)
	}
	if result.Cancellation == nil || result.Cancellation.ID != "R9" || result.Cancellation.Cancellable {
		t.Fatalf("unexpected cancellation %+v", result.Cancellation)
	}
}

func TestCredentialTemplate(t *testing.T) {
	fields := CredentialTemplate()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	byID := make(map[string]CredentialField, len(fields))
	for _, field := range fields {
		byID[field.ID] = field
	}

	apiKey, ok := byID["apiKey"]
	if !ok || !apiKey.Required {
		t.Fatalf("expected required apiKey field, got %+v", byID)
	}
	pattern, err := regexp.Compile(apiKey.Pattern)
	if err != nil {
		t.Fatalf("compile pattern: %v", err)
	}
	if !pattern.MatchString("0123456789abcdefABCDEF") {
		t.Fatal("expected hex string to match")
	}
	if pattern.MatchString("not-hex!") {
		t.Fatal("expected non-hex string to be rejected")
	}

	if _, ok := byID["resellerId"]; !ok {
		t.Fatalf("expected resellerId field, got %+v", byID)
	}
}
