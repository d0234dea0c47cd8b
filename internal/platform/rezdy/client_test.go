package rezdy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendsAPIKeyHeader(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("apiKey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", 0, nil)
	if _, err := client.FetchProducts(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header != "secret-key" {
		t.Fatalf("expected apiKey header, got %q", header)
	}
}

func TestClientClassifiesBusinessErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"requestStatus":{"success":false,"error":{"errorCode":"API_LIMIT","errorMessage":"quota exceeded"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 0, nil)
	_, err := client.FetchProducts(context.Background(), "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Code != "API_LIMIT" || apiErr.Message != "quota exceeded" {
		t.Fatalf("unexpected error detail %+v", apiErr)
	}
}

func TestClientNotFoundSentinelFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"requestStatus":{"success":false,"error":{"errorCode":"ORDER_NOT_FOUND","errorMessage":"No order found"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 0, nil)
	_, err := client.FetchBooking(context.Background(), "R404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientNotFoundFromStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 0, nil)
	_, err := client.FetchBooking(context.Background(), "R404")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found classification, got %v", err)
	}
}

func TestClientUnclassifiedCallsReturnRawPayload(t *testing.T) {
	// Availability endpoints hand back failure envelopes untouched; the
	// domain extractor decides what they mean.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"requestStatus":{"success":false},"sessions":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 0, nil)
	payload, err := client.FetchSessions(context.Background(), "P1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload == nil {
		t.Fatal("expected raw payload")
	}
}

func TestClientNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 0, nil)
	_, err := client.FetchProducts(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if IsNotFound(err) {
		t.Fatalf("expected a generic upstream error, got not-found: %v", err)
	}
}

func TestClientQueryParameters(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sessions":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 0, nil)
	if _, err := client.FetchSessions(context.Background(), "P1", "2026-09-01", "2026-09-30"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "endTimeLocal=2026-09-30&productCode=P1&startTimeLocal=2026-09-01"
	if query != expected {
		t.Fatalf("expected query %q, got %q", expected, query)
	}
}

func TestClientEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 0, nil)
	payload, err := client.CancelBooking(context.Background(), "R1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload, got %v", payload)
	}
}
