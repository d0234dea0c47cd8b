package domain

import "testing"

func TestProjectProduct(t *testing.T) {
	product := ProjectProduct(map[string]any{
		"productCode":      "P1",
		"id":               "ignored",
		"name":             "Harbour Cruise",
		"shortDescription": "Two hours on the water",
		"productType":      "TOUR",
		"currency":         "AUD",
	})
	if product == nil {
		t.Fatal("expected a product")
	}
	if product.ID != "P1" || product.Name != "Harbour Cruise" {
		t.Fatalf("unexpected projection %+v", product)
	}
	if product.Description != "Two hours on the water" || product.ProductType != "TOUR" || product.Currency != "AUD" {
		t.Fatalf("unexpected projection %+v", product)
	}
}

func TestProjectProductAliases(t *testing.T) {
	product := ProjectProduct(map[string]any{
		"id":          "42",
		"title":       "Walking Tour",
		"description": "Old town",
	})
	if product == nil || product.ID != "42" || product.Name != "Walking Tour" || product.Description != "Old town" {
		t.Fatalf("unexpected projection %+v", product)
	}
}

func TestProjectProductWithoutIdentifier(t *testing.T) {
	if product := ProjectProduct(map[string]any{"name": "anonymous"}); product != nil {
		t.Fatalf("expected nil, got %+v", product)
	}
	if product := ProjectProduct(nil); product != nil {
		t.Fatalf("expected nil for nil record, got %+v", product)
	}
}

func TestMatchesFilters(t *testing.T) {
	record := map[string]any{
		"productCode": "TOUR123",
		"productType": "DAYTOUR",
		"maxCapacity": 20.0,
	}

	cases := []struct {
		name     string
		filters  map[string]any
		expected bool
	}{
		{name: "exact match", filters: map[string]any{"productType": "DAYTOUR"}, expected: true},
		{name: "wildcard match", filters: map[string]any{"productCode": "TOUR*"}, expected: true},
		{name: "wildcard miss", filters: map[string]any{"productCode": "CRUISE*"}, expected: false},
		{name: "non-string filter accepted", filters: map[string]any{"maxCapacity": 20.0}, expected: true},
		{name: "missing field", filters: map[string]any{"supplier": "acme"}, expected: false},
		{name: "no filters", filters: nil, expected: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesFilters(record, tc.filters); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestExtractProducts(t *testing.T) {
	cases := []struct {
		name     string
		payload  any
		expected int
	}{
		{
			name: "products array",
			payload: map[string]any{
				"requestStatus": map[string]any{"success": true},
				"products":      []any{map[string]any{"id": "1"}, map[string]any{"id": "2"}},
			},
			expected: 2,
		},
		{
			name:     "data array",
			payload:  map[string]any{"data": []any{map[string]any{"id": "1"}}},
			expected: 1,
		},
		{
			name:     "single product unwrap",
			payload:  map[string]any{"product": map[string]any{"id": "1"}},
			expected: 1,
		},
		{
			name:     "bare object becomes single record",
			payload:  map[string]any{"id": "1", "name": "Tour"},
			expected: 1,
		},
		{
			name: "wrapper without arrays yields empty",
			payload: map[string]any{
				"requestStatus": map[string]any{"success": true},
			},
			expected: 0,
		},
		{
			name:     "top level array",
			payload:  []any{map[string]any{"id": "1"}, "noise"},
			expected: 1,
		},
		{name: "nil payload", payload: nil, expected: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractProducts(tc.payload); len(got) != tc.expected {
				t.Fatalf("expected %d records, got %d", tc.expected, len(got))
			}
		})
	}
}
