package domain

import (
	"rezdyLink/internal/shared/normalization"
	"rezdyLink/internal/shared/wildcard"
)

// Upstream field spellings for the product attributes, first match wins.
var (
	productIDAliases          = []string{"productCode", "id", "code"}
	productNameAliases        = []string{"name", "title"}
	productDescriptionAliases = []string{"shortDescription", "description"}
)

// Product is the canonical product record returned to callers.
type Product struct {
	ID          string `json:"productId"`
	Name        string `json:"productName"`
	Description string `json:"description,omitempty"`
	ProductType string `json:"productType,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// ProjectProduct maps one raw upstream product onto the canonical shape.
// Records without any identifier project to nil and are dropped.
func ProjectProduct(record map[string]any) *Product {
	if record == nil {
		return nil
	}
	id := normalization.FirstString(record, productIDAliases)
	if id == "" {
		return nil
	}
	return &Product{
		ID:          id,
		Name:        normalization.FirstString(record, productNameAliases),
		Description: normalization.FirstString(record, productDescriptionAliases),
		ProductType: normalization.AsString(record["productType"]),
		Currency:    normalization.AsString(record["currency"]),
	}
}

// MatchesFilters applies caller-supplied post-filters to a raw product
// record. String-valued filters run wildcard matching against the record's
// field; any other value type is accepted unconditionally.
func MatchesFilters(record map[string]any, filters map[string]any) bool {
	for field, want := range filters {
		pattern, ok := want.(string)
		if !ok {
			continue
		}
		if !wildcard.Match(pattern, normalization.AsString(record[field])) {
			return false
		}
	}
	return true
}
