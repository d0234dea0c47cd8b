package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"rezdyLink/internal/modules/catalog/application/port"
	"rezdyLink/internal/modules/catalog/domain"
)

// SearchProductsInput selects either the whole catalogue or one product, with
// optional raw-field post-filters.
type SearchProductsInput struct {
	ProductID string
	Filters   map[string]any
}

// SearchProductsUseCase fetches and projects the supplier catalogue.
type SearchProductsUseCase struct {
	API port.ProductAPI
}

func NewSearchProductsUseCase(api port.ProductAPI) *SearchProductsUseCase {
	return &SearchProductsUseCase{API: api}
}

func (uc *SearchProductsUseCase) Execute(ctx context.Context, input SearchProductsInput) ([]domain.Product, error) {
	payload, err := uc.API.FetchProducts(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product fetch: %w", err)
	}
	records := domain.ExtractProducts(payload)
	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		if len(input.Filters) > 0 && !domain.MatchesFilters(record, input.Filters) {
			continue
		}
		if product := domain.ProjectProduct(record); product != nil {
			products = append(products, *product)
		}
	}
	return products, nil
}

// ValidateTokenUseCase probes the catalogue to check credentials. It is the
// one operation that swallows every failure: any error, upstream or local,
// collapses to false.
type ValidateTokenUseCase struct {
	API port.ProductAPI
}

func NewValidateTokenUseCase(api port.ProductAPI) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{API: api}
}

func (uc *ValidateTokenUseCase) Execute(ctx context.Context) bool {
	payload, err := uc.API.FetchProducts(ctx, "")
	if err != nil {
		slog.Debug("token validation probe failed", slog.Any("error", err))
		return false
	}
	return len(domain.ExtractProducts(payload)) > 0
}
