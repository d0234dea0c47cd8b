package port

import "context"

// ProductAPI is the slice of the upstream client the catalog use cases need.
type ProductAPI interface {
	// FetchProducts lists the catalogue; a non-empty productID scopes the
	// call to one product.
	FetchProducts(ctx context.Context, productID string) (any, error)
}
