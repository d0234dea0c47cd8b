package rezdy

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultEndpoint is the production Rezdy API base URL used when neither the
// caller token nor the plugin configuration provides one.
const DefaultEndpoint = "https://api.rezdy.com/v1"

// ValidateEndpoint resolves the upstream base URL for one call. An absent or
// empty value falls back to fallback (or DefaultEndpoint when fallback is
// empty too). Anything else must be a string parsing as an absolute URL;
// non-string values and relative URLs fail with ErrInvalidEndpoint naming the
// offending input.
func ValidateEndpoint(value any, fallback string) (string, error) {
	if value == nil {
		return endpointOrDefault(fallback), nil
	}
	raw, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, value)
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return endpointOrDefault(fallback), nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidEndpoint, trimmed)
	}
	return strings.TrimRight(trimmed, "/"), nil
}

func endpointOrDefault(fallback string) string {
	if trimmed := strings.TrimSpace(fallback); trimmed != "" {
		return strings.TrimRight(trimmed, "/")
	}
	return DefaultEndpoint
}

func productsPath(id string) string {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return "/products/" + url.PathEscape(trimmed)
	}
	return "/products"
}

func pickupsPath(productCode string) string {
	return "/products/" + url.PathEscape(strings.TrimSpace(productCode)) + "/pickups"
}

func bookingPath(id string) string {
	return "/bookings/" + url.PathEscape(strings.TrimSpace(id))
}

func cancelPath(id string) string {
	return bookingPath(id) + "/cancel"
}
