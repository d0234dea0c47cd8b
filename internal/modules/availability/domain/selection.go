package domain

import (
	"strings"

	"rezdyLink/internal/shared/auth"
)

// fallbackOptionLabel is used when a requested unit cannot be resolved to
// any price option label. Upstream accepts it for single-fare products.
const fallbackOptionLabel = "Adult"

// UnitQuantity is a caller-supplied unit request: which fare class and how
// many seats. Label is optional display text used over resolved labels.
type UnitQuantity struct {
	UnitID   string `json:"unitId"`
	Quantity int    `json:"quantity"`
	Label    string `json:"label,omitempty"`
}

// matchOption resolves a requested unit against the session's price options:
// case-insensitive identifier equality first, label-based fallback when the
// identifier lookup fails.
func matchOption(unit UnitQuantity, options []PriceOption) *PriceOption {
	for i := range options {
		if strings.EqualFold(options[i].ID, unit.UnitID) {
			return &options[i]
		}
	}
	for i := range options {
		if strings.EqualFold(options[i].Label, unit.UnitID) {
			return &options[i]
		}
	}
	return nil
}

// resolveLabel picks the display label for a requested unit: the unit's own
// label, then the matched option's, then a case-insensitive label match
// across all options, then the literal fallback.
func resolveLabel(unit UnitQuantity, matched *PriceOption, options []PriceOption) string {
	if unit.Label != "" {
		return unit.Label
	}
	if matched != nil && matched.Label != "" {
		return matched.Label
	}
	for _, option := range options {
		if strings.EqualFold(option.Label, unit.UnitID) && option.Label != "" {
			return option.Label
		}
	}
	return fallbackOptionLabel
}

// ResolveSelection prices a set of requested units against a session's price
// options and produces the booking line carried inside the availability key.
// Unmatched units contribute zero to the total; zero-quantity units are
// omitted from the line.
func ResolveSelection(productCode, startTimeLocal string, units []UnitQuantity, options []PriceOption) (auth.BookingLine, float64) {
	line := auth.BookingLine{ProductCode: productCode, StartTimeLocal: startTimeLocal}
	total := 0.0
	for _, unit := range units {
		matched := matchOption(unit, options)
		if matched != nil {
			total += matched.Price * float64(unit.Quantity)
		}
		if unit.Quantity <= 0 {
			continue
		}
		line.Quantities = append(line.Quantities, auth.KeyQuantity{
			OptionLabel: resolveLabel(unit, matched, options),
			Value:       unit.Quantity,
		})
	}
	return line, total
}

// Availability is the canonical projected record returned to callers. Key is
// empty on calendar previews, which never mint keys.
type Availability struct {
	ProductID      string        `json:"productId"`
	OptionID       string        `json:"optionId"`
	StartTimeLocal string        `json:"dateTimeStart"`
	EndTimeLocal   string        `json:"dateTimeEnd,omitempty"`
	AllDay         bool          `json:"allDay,omitempty"`
	Status         SessionStatus `json:"status"`
	Vacancies      int           `json:"vacancies"`
	TotalAmount    float64       `json:"totalAmount"`
	Key            string        `json:"key,omitempty"`
	PriceOptions   []PriceOption `json:"priceOptions,omitempty"`
	Pickups        []PickupPoint `json:"pickupAvailable,omitempty"`
}
