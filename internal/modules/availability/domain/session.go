package domain

import (
	"strings"

	"rezdyLink/internal/shared/normalization"
)

// SessionStatus represents the sellability state of an availability session
// as exposed by the upstream API.
type SessionStatus string

const (
	SessionStatusUnknown   SessionStatus = ""
	SessionStatusAvailable SessionStatus = "AVAILABLE"
	SessionStatusFreesale  SessionStatus = "FREESALE"
	SessionStatusSoldOut   SessionStatus = "SOLD_OUT"
	SessionStatusClosed    SessionStatus = "CLOSED"
)

// NormalizeSessionStatus returns the canonical status for the given input.
// Unknown statuses are uppercased and returned as-is to avoid data loss.
func NormalizeSessionStatus(value any) SessionStatus {
	s, ok := value.(string)
	if !ok {
		return SessionStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	return SessionStatus(trimmed)
}

// Alias precedence tables for the upstream's inconsistent field spellings.
// First match wins; order is load-bearing and covered by tests.
var (
	PriceOptionIDAliases    = []string{"id", "unitId"}
	PriceOptionLabelAliases = []string{"label", "name", "unitName"}
	PriceOptionPriceAliases = []string{"price", "amount"}
)

// PriceOption is one unit/fare class offered on a session.
type PriceOption struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// ParsePriceOptions reads the upstream priceOptions collection tolerantly.
func ParsePriceOptions(value any) []PriceOption {
	entries := normalization.AsInterfaceSlice(value)
	if len(entries) == 0 {
		return nil
	}
	options := make([]PriceOption, 0, len(entries))
	for _, entry := range entries {
		record := normalization.AsMap(entry)
		if record == nil {
			continue
		}
		price, _ := normalization.FirstDefined(record, PriceOptionPriceAliases)
		options = append(options, PriceOption{
			ID:    normalization.FirstString(record, PriceOptionIDAliases),
			Label: normalization.FirstString(record, PriceOptionLabelAliases),
			Price: normalization.AsFloat64(price),
		})
	}
	return options
}

// PickupPoint is a pickup location offered for a product.
type PickupPoint struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ParsePickupPoints reads the upstream pickup list tolerantly.
func ParsePickupPoints(value any) []PickupPoint {
	entries := normalization.AsInterfaceSlice(value)
	if len(entries) == 0 {
		return nil
	}
	pickups := make([]PickupPoint, 0, len(entries))
	for _, entry := range entries {
		record := normalization.AsMap(entry)
		if record == nil {
			continue
		}
		name := normalization.FirstString(record, []string{"locationName", "name", "label"})
		if name == "" {
			continue
		}
		pickups = append(pickups, PickupPoint{
			Name:    name,
			Address: normalization.FirstString(record, []string{"address", "locationAddress"}),
		})
	}
	return pickups
}

// Session is one bookable time slot for one product/option combination.
// Sessions live for the duration of a single search call and are never
// persisted.
type Session struct {
	ProductID      string
	OptionID       string
	StartTimeLocal string
	EndTimeLocal   string
	AllDay         bool
	Status         SessionStatus
	Seats          int
	PriceOptions   []PriceOption
	Pickups        []PickupPoint
}

// ParseSession builds a Session from one availability-like record. When the
// record carries no status, one is derived from the seat count so freesale
// suppliers that omit the field still sell.
func ParseSession(record map[string]any, productID, optionID string) Session {
	seats := CalculateSeats(record)
	status := NormalizeSessionStatus(record["status"])
	if status == SessionStatusUnknown {
		if seats > 0 {
			status = SessionStatusAvailable
		} else {
			status = SessionStatusSoldOut
		}
	}
	allDay, _ := record["allDay"].(bool)
	return Session{
		ProductID:      productID,
		OptionID:       optionID,
		StartTimeLocal: normalization.FirstString(record, []string{"startTimeLocal", "startTime"}),
		EndTimeLocal:   normalization.FirstString(record, []string{"endTimeLocal", "endTime"}),
		AllDay:         allDay,
		Status:         status,
		Seats:          seats,
		PriceOptions:   ParsePriceOptions(record["priceOptions"]),
	}
}

// Sellable reports whether the session may appear in search output: the
// status must be AVAILABLE or FREESALE and a start timestamp present.
func (s Session) Sellable() bool {
	if s.StartTimeLocal == "" {
		return false
	}
	return s.Status == SessionStatusAvailable || s.Status == SessionStatusFreesale
}
