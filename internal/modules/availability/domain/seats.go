package domain

import "rezdyLink/internal/shared/normalization"

// SeatFieldPrecedence lists the upstream spellings of the available-seat
// count, first defined wins. The order mirrors observed upstream payloads.
var SeatFieldPrecedence = []string{
	"seatsAvailable",
	"available",
	"vacancies",
	"availableSeats",
	"remainingSeats",
}

// CalculateSeats extracts the available-seat count from an availability-like
// record. The chosen value is coerced to a number (numeric strings parse);
// anything that does not coerce yields 0. Negative counts pass through
// unclamped: some suppliers use them as oversell markers and downstream
// consumers rely on seeing them.
func CalculateSeats(record map[string]any) int {
	value, field := normalization.FirstDefined(record, SeatFieldPrecedence)
	if field == "" {
		return 0
	}
	parsed, ok := normalization.AsNumber(value)
	if !ok {
		return 0
	}
	return int(parsed)
}
