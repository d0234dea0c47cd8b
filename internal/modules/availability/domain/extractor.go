package domain

import (
	"log/slog"

	"rezdyLink/internal/shared/normalization"
)

// Array-field search orders for the two envelope families the upstream is
// observed to emit. Wrapped responses (carrying requestStatus) favour the
// session-style fields; bare objects favour the generic data field.
var (
	wrappedArrayFields = []string{"sessions", "availability", "data", "items"}
	bareArrayFields    = []string{"data", "availability", "sessions", "items"}
)

// ExtractSessions tolerantly pulls the list of availability-like records out
// of an arbitrary upstream payload. The upstream varies its envelope shape
// across endpoints and error conditions, so this function only classifies;
// it never fails. A requestStatus.success=false wrapper is the expected
// "no data" signal and yields an empty list. productID is for diagnostics
// only.
func ExtractSessions(payload any, productID string) []map[string]any {
	if payload == nil {
		return nil
	}

	if record := normalization.AsMap(payload); record != nil {
		if wrapper, wrapped := record["requestStatus"]; wrapped {
			status := normalization.AsMap(wrapper)
			if success, ok := status["success"].(bool); ok && !success {
				slog.Debug("availability payload reported no data", slog.String("productId", productID))
				return nil
			}
			return firstPopulatedArray(record, wrappedArrayFields)
		}
		if found := firstPopulatedArray(record, bareArrayFields); found != nil {
			return found
		}
		// A plain object is taken as a single record.
		return []map[string]any{record}
	}

	if entries := normalization.AsInterfaceSlice(payload); entries != nil {
		return recordsOf(entries)
	}

	slog.Debug("availability payload shape unrecognized", slog.String("productId", productID))
	return nil
}

func firstPopulatedArray(record map[string]any, fields []string) []map[string]any {
	for _, field := range fields {
		if entries := normalization.AsInterfaceSlice(record[field]); len(entries) > 0 {
			return recordsOf(entries)
		}
	}
	return nil
}

func recordsOf(entries []any) []map[string]any {
	records := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if record := normalization.AsMap(entry); record != nil {
			records = append(records, record)
		}
	}
	return records
}
