package domain

import "rezdyLink/internal/shared/normalization"

var productArrayFields = []string{"products", "data", "items"}

// ExtractProducts pulls the product list out of an upstream payload,
// normalizing the single-object response of a by-id lookup into a
// one-element list.
func ExtractProducts(payload any) []map[string]any {
	if payload == nil {
		return nil
	}
	if record := normalization.AsMap(payload); record != nil {
		for _, field := range productArrayFields {
			if entries := normalization.AsInterfaceSlice(record[field]); len(entries) > 0 {
				return mapsOf(entries)
			}
		}
		if single := normalization.AsMap(record["product"]); single != nil {
			return []map[string]any{single}
		}
		if _, wrapped := record["requestStatus"]; wrapped {
			return nil
		}
		return []map[string]any{record}
	}
	return mapsOf(normalization.AsInterfaceSlice(payload))
}

func mapsOf(entries []any) []map[string]any {
	records := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if record := normalization.AsMap(entry); record != nil {
			records = append(records, record)
		}
	}
	return records
}
