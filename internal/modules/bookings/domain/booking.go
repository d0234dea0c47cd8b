package domain

import (
	"strings"

	"rezdyLink/internal/shared/normalization"
)

// BookingStatus mirrors the upstream order lifecycle.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusPending   BookingStatus = "PENDING"
)

// NormalizeBookingStatus uppercases and passes unknown statuses through.
func NormalizeBookingStatus(value any) BookingStatus {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
}

// Unit is one quantity entry on a booking line.
type Unit struct {
	OptionLabel string `json:"optionLabel"`
	Value       int    `json:"value"`
}

// Line is one product/session entry on a booking.
type Line struct {
	ProductCode    string `json:"productCode"`
	ProductName    string `json:"productName,omitempty"`
	StartTimeLocal string `json:"dateTimeStart,omitempty"`
	EndTimeLocal   string `json:"dateTimeEnd,omitempty"`
	Quantities     []Unit `json:"quantities,omitempty"`
	PickupName     string `json:"pickupName,omitempty"`
}

// Holder is the lead customer on a booking.
type Holder struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"emailAddress,omitempty"`
	Phone   string `json:"phoneNumber,omitempty"`
	Country string `json:"country,omitempty"`
}

// Booking is the canonical representation of an upstream order. Bookings are
// never locally mutated; they are fetched, translated and returned per call.
type Booking struct {
	ID                string        `json:"id"`
	SupplierBookingID string        `json:"supplierBookingId"`
	Status            BookingStatus `json:"status"`
	Cancellable       bool          `json:"cancellable"`
	Holder            Holder        `json:"holder"`
	Lines             []Line        `json:"lines,omitempty"`
	TotalAmount       float64       `json:"price,omitempty"`
	Currency          string        `json:"currency,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	ResellerReference string        `json:"resellerReference,omitempty"`
	PickupPoint       string        `json:"pickupPoint,omitempty"`
}

var orderNumberAliases = []string{"orderNumber", "id"}

// ProjectBooking maps one raw upstream order onto the canonical shape. The
// order number serves as both id and supplier booking id; records without
// any identifier project to nil. Cancelled orders are never cancellable,
// regardless of what upstream reports.
func ProjectBooking(record map[string]any) *Booking {
	if record == nil {
		return nil
	}
	if inner := normalization.AsMap(record["booking"]); inner != nil {
		record = inner
	}
	orderNumber := normalization.FirstString(record, orderNumberAliases)
	if orderNumber == "" {
		return nil
	}

	status := NormalizeBookingStatus(record["status"])
	cancellable := status != BookingStatusCancelled
	if reported, ok := record["cancellable"].(bool); ok {
		cancellable = reported
	}
	if status == BookingStatusCancelled {
		cancellable = false
	}

	booking := &Booking{
		ID:                orderNumber,
		SupplierBookingID: orderNumber,
		Status:            status,
		Cancellable:       cancellable,
		Holder:            projectHolder(normalization.AsMap(record["customer"])),
		TotalAmount:       normalization.AsFloat64(record["totalAmount"]),
		Currency:          normalization.FirstString(record, []string{"totalCurrency", "currency"}),
		Notes:             normalization.FirstString(record, []string{"comments", "notes"}),
		ResellerReference: normalization.AsString(record["resellerReference"]),
	}

	for _, entry := range normalization.AsInterfaceSlice(record["items"]) {
		item := normalization.AsMap(entry)
		if item == nil {
			continue
		}
		line := Line{
			ProductCode:    normalization.AsString(item["productCode"]),
			ProductName:    normalization.FirstString(item, []string{"productName", "name"}),
			StartTimeLocal: normalization.AsString(item["startTimeLocal"]),
			EndTimeLocal:   normalization.AsString(item["endTimeLocal"]),
		}
		for _, q := range normalization.AsInterfaceSlice(item["quantities"]) {
			quantity := normalization.AsMap(q)
			if quantity == nil {
				continue
			}
			value, _ := normalization.FirstDefined(quantity, []string{"value", "quantity"})
			line.Quantities = append(line.Quantities, Unit{
				OptionLabel: normalization.FirstString(quantity, []string{"optionLabel", "label"}),
				Value:       normalization.AsInt(value),
			})
		}
		if pickup := normalization.AsMap(item["pickupLocation"]); pickup != nil {
			line.PickupName = normalization.FirstString(pickup, []string{"locationName", "name"})
			if booking.PickupPoint == "" {
				booking.PickupPoint = line.PickupName
			}
		}
		booking.Lines = append(booking.Lines, line)
	}

	return booking
}

func projectHolder(record map[string]any) Holder {
	if record == nil {
		return Holder{}
	}
	return Holder{
		Name:    normalization.FirstString(record, []string{"firstName", "name"}),
		Surname: normalization.FirstString(record, []string{"lastName", "surname"}),
		Email:   normalization.FirstString(record, []string{"email", "emailAddress"}),
		Phone:   normalization.FirstString(record, []string{"phone", "mobile", "phoneNumber"}),
		Country: normalization.AsString(record["country"]),
	}
}

var bookingArrayFields = []string{"bookings", "data", "items"}

// ExtractBookings tolerantly pulls the order list out of an upstream search
// payload: wrapped lists, bare arrays, and single-order envelopes all
// normalize to a flat record list.
func ExtractBookings(payload any) []map[string]any {
	if payload == nil {
		return nil
	}
	if record := normalization.AsMap(payload); record != nil {
		if status := normalization.AsMap(record["requestStatus"]); status != nil {
			if success, ok := status["success"].(bool); ok && !success {
				return nil
			}
		}
		for _, field := range bookingArrayFields {
			if entries := normalization.AsInterfaceSlice(record[field]); len(entries) > 0 {
				return recordsOf(entries)
			}
		}
		if single := normalization.AsMap(record["booking"]); single != nil {
			return []map[string]any{single}
		}
		if normalization.FirstString(record, orderNumberAliases) != "" {
			return []map[string]any{record}
		}
		return nil
	}
	return recordsOf(normalization.AsInterfaceSlice(payload))
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
