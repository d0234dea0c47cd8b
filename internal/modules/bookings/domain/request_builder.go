package domain

import (
	"errors"
	"sort"
	"strings"

	"rezdyLink/internal/shared/auth"
	"rezdyLink/internal/shared/normalization"
)

var (
	ErrMissingAvailabilityKey = errors.New("an availability key is required")
	ErrMissingHolderName      = errors.New("holder name is required")
	ErrMissingHolderSurname   = errors.New("holder surname is required")
)

// collectEmailSentinel is the documented upstream convention meaning "do not
// capture an email for this customer"; a matching value drops the field from
// the request entirely.
const collectEmailSentinel = "collect"

// Payment defaults required by the upstream API.
const (
	defaultPaymentType      = "CASH"
	defaultPaymentRecipient = "SUPPLIER"
	defaultPaymentLabel     = "Payment"
)

// HolderInput is the lead-customer data supplied by the caller.
type HolderInput struct {
	Name    string
	Surname string
	Email   string
	Phone   string
	Country string
}

// CreateInput gathers everything the caller may supply for booking creation
// beyond the availability key itself.
type CreateInput struct {
	Holder       HolderInput
	Notes        string
	Reference    string
	PickupPoint  string
	Participants []map[string]any
	Payments     []map[string]any
	ResellerID   string
	CreatedBy    string
}

// Upstream request payload shapes.
type (
	FieldPayload struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}
	ParticipantPayload struct {
		Fields []FieldPayload `json:"fields"`
	}
	QuantityPayload struct {
		OptionLabel string `json:"optionLabel"`
		Value       int    `json:"value"`
	}
	PickupPayload struct {
		LocationName string `json:"locationName"`
	}
	ItemPayload struct {
		ProductCode    string               `json:"productCode"`
		StartTimeLocal string               `json:"startTimeLocal"`
		Quantities     []QuantityPayload    `json:"quantities"`
		Participants   []ParticipantPayload `json:"participants,omitempty"`
		PickupLocation *PickupPayload       `json:"pickupLocation,omitempty"`
	}
	CustomerPayload struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email,omitempty"`
		Phone     string `json:"phone,omitempty"`
		Country   string `json:"country,omitempty"`
	}
	PaymentPayload struct {
		Amount    float64 `json:"amount"`
		Type      string  `json:"type"`
		Recipient string  `json:"recipient"`
		Label     string  `json:"label"`
	}
	CreateBookingRequest struct {
		Customer          CustomerPayload  `json:"customer"`
		Items             []ItemPayload    `json:"items"`
		Payments          []PaymentPayload `json:"payments"`
		Comments          string           `json:"comments,omitempty"`
		ResellerReference string           `json:"resellerReference,omitempty"`
		ResellerSource    string           `json:"resellerSource,omitempty"`
		CreatedBy         string           `json:"createdBy,omitempty"`
	}
)

// ValidateCreateInput runs the fail-fast checks that must reject a booking
// before any network call: key presence first, then holder name, then
// surname.
func ValidateCreateInput(hasKey bool, holder HolderInput) error {
	if !hasKey {
		return ErrMissingAvailabilityKey
	}
	if strings.TrimSpace(holder.Name) == "" {
		return ErrMissingHolderName
	}
	if strings.TrimSpace(holder.Surname) == "" {
		return ErrMissingHolderSurname
	}
	return nil
}

// BuildCreateRequest assembles the upstream booking-creation payload from a
// verified availability key and the caller's inputs. The decoded key is
// trusted as-is; pricing was fixed at search time.
func BuildCreateRequest(key *auth.AvailabilityKey, input CreateInput) *CreateBookingRequest {
	request := &CreateBookingRequest{
		Customer: CustomerPayload{
			FirstName: strings.TrimSpace(input.Holder.Name),
			LastName:  strings.TrimSpace(input.Holder.Surname),
			Phone:     strings.TrimSpace(input.Holder.Phone),
			Country:   strings.TrimSpace(input.Holder.Country),
		},
		Comments:          input.Notes,
		ResellerReference: input.Reference,
		ResellerSource:    input.ResellerID,
		CreatedBy:         input.CreatedBy,
	}
	if email := strings.TrimSpace(input.Holder.Email); email != "" && !strings.EqualFold(email, collectEmailSentinel) {
		request.Customer.Email = email
	}

	totalQuantity := 0
	for _, line := range key.Items {
		item := ItemPayload{
			ProductCode:    line.ProductCode,
			StartTimeLocal: line.StartTimeLocal,
			Quantities:     make([]QuantityPayload, 0, len(line.Quantities)),
		}
		for _, quantity := range line.Quantities {
			item.Quantities = append(item.Quantities, QuantityPayload{
				OptionLabel: quantity.OptionLabel,
				Value:       quantity.Value,
			})
			totalQuantity += quantity.Value
		}
		if pickup := strings.TrimSpace(input.PickupPoint); pickup != "" {
			item.PickupLocation = &PickupPayload{LocationName: pickup}
		}
		request.Items = append(request.Items, item)
	}

	participants := buildParticipants(input.Participants, input.Holder, totalQuantity)
	if len(request.Items) > 0 {
		request.Items[0].Participants = participants
	}

	request.Payments = buildPayments(input.Payments, key.TotalAmount)
	return request
}

// buildParticipants serializes each participant as a field list. Callers may
// supply participants; fewer than the requested seat count is padded with
// holder-derived defaults up to max(total quantity, 1). With none supplied,
// one participant per requested seat is synthesized from the holder.
func buildParticipants(supplied []map[string]any, holder HolderInput, totalQuantity int) []ParticipantPayload {
	target := totalQuantity
	if target < 1 {
		target = 1
	}
	if len(supplied) > target {
		target = len(supplied)
	}

	participants := make([]ParticipantPayload, 0, target)
	for _, entry := range supplied {
		participants = append(participants, participantFields(entry, holder))
	}
	for len(participants) < target {
		participants = append(participants, defaultParticipant(holder))
	}
	return participants
}

func defaultParticipant(holder HolderInput) ParticipantPayload {
	return ParticipantPayload{Fields: []FieldPayload{
		{Label: "First Name", Value: strings.TrimSpace(holder.Name)},
		{Label: "Last Name", Value: strings.TrimSpace(holder.Surname)},
	}}
}

// participantFields converts one caller-supplied participant into the field
// list the upstream expects. Already field-list-shaped participants pass
// through unchanged.
func participantFields(entry map[string]any, holder HolderInput) ParticipantPayload {
	if raw, ok := entry["fields"]; ok {
		passthrough := ParticipantPayload{}
		for _, f := range normalization.AsInterfaceSlice(raw) {
			field := normalization.AsMap(f)
			if field == nil {
				continue
			}
			passthrough.Fields = append(passthrough.Fields, FieldPayload{
				Label: normalization.AsString(field["label"]),
				Value: normalization.AsString(field["value"]),
			})
		}
		return passthrough
	}

	firstName := normalization.FirstString(entry, []string{"firstName", "name"})
	if firstName == "" {
		firstName = strings.TrimSpace(holder.Name)
	}
	lastName := normalization.FirstString(entry, []string{"lastName", "surname"})
	if lastName == "" {
		lastName = strings.TrimSpace(holder.Surname)
	}
	participant := ParticipantPayload{Fields: []FieldPayload{
		{Label: "First Name", Value: firstName},
		{Label: "Last Name", Value: lastName},
	}}
	extras := make([]string, 0, len(entry))
	for label := range entry {
		switch label {
		case "firstName", "name", "lastName", "surname", "fields":
			continue
		}
		extras = append(extras, label)
	}
	sort.Strings(extras)
	for _, label := range extras {
		if text := normalization.AsString(entry[label]); text != "" {
			participant.Fields = append(participant.Fields, FieldPayload{Label: label, Value: text})
		}
	}
	return participant
}

// buildPayments validates caller-supplied payments or synthesizes the single
// payment entry the upstream requires, charging the key's total. Amounts
// that are invalid, NaN or negative are coerced to 0.
func buildPayments(supplied []map[string]any, totalAmount float64) []PaymentPayload {
	if len(supplied) == 0 {
		amount := totalAmount
		if amount < 0 {
			amount = 0
		}
		return []PaymentPayload{{
			Amount:    amount,
			Type:      defaultPaymentType,
			Recipient: defaultPaymentRecipient,
			Label:     defaultPaymentLabel,
		}}
	}

	payments := make([]PaymentPayload, 0, len(supplied))
	for _, entry := range supplied {
		amount, ok := normalization.AsNumber(entry["amount"])
		if !ok || amount < 0 {
			amount = 0
		}
		payment := PaymentPayload{
			Amount:    amount,
			Type:      defaultPaymentType,
			Recipient: defaultPaymentRecipient,
			Label:     defaultPaymentLabel,
		}
		if v := normalization.AsString(entry["type"]); v != "" {
			payment.Type = v
		}
		if v := normalization.AsString(entry["recipient"]); v != "" {
			payment.Recipient = v
		}
		if v := normalization.AsString(entry["label"]); v != "" {
			payment.Label = v
		}
		payments = append(payments, payment)
	}
	return payments
}
