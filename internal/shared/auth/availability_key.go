package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rezdyLink/internal/shared/normalization"
)

var (
	// ErrSecretNotConfigured is raised before any upstream call when an
	// operation that mints availability keys runs without a signing secret.
	ErrSecretNotConfigured = errors.New("availability key signing secret not set")
	// ErrInvalidAvailabilityKey covers malformed keys and signature failures.
	ErrInvalidAvailabilityKey = errors.New("invalid availability key")
)

// KeyQuantity is one selected unit inside a booking line.
type KeyQuantity struct {
	OptionLabel string `json:"optionLabel"`
	Value       int    `json:"value"`
}

// UnmarshalJSON tolerates the legacy quantity spelling {label, quantity}
// emitted by earlier connector versions; keys are long-lived, so tokens
// minted before the rename still have to decode.
func (q *KeyQuantity) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.OptionLabel = normalization.FirstString(raw, []string{"optionLabel", "label"})
	value, _ := normalization.FirstDefined(raw, []string{"value", "quantity"})
	q.Value = normalization.AsInt(value)
	return nil
}

// BookingLine carries one product/session selection through the key.
type BookingLine struct {
	ProductCode    string        `json:"productCode"`
	StartTimeLocal string        `json:"startTimeLocal"`
	Quantities     []KeyQuantity `json:"quantities"`
}

// AvailabilityKey is the stateless continuation payload minted during an
// availability search and redeemed at booking creation. It is the only
// channel carrying selection state between the two calls.
type AvailabilityKey struct {
	Items       []BookingLine `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
}

type keyClaims struct {
	Items       []BookingLine `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
	jwt.RegisteredClaims
}

// KeyCodec signs and verifies availability keys with an HS256 secret.
// Keys carry no expiry: they are at-time-of-search price quotes and upstream
// never re-prices them.
type KeyCodec struct {
	secret []byte
	now    func() time.Time
}

func NewKeyCodec(secret string) *KeyCodec {
	return &KeyCodec{secret: []byte(strings.TrimSpace(secret)), now: time.Now}
}

// Configured reports whether a signing secret is present.
func (c *KeyCodec) Configured() bool {
	return len(c.secret) > 0
}

// Encode signs the payload into an opaque token string.
func (c *KeyCodec) Encode(key AvailabilityKey) (string, error) {
	if !c.Configured() {
		return "", ErrSecretNotConfigured
	}
	claims := keyClaims{
		Items:       key.Items,
		TotalAmount: key.TotalAmount,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(c.now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign availability key: %w", err)
	}
	return signed, nil
}

// Decode verifies the token signature and returns the trusted payload.
// No re-validation against live availability happens downstream; a verified
// key is taken as-is to build the booking request.
func (c *KeyCodec) Decode(token string) (*AvailabilityKey, error) {
	if !c.Configured() {
		return nil, ErrSecretNotConfigured
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidAvailabilityKey)
	}
	claims := &keyClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithLeeway(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAvailabilityKey, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidAvailabilityKey
	}
	return &AvailabilityKey{Items: claims.Items, TotalAmount: claims.TotalAmount}, nil
}
