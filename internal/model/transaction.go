// Package model defines the domain types shared across the application.
package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Transaction represents a single purchase event at a merchant.
type Transaction struct {
	ExternalID     string          `json:"externalId"`
	DateTime       DateTime        `json:"dateTime"`
	URL            string          `json:"url,omitempty"`
	OrderStatus    string          `json:"orderStatus,omitempty"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	Price          Price           `json:"price"`
	Products       []Product       `json:"products"`
}

// Product is a single line item within a transaction. The product name is
// the classification key: identical names across transactions and merchants
// are the same classification subject.
type Product struct {
	ExternalID string       `json:"externalId"`
	Name       string       `json:"name"`
	URL        string       `json:"url,omitempty"`
	Quantity   int          `json:"quantity"`
	Price      ProductPrice `json:"price"`
}

// PaymentMethod records one payment instrument used on a transaction.
type PaymentMethod struct {
	ExternalID        string `json:"externalId"`
	Type              string `json:"type"`
	Brand             string `json:"brand"`
	LastFour          string `json:"lastFour"`
	TransactionAmount string `json:"transactionAmount"`
}

// Amount parses the charged amount, falling back to 0 for malformed values.
func (p PaymentMethod) Amount() float64 {
	amount, err := strconv.ParseFloat(strings.TrimSpace(p.TransactionAmount), 64)
	if err != nil || math.IsNaN(amount) {
		return 0
	}
	return amount
}

// Adjustment is a discount, fee, tax or tip applied to a transaction price.
type Adjustment struct {
	Type   string  `json:"type"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Price is the transaction-level price block.
type Price struct {
	SubTotal    float64      `json:"subTotal"`
	Adjustments []Adjustment `json:"adjustments,omitempty"`
	Total       float64      `json:"total"`
	Currency    string       `json:"currency"`
}

// ProductPrice is the line-item price block. Any field may be absent in the
// source data; SafeTotal and SafeUnitPrice apply the zero fallback.
type ProductPrice struct {
	SubTotal  float64 `json:"subTotal"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
	UnitPrice float64 `json:"unitPrice"`
}

// SafeTotal returns the line total with NaN treated as 0.
func (p ProductPrice) SafeTotal() float64 {
	if math.IsNaN(p.Total) {
		return 0
	}
	return p.Total
}

// SafeUnitPrice returns the unit price and whether it is usable.
func (p ProductPrice) SafeUnitPrice() (float64, bool) {
	if p.UnitPrice == 0 || math.IsNaN(p.UnitPrice) {
		return 0, false
	}
	return p.UnitPrice, true
}

// DateTime carries a transaction timestamp in whatever representation the
// source used: an ISO date string, epoch milliseconds, or a numeric string.
type DateTime struct {
	raw    string
	millis int64
	isNum  bool
}

// NewDateTime builds a DateTime from a raw string representation.
func NewDateTime(raw string) DateTime {
	return DateTime{raw: raw}
}

// NewDateTimeMillis builds a DateTime from epoch milliseconds.
func NewDateTimeMillis(ms int64) DateTime {
	return DateTime{millis: ms, isNum: true}
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] != '"' {
		var ms json.Number
		if err := json.Unmarshal(data, &ms); err != nil {
			return err
		}
		f, err := ms.Float64()
		if err != nil {
			return err
		}
		d.millis = int64(f)
		d.isNum = true
		return nil
	}
	return json.Unmarshal(data, &d.raw)
}

// MarshalJSON writes the original representation back out.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.isNum {
		return json.Marshal(d.millis)
	}
	return json.Marshal(d.raw)
}

// String returns the raw representation for logging.
func (d DateTime) String() string {
	if d.isNum {
		return strconv.FormatInt(d.millis, 10)
	}
	return d.raw
}

// epochMillisFloor is the magnitude above which a bare number is read as
// epoch milliseconds rather than a calendar value.
const epochMillisFloor = 1_000_000_000_000

// Time normalizes the timestamp to a UTC time. The second return value is
// false when the representation cannot be parsed.
func (d DateTime) Time() (time.Time, bool) {
	if d.isNum {
		return time.UnixMilli(d.millis).UTC(), true
	}

	raw := strings.TrimSpace(d.raw)
	if raw == "" {
		return time.Time{}, false
	}

	// Numeric strings above the epoch-millisecond floor are timestamps.
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		if n > epochMillisFloor {
			return time.UnixMilli(int64(n)).UTC(), true
		}
		return time.Time{}, false
	}

	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// Month returns the YYYY-MM bucket for the timestamp, or false when the
// timestamp cannot be normalized.
func (d DateTime) Month() (string, bool) {
	t, ok := d.Time()
	if !ok {
		return "", false
	}
	return t.Format("2006-01"), true
}
