package billing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// NumericInput is a numeric form field as typed by the user. It accepts a
// JSON number, a JSON string or null, and keeps the raw text so that a
// half-typed value ("", "-", "12.") is carried instead of rejected.
type NumericInput struct {
	raw string
}

// Num builds a NumericInput from a decimal.
func Num(d decimal.Decimal) NumericInput {
	return NumericInput{raw: d.String()}
}

// NumString builds a NumericInput from raw text.
func NumString(s string) NumericInput {
	return NumericInput{raw: s}
}

// Raw returns the text as received.
func (n NumericInput) Raw() string {
	return n.raw
}

// IsEmpty reports whether the field holds nothing but whitespace.
func (n NumericInput) IsEmpty() bool {
	return strings.TrimSpace(n.raw) == ""
}

// Parse returns the parsed value and whether it was a well-formed number.
func (n NumericInput) Parse() (decimal.Decimal, bool) {
	s := strings.TrimSpace(n.raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Decimal returns the parsed value, or def when the field is empty or malformed.
func (n NumericInput) Decimal(def decimal.Decimal) decimal.Decimal {
	if d, ok := n.Parse(); ok {
		return d
	}
	return def
}

func (n NumericInput) MarshalJSON() ([]byte, error) {
	if d, ok := n.Parse(); ok {
		return []byte(d.String()), nil
	}
	if n.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

func (n *NumericInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		n.raw = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.raw = s
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	n.raw = num.String()
	return nil
}
