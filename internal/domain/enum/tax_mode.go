package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TaxMode controls whether the unit prices shown on a document already
// embed GST (Inclusive) or have it added on top (Exclusive).
// The mode is document-wide, never per line.
type TaxMode int

const (
	TaxModeExclusive TaxMode = 0
	TaxModeInclusive TaxMode = 1
)

func (m TaxMode) String() string {
	names := [...]string{"Exclusive", "Inclusive"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Exclusive"
	}
	return names[m]
}

// IsInclusive reports whether displayed prices already contain tax.
func (m TaxMode) IsInclusive() bool {
	return m == TaxModeInclusive
}

// Toggled returns the other mode.
func (m TaxMode) Toggled() TaxMode {
	if m.IsInclusive() {
		return TaxModeExclusive
	}
	return TaxModeInclusive
}

// ParseTaxMode accepts the display names case-insensitively.
func ParseTaxMode(s string) (TaxMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exclusive", "":
		return TaxModeExclusive, nil
	case "inclusive":
		return TaxModeInclusive, nil
	}
	return TaxModeExclusive, fmt.Errorf("unknown tax mode %q", s)
}

func (m TaxMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *TaxMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if i != int(TaxModeExclusive) && i != int(TaxModeInclusive) {
			return fmt.Errorf("unknown tax mode %d", i)
		}
		*m = TaxMode(i)
		return nil
	}
	parsed, err := ParseTaxMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m TaxMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *TaxMode) Scan(value interface{}) error {
	if value == nil {
		*m = TaxModeExclusive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = TaxMode(v)
	case int:
		*m = TaxMode(v)
	}
	return nil
}
