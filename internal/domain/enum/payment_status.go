package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentStatus is the settlement state of a document's grand total.
type PaymentStatus int

const (
	PaymentStatusUnpaid  PaymentStatus = 0
	PaymentStatusPaid    PaymentStatus = 1
	PaymentStatusPartial PaymentStatus = 2
)

var paymentStatusNames = [...]string{"Unpaid", "Paid", "Partial"}

func (s PaymentStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("PaymentStatus(%d)", int(s))
	}
	return paymentStatusNames[s]
}

// IsValid reports whether s is one of the declared statuses.
func (s PaymentStatus) IsValid() bool {
	return s >= PaymentStatusUnpaid && s <= PaymentStatusPartial
}

// ParsePaymentStatus accepts the display names case-insensitively.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for i, name := range paymentStatusNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return PaymentStatus(i), nil
		}
	}
	return PaymentStatusUnpaid, fmt.Errorf("unknown payment status %q", s)
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	parsed, err := ParsePaymentStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
