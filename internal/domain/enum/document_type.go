package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentType identifies which back-office screen a document belongs to.
// All types share the same billing rules.
type DocumentType int

const (
	DocumentTypeQuotation DocumentType = 0
	DocumentTypeEstimate  DocumentType = 1
	DocumentTypeInvoice   DocumentType = 2
	DocumentTypePettyCash DocumentType = 3
)

var documentTypeNames = [...]string{"Quotation", "Estimate", "Invoice", "PettyCash"}

func (t DocumentType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("DocumentType(%d)", int(t))
	}
	return documentTypeNames[t]
}

// IsValid reports whether t is one of the declared types.
func (t DocumentType) IsValid() bool {
	return t >= DocumentTypeQuotation && t <= DocumentTypePettyCash
}

// ReferencePrefix is the prefix used when numbering documents of this type.
func (t DocumentType) ReferencePrefix() string {
	switch t {
	case DocumentTypeEstimate:
		return "ES"
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypePettyCash:
		return "PC"
	default:
		return "QT"
	}
}

// AcceptsPayments reports whether payments can be recorded against the type.
// Quotations are offers and never carry money.
func (t DocumentType) AcceptsPayments() bool {
	return t != DocumentTypeQuotation
}

// ParseDocumentType accepts the display names case-insensitively.
func ParseDocumentType(s string) (DocumentType, error) {
	for i, name := range documentTypeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return DocumentType(i), nil
		}
	}
	return DocumentTypeQuotation, fmt.Errorf("unknown document type %q", s)
}

func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DocumentType(i)
		return nil
	}
	parsed, err := ParseDocumentType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t DocumentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DocumentType) Scan(value interface{}) error {
	if value == nil {
		*t = DocumentTypeQuotation
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DocumentType(v)
	case int:
		*t = DocumentType(v)
	}
	return nil
}
