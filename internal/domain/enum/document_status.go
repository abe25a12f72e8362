package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentStatus represents the lifecycle of a document
type DocumentStatus int

const (
	DocumentStatusDraft    DocumentStatus = 0
	DocumentStatusIssued   DocumentStatus = 1
	DocumentStatusCanceled DocumentStatus = 2
)

var documentStatusNames = [...]string{"Draft", "Issued", "Canceled"}

func (s DocumentStatus) String() string {
	if s < DocumentStatusDraft || s > DocumentStatusCanceled {
		return fmt.Sprintf("DocumentStatus(%d)", int(s))
	}
	return documentStatusNames[s]
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Draft -> Issued -> Canceled, and Draft -> Canceled. Canceled is terminal.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	switch s {
	case DocumentStatusDraft:
		return next == DocumentStatusIssued || next == DocumentStatusCanceled
	case DocumentStatusIssued:
		return next == DocumentStatusCanceled
	}
	return false
}

// ParseDocumentStatus accepts the display names case-insensitively.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	for i, name := range documentStatusNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return DocumentStatus(i), nil
		}
	}
	return DocumentStatusDraft, fmt.Errorf("unknown document status %q", s)
}

func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DocumentStatus(i)
		return nil
	}
	parsed, err := ParseDocumentStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s DocumentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DocumentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DocumentStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DocumentStatus(v)
	case int:
		*s = DocumentStatus(v)
	}
	return nil
}
