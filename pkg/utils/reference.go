package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FormatReference builds a document reference such as INV-000042
func FormatReference(prefix string, number int) string {
	return fmt.Sprintf("%s-%06d", prefix, number)
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}
