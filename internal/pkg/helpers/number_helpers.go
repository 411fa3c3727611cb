package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateApplicationNumber produces a unique, human-readable application
// number such as APP-2026-7F3A9C21. The suffix comes from a random UUID so
// numbers are unique without a database round trip.
func GenerateApplicationNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("APP-%d-%s", at.Year(), suffix)
}
