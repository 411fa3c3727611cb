package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// AgeAt returns full years between a birth date and a reference date.
func AgeAt(birthDate, at time.Time) int {
	years := at.Year() - birthDate.Year()
	// Birthday not yet reached in the reference year
	if at.YearDay() < birthDate.YearDay() {
		years--
	}
	return years
}
