package utils

import (
	"strings"
	"time"

	"github.com/Dosada05/fast-orienteering/models"
)

// ParseRaceDate разбирает дату ДД-ММ-ГГГГ. Несуществующие даты (31-02-2025)
// отклоняет сам time.Parse.
func ParseRaceDate(s string) (time.Time, error) {
	return time.Parse(models.RaceDateLayout, strings.TrimSpace(s))
}

// FormatRaceDate обратна ParseRaceDate.
func FormatRaceDate(t time.Time) string {
	return t.Format(models.RaceDateLayout)
}
