package models

import (
	"time"

	"github.com/google/uuid"
)

// RaceDateLayout задаёт формат даты соревнования (ДД-ММ-ГГГГ).
const RaceDateLayout = "02-01-2006"

// Race представляет единственное активное соревнование на устройстве.
type Race struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // DD-MM-YYYY
	CreatedAt time.Time `json:"created_at"`
}

// NewRace создаёт соревнование с новым ID и временем создания.
func NewRace(name, date string, now time.Time) *Race {
	return &Race{
		ID:        uuid.New(),
		Name:      name,
		Date:      date,
		CreatedAt: now,
	}
}
