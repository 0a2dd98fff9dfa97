package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckpointNamePrefix добавляется к номеру КП при формировании названия.
const CheckpointNamePrefix = "CP "

// Checkpoint представляет контрольный пункт (КП).
type Checkpoint struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Hint      string    `json:"hint"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckpointCollection хранит КП в порядке добавления.
type CheckpointCollection struct {
	Items []Checkpoint `json:"items"`
}

// PublicCheckpoint показывается участникам, поэтому в нём нет кода КП.
type PublicCheckpoint struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Hint      string    `json:"hint"`
}

func NewCheckpoint(number, code string, lat, lon float64, hint string, now time.Time) *Checkpoint {
	return &Checkpoint{
		ID:        uuid.New(),
		Number:    number,
		Name:      CheckpointNamePrefix + number,
		Code:      code,
		Latitude:  lat,
		Longitude: lon,
		Hint:      hint,
		CreatedAt: now,
	}
}

func (c Checkpoint) Public() PublicCheckpoint {
	return PublicCheckpoint{
		ID:        c.ID,
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Hint:      c.Hint,
	}
}

// Find ищет КП по ID.
func (c CheckpointCollection) Find(id uuid.UUID) (Checkpoint, bool) {
	for _, cp := range c.Items {
		if cp.ID == id {
			return cp, true
		}
	}
	return Checkpoint{}, false
}
