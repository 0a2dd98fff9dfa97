package models

// LiveEventType задаёт тип сообщения, рассылаемого через WebSocket.
type LiveEventType string

const (
	LiveRaceCreated     LiveEventType = "race.created"
	LiveRaceDeleted     LiveEventType = "race.deleted"
	LiveCheckpointAdded LiveEventType = "checkpoint.added"
)

type LiveEvent struct {
	Type    LiveEventType `json:"type"`
	Payload interface{}   `json:"payload,omitempty"`
}
