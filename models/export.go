package models

import "time"

// EventExport содержит выгрузку соревнования целиком (для JSON-файла и таблицы).
type EventExport struct {
	Race        Race         `json:"race"`
	Checkpoints []Checkpoint `json:"checkpoints"`
	ExportedAt  time.Time    `json:"exported_at"`
}

// ExportTarget: куда одно место выгрузки положило документ.
type ExportTarget struct {
	Sink     string `json:"sink"`
	Location string `json:"location"`
}

type ExportResult struct {
	ExportedAt time.Time      `json:"exported_at"`
	Targets    []ExportTarget `json:"targets"`
}
