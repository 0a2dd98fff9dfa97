package models

const (
	AppVersion     = "1.0.0"
	AppReleaseDate = "2025-01-15"
)

type AppInfo struct {
	Version     string `json:"version"`
	ReleaseDate string `json:"release_date"`
}
