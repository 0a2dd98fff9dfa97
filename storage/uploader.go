package storage

import (
	"context"
	"io"

	"github.com/Dosada05/fast-orienteering/models"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	GetPublicURL(key string) string
}

// Exporter описывает место назначения выгрузки соревнования. Возвращает, где лежит результат.
type Exporter interface {
	Name() string
	Export(ctx context.Context, export *models.EventExport) (string, error)
}
