package storage

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/Dosada05/fast-orienteering/models"
	"github.com/Dosada05/fast-orienteering/utils"
)

const SheetCheckpoints = "Checkpoints"

var checkpointHeader = []interface{}{"name", "number", "code", "latitude", "longitude", "hint"}

// SheetsExporter переписывает лист Checkpoints таблицы Google целиком.
type SheetsExporter struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func NewSheetsExporter(ctx context.Context, serviceAccountJSONPath, spreadsheetID string) (*SheetsExporter, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &SheetsExporter{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (e *SheetsExporter) Name() string { return "google-sheets" }

func (e *SheetsExporter) Export(ctx context.Context, export *models.EventExport) (string, error) {
	rng := SheetCheckpoints + "!A:Z"
	if _, err := e.srv.Spreadsheets.Values.Clear(e.spreadsheetID, rng, &sheetsv4.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear sheet %s: %w", SheetCheckpoints, err)
	}

	vr := &sheetsv4.ValueRange{Values: CheckpointRows(export)}
	_, err := e.srv.Spreadsheets.Values.Update(e.spreadsheetID, SheetCheckpoints+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("write sheet %s: %w", SheetCheckpoints, err)
	}
	return "https://docs.google.com/spreadsheets/d/" + e.spreadsheetID, nil
}

// CheckpointRows формирует содержимое листа: строка с названием соревнования,
// строка заголовков и по строке на каждый КП.
func CheckpointRows(export *models.EventExport) [][]interface{} {
	rows := make([][]interface{}, 0, len(export.Checkpoints)+2)
	rows = append(rows, []interface{}{export.Race.Name, export.Race.Date})
	rows = append(rows, checkpointHeader)
	for _, cp := range export.Checkpoints {
		rows = append(rows, []interface{}{
			cp.Name,
			cp.Number,
			cp.Code,
			utils.FormatCoordinate(cp.Latitude),
			utils.FormatCoordinate(cp.Longitude),
			cp.Hint,
		})
	}
	return rows
}
