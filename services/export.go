package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/fast-orienteering/models"
	"github.com/Dosada05/fast-orienteering/storage"
)

type ExportService interface {
	Snapshot(ctx context.Context) (*models.EventExport, error)
	ExportEvent(ctx context.Context) (*models.ExportResult, error)
}

type exportService struct {
	events EventService
	sinks  []storage.Exporter
	logger *slog.Logger
	now    func() time.Time
}

func NewExportService(events EventService, sinks []storage.Exporter, logger *slog.Logger) ExportService {
	return &exportService{
		events: events,
		sinks:  sinks,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot собирает соревнование и все КП в один документ.
func (s *exportService) Snapshot(ctx context.Context) (*models.EventExport, error) {
	race, err := s.events.GetRace(ctx)
	if err != nil {
		return nil, err
	}
	checkpoints, err := s.events.ListCheckpoints(ctx)
	if err != nil {
		return nil, err
	}
	return &models.EventExport{
		Race:        *race,
		Checkpoints: checkpoints,
		ExportedAt:  s.now().UTC(),
	}, nil
}

// ExportEvent отправляет выгрузку во все настроенные места параллельно.
// Ошибка любого из них означает ошибку всей операции.
func (s *exportService) ExportEvent(ctx context.Context) (*models.ExportResult, error) {
	if len(s.sinks) == 0 {
		return nil, ErrNoExportSinks
	}
	export, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	targets := make([]models.ExportTarget, len(s.sinks))
	g, gCtx := errgroup.WithContext(ctx)
	for i, sink := range s.sinks {
		i, sink := i, sink
		g.Go(func() error {
			location, err := sink.Export(gCtx, export)
			if err != nil {
				s.logger.Error("export failed", slog.String("sink", sink.Name()), slog.Any("error", err))
				return fmt.Errorf("%w (%s): %w", ErrExportFailed, sink.Name(), err)
			}
			targets[i] = models.ExportTarget{Sink: sink.Name(), Location: location}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("event exported",
		slog.String("race_id", export.Race.ID.String()),
		slog.Int("checkpoints", len(export.Checkpoints)),
		slog.Int("sinks", len(targets)),
	)
	return &models.ExportResult{ExportedAt: export.ExportedAt, Targets: targets}, nil
}
