package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/fast-orienteering/models"
	"github.com/Dosada05/fast-orienteering/repositories"
	"github.com/Dosada05/fast-orienteering/utils"
	"github.com/google/uuid"
)

// Notifier рассылает события об изменениях соревнования (см. live.Hub).
type Notifier interface {
	Publish(event models.LiveEvent)
}

type EventService interface {
	CreateRace(ctx context.Context, input CreateRaceInput) (*models.Race, error)
	GetRace(ctx context.Context) (*models.Race, error)
	DeleteRace(ctx context.Context) error
	AddCheckpoint(ctx context.Context, input AddCheckpointInput) (*models.Checkpoint, error)
	ListCheckpoints(ctx context.Context) ([]models.Checkpoint, error)
	GetCheckpoint(ctx context.Context, id uuid.UUID) (*models.Checkpoint, error)
}

type CreateRaceInput struct {
	Name string `json:"name"`
	Date string `json:"date" example:"15-01-2025"`
}

// AddCheckpointInput содержит поля формы "Добавить КП" в том виде, как их ввёл организатор.
// Code может прийти со сканера QR, координаты с GPS.
type AddCheckpointInput struct {
	Number    string `json:"number"`
	Code      string `json:"code"`
	Latitude  string `json:"latitude" example:"55,75222°"`
	Longitude string `json:"longitude" example:"37,61556°"`
	Hint      string `json:"hint"`
}

type eventService struct {
	store    repositories.EventStore
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewEventService(store repositories.EventStore, notifier Notifier, logger *slog.Logger) EventService {
	return &eventService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *eventService) CreateRace(ctx context.Context, input CreateRaceInput) (*models.Race, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRaceNameRequired
	}
	dateText := strings.TrimSpace(input.Date)
	if dateText == "" {
		return nil, ErrRaceDateRequired
	}
	date, err := utils.ParseRaceDate(dateText)
	if err != nil {
		return nil, ErrRaceDateFormat
	}

	var race models.Race
	err = s.store.Transact(ctx, func(tx repositories.EventTx) error {
		exists, err := tx.Exists(repositories.KeyRace)
		if err != nil {
			return err
		}
		if exists {
			return ErrRaceAlreadyExists
		}
		race = *models.NewRace(name, utils.FormatRaceDate(date), s.now())
		// Старые КП без соревнования не переходят в новое.
		if err := tx.Delete(repositories.KeyCheckpoints); err != nil {
			return err
		}
		return tx.Put(repositories.KeyRace, race)
	})
	if err != nil {
		if errors.Is(err, ErrRaceAlreadyExists) {
			return nil, ErrRaceAlreadyExists
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	s.logger.Info("race created", slog.String("race_id", race.ID.String()), slog.String("date", race.Date))
	s.publish(models.LiveRaceCreated, race)
	return &race, nil
}

func (s *eventService) GetRace(ctx context.Context) (*models.Race, error) {
	var race models.Race
	if err := s.store.Get(ctx, repositories.KeyRace, &race); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}
	return &race, nil
}

// DeleteRace удаляет соревнование вместе со всеми КП одной транзакцией.
func (s *eventService) DeleteRace(ctx context.Context) error {
	err := s.store.Transact(ctx, func(tx repositories.EventTx) error {
		exists, err := tx.Exists(repositories.KeyRace)
		if err != nil {
			return err
		}
		if !exists {
			return ErrRaceNotFound
		}
		if err := tx.Delete(repositories.KeyCheckpoints); err != nil {
			return err
		}
		return tx.Delete(repositories.KeyRace)
	})
	if err != nil {
		if errors.Is(err, ErrRaceNotFound) {
			return ErrRaceNotFound
		}
		return fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	s.logger.Info("race deleted")
	s.publish(models.LiveRaceDeleted, nil)
	return nil
}

func (s *eventService) AddCheckpoint(ctx context.Context, input AddCheckpointInput) (*models.Checkpoint, error) {
	number := strings.TrimSpace(input.Number)
	if number == "" {
		return nil, ErrCheckpointNumberRequired
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrCheckpointCodeRequired
	}
	latText := strings.TrimSpace(input.Latitude)
	lonText := strings.TrimSpace(input.Longitude)
	if latText == "" || lonText == "" {
		return nil, ErrCoordinatesRequired
	}
	lat, lon, ok := utils.ParseCoordinates(latText, lonText)
	if !ok {
		return nil, ErrCoordinatesInvalid
	}

	cp := models.NewCheckpoint(number, code, lat, lon, strings.TrimSpace(input.Hint), s.now())

	// Проверка соревнования и дописывание КП в одной транзакции: DeleteRace
	// не может вклиниться между ними.
	var collection models.CheckpointCollection
	err := s.store.Transact(ctx, func(tx repositories.EventTx) error {
		raceExists, err := tx.Exists(repositories.KeyRace)
		if err != nil {
			return err
		}
		if !raceExists {
			return ErrRaceNotFound
		}
		if err := tx.Get(repositories.KeyCheckpoints, &collection); err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
			return err
		}
		collection.Items = append(collection.Items, *cp)
		return tx.Put(repositories.KeyCheckpoints, collection)
	})
	if err != nil {
		if errors.Is(err, ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	s.logger.Info("checkpoint added",
		slog.String("checkpoint_id", cp.ID.String()),
		slog.String("name", cp.Name),
		slog.Int("total", len(collection.Items)),
	)
	s.publish(models.LiveCheckpointAdded, cp.Public())
	return cp, nil
}

func (s *eventService) ListCheckpoints(ctx context.Context) ([]models.Checkpoint, error) {
	var collection models.CheckpointCollection
	if err := s.store.Get(ctx, repositories.KeyCheckpoints, &collection); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return []models.Checkpoint{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}
	if collection.Items == nil {
		return []models.Checkpoint{}, nil
	}
	return collection.Items, nil
}

func (s *eventService) GetCheckpoint(ctx context.Context, id uuid.UUID) (*models.Checkpoint, error) {
	checkpoints, err := s.ListCheckpoints(ctx)
	if err != nil {
		return nil, err
	}
	cp, ok := models.CheckpointCollection{Items: checkpoints}.Find(id)
	if !ok {
		return nil, ErrCheckpointNotFound
	}
	return &cp, nil
}

func (s *eventService) publish(eventType models.LiveEventType, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(models.LiveEvent{Type: eventType, Payload: payload})
}
