package sensor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Ingest(ctx context.Context, raw []byte) (Record, error)
	List(ctx context.Context, login string) ([]Record, error)
	QueryRange(ctx context.Context, login string, r DateRange) ([]Record, error)
	Location() *time.Location
}

type Service struct {
	repo  Repository
	owner string
	loc   *time.Location
	now   func() time.Time
	log   *slog.Logger
}

// NewService создает сервис приёма и выборки показаний. Все принятые uplink
// записываются на владельца owner: привязки устройства к пользователю нет.
func NewService(repo Repository, owner string, loc *time.Location, log *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:  repo,
		owner: owner,
		loc:   loc,
		now:   time.Now,
		log:   log.With("component", "sensor_service"),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) Ingest(ctx context.Context, raw []byte) (Record, error) {
	up, err := DecodeUplink(raw)
	if err != nil {
		s.log.Debug("uplink rejected", "error", err)
		return Record{}, err
	}

	p := up.UplinkMessage.DecodedPayload
	rec := Record{
		UserLogin:   s.owner,
		DeviceID:    up.EndDeviceIDs.DeviceID,
		BPM:         *p.BPM,
		Temperature: *p.Temperature,
		Speed:       *p.Speed,
		Time:        s.now().UnixMilli(),
	}

	id, err := s.repo.Create(ctx, &rec)
	if err != nil {
		if errors.Is(err, ErrUnknownOwner) {
			s.log.Error("ingest owner is not registered", "owner", s.owner)
			return Record{}, err
		}
		return Record{}, fmt.Errorf("store record: %w", err)
	}
	rec.ID = id

	attrs := []any{"id", id, "device_id", rec.DeviceID, "owner", rec.UserLogin}
	if received, ok := up.ReceivedTime(); ok {
		attrs = append(attrs, "received_at", received)
	}
	s.log.Info("uplink stored", attrs...)

	return rec, nil
}

func (s *Service) List(ctx context.Context, login string) ([]Record, error) {
	records, err := s.repo.ListByUser(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	sortByTime(records)
	return records, nil
}

// QueryRange фильтрует записи пользователя по локальной календарной дате.
// Хранилище отдаёт все записи, интервал применяется здесь.
func (s *Service) QueryRange(ctx context.Context, login string, r DateRange) ([]Record, error) {
	records, err := s.List(ctx, login)
	if err != nil {
		return nil, err
	}

	result := make([]Record, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Timestamp(), s.loc) {
			result = append(result, rec)
		}
	}

	s.log.Debug("range query", "login", login, "range", r.String(),
		"total", len(records), "matched", len(result))
	return result, nil
}

func sortByTime(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})
}
