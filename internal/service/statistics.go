package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/trainer-booking/internal/calendar"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
)

const recentCancellationsWindow = 30 * 24 * time.Hour

type TrainerStat struct {
	TrainerID uuid.UUID
	Name      string
	Count     int64
}

// Statistics пересчитывается на каждый запрос из текущего состояния хранилища.
type Statistics struct {
	TotalAppointments       int64
	TotalCancellations      int64
	CancellationsLast30Days int64

	ByService []calendar.CountBucket
	ByTrainer []TrainerStat
	ByHour    [24]int

	CancellationsByActor  []calendar.CountBucket
	CancellationsByReason []calendar.CountBucket
}

type StatisticsService struct {
	store *repository.Store
	rules Rules
	now   Clock
}

func NewStatisticsService(store *repository.Store, rules Rules, clock Clock) *StatisticsService {
	if clock == nil {
		clock = systemClock
	}
	return &StatisticsService{store: store, rules: rules, now: clock}
}

// GetStatistics — сводка для администратора.
func (s *StatisticsService) GetStatistics(ctx context.Context, caller calendar.Caller) (*Statistics, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	r, err := s.store.Statistics.GetRollups(ctx, s.now().Add(-recentCancellationsWindow))
	if err != nil {
		return nil, storeError("statistics", err)
	}

	out := &Statistics{
		TotalAppointments:       r.TotalAppointments,
		TotalCancellations:      r.TotalCancellations,
		CancellationsLast30Days: r.RecentCancellations,
		ByService:               r.ByService,
		ByHour:                  calendar.HourHistogram(r.Starts, s.rules.loc()),
		CancellationsByActor:    r.ByActor,
		CancellationsByReason:   r.ByReason,
		ByTrainer:               make([]TrainerStat, 0, len(r.ByTrainer)),
	}
	for _, t := range r.ByTrainer {
		out.ByTrainer = append(out.ByTrainer, TrainerStat{
			TrainerID: t.TrainerID,
			Name:      (&model.Trainer{Name: t.Name, Surname: t.Surname}).FullName(),
			Count:     t.Total,
		})
	}
	return out, nil
}
