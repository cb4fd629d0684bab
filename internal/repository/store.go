package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store собирает репозитории над одним соединением или одной транзакцией.
type Store struct {
	db *gorm.DB

	Clients       ClientRepository
	Trainers      TrainerRepository
	Appointments  AppointmentRepository
	Cancellations CancellationRepository
	WorkHours     WorkHoursRepository
	Statistics    StatisticsRepository

	// newTx строит Store поверх транзакции. Тесты подменяют его,
	// чтобы вставить свои репозитории внутрь InTx.
	newTx func(tx *gorm.DB) *Store
}

func NewStore(db *gorm.DB) *Store {
	s := build(db)
	s.newTx = build
	return s
}

func build(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Clients:       NewGormClientRepository(db),
		Trainers:      NewGormTrainerRepository(db),
		Appointments:  NewGormAppointmentRepository(db),
		Cancellations: NewGormCancellationRepository(db),
		WorkHours:     NewGormWorkHoursRepository(db),
		Statistics:    NewGormStatisticsRepository(db),
	}
}

// WithTxFactory заменяет сборку транзакционного Store.
func (s *Store) WithTxFactory(f func(tx *gorm.DB) *Store) *Store {
	cp := *s
	cp.newTx = f
	return &cp
}

// DB — сырое соединение (миграции, health-check).
func (s *Store) DB() *gorm.DB { return s.db }

// InTx выполняет fn в одной транзакции. Ошибка fn откатывает всё.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	factory := s.newTx
	if factory == nil {
		factory = build
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(factory(tx))
	})
}
