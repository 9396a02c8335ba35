package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/dermaline/studio-scheduler/internal/domain/retention"
	"github.com/dermaline/studio-scheduler/internal/models"
)

type RetentionGormRepository struct {
	db *gorm.DB
}

func NewRetentionGormRepository(db *gorm.DB) *RetentionGormRepository {
	return &RetentionGormRepository{db: db}
}

func (r *RetentionGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *RetentionGormRepository) ListStandaloneSales(
	ctx context.Context,
) ([]models.Transaction, error) {

	var sales []models.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		Where(
			"appointment_id IS NULL AND (kind IS NULL OR kind <> ?)",
			models.TransactionKindDeposit,
		).
		Order("occurred_at ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}

	return sales, nil
}

func (r *RetentionGormRepository) ListFollowUpStates(
	ctx context.Context,
) ([]models.FollowUpState, error) {

	var states []models.FollowUpState
	if err := r.db.WithContext(ctx).
		Find(&states).Error; err != nil {
		return nil, err
	}

	return states, nil
}

func (r *RetentionGormRepository) GetFollowUpState(
	ctx context.Context,
	sourceID string,
) (*models.FollowUpState, error) {

	var st models.FollowUpState
	err := r.db.WithContext(ctx).
		Where("source_id = ?", sourceID).
		First(&st).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &st, nil
}

func (r *RetentionGormRepository) SaveFollowUpState(
	ctx context.Context,
	st *models.FollowUpState,
) error {
	return r.db.WithContext(ctx).Save(st).Error
}

// Compile-time check
var _ domain.Repository = (*RetentionGormRepository)(nil)
