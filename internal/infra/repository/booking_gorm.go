package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	document string,
	name string,
	phone string,
	source string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("document = ?", document).
		First(&client).Error

	if err == nil {
		// last write wins on identity fields
		if name != "" {
			client.Name = name
		}
		if phone != "" {
			client.Phone = phone
		}
		if err := r.db.WithContext(ctx).Save(&client).Error; err != nil {
			return nil, err
		}
		return &client, nil
	}

	client = models.Client{
		Document: document,
		Name:     name,
		Phone:    phone,
		Source:   source,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) SaveAppointmentWithTransaction(
	ctx context.Context,
	ap *models.Appointment,
	tx *models.Transaction,
) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if tx != nil {
			if err := dbtx.Create(tx).Error; err != nil {
				return err
			}
		}
		return dbtx.Save(ap).Error
	})
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// No status filter: cancelled and no-show rows stay conflict sources.
func (r *BookingGormRepository) ListAppointmentsForSpecialist(
	ctx context.Context,
	specialist string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"specialist = ? AND start_time < ? AND end_time > ?",
			specialist, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"start_time >= ? AND start_time < ?",
			start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) ListBookingCodes(
	ctx context.Context,
	prefix string,
) ([]string, error) {

	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("booking_code LIKE ?", prefix+"%").
		Pluck("booking_code", &codes).Error; err != nil {
		return nil, err
	}

	return codes, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *BookingGormRepository) CreateTransaction(
	ctx context.Context,
	tx *models.Transaction,
) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *BookingGormRepository) CountTransactionsForAppointment(
	ctx context.Context,
	appointmentID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *BookingGormRepository) UnlinkTransactionsForAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("appointment_id = ?", appointmentID).
		Update("appointment_id", nil).Error
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetWeek(
	ctx context.Context,
) ([]models.WeeklySchedule, error) {

	var rows []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
