package booking

import (
	"context"
	"time"

	"github.com/dermaline/studio-scheduler/internal/models"
)

type Repository interface {
	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		document string,
		name string,
		phone string,
		source string,
	) (*models.Client, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SaveAppointmentWithTransaction persists the appointment and, when tx
	// is non-nil, the transaction in one atomic unit: both writes commit or
	// neither does. The adelanto/cierre postings go through here so a
	// half-written pair can never leave a transaction without its link on
	// the appointment.
	SaveAppointmentWithTransaction(
		ctx context.Context,
		ap *models.Appointment,
		tx *models.Transaction,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// ListAppointmentsForSpecialist returns every appointment of one
	// specialist intersecting [start, end), regardless of status —
	// cancelled and no-show rows stay conflict sources.
	ListAppointmentsForSpecialist(
		ctx context.Context,
		specialist string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListBookingCodes returns the assigned codes sharing a MMYY- prefix.
	ListBookingCodes(
		ctx context.Context,
		prefix string,
	) ([]string, error)

	// -------- Transaction --------
	CreateTransaction(
		ctx context.Context,
		tx *models.Transaction,
	) error

	CountTransactionsForAppointment(
		ctx context.Context,
		appointmentID uint,
	) (int64, error)

	// UnlinkTransactionsForAppointment clears the appointment link on
	// every transaction referencing it; financial history survives the
	// appointment.
	UnlinkTransactionsForAppointment(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Schedule --------
	GetWeek(
		ctx context.Context,
	) ([]models.WeeklySchedule, error)
}
