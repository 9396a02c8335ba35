package retention

import (
	"context"

	"github.com/dermaline/studio-scheduler/internal/models"
)

type Repository interface {
	ListAppointments(ctx context.Context) ([]models.Appointment, error)

	// ListStandaloneSales returns transactions with no appointment link
	// and kind other than adelanto.
	ListStandaloneSales(ctx context.Context) ([]models.Transaction, error)

	ListFollowUpStates(ctx context.Context) ([]models.FollowUpState, error)

	// GetFollowUpState returns (nil, nil) when no record exists yet; an
	// error means the read itself failed and must not be mistaken for a
	// first touch.
	GetFollowUpState(
		ctx context.Context,
		sourceID string,
	) (*models.FollowUpState, error)

	SaveFollowUpState(
		ctx context.Context,
		st *models.FollowUpState,
	) error
}
