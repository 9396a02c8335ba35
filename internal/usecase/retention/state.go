package retention

import (
	"context"
	"time"

	"github.com/dermaline/studio-scheduler/internal/audit"
	"github.com/dermaline/studio-scheduler/internal/cache"
	domain "github.com/dermaline/studio-scheduler/internal/domain/retention"
	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/models"
	"github.com/dermaline/studio-scheduler/internal/timezone"
)

var (
	errInvalidStatus = httperr.ErrBusiness("invalid_followup_status")
	errNotPrivileged = httperr.ErrBusiness("privileged_required")
)

func validStatus(s string) bool {
	switch s {
	case models.FollowUpPending, models.FollowUpContacted,
		models.FollowUpScheduled, models.FollowUpLost:
		return true
	}
	return false
}

// ======================================================
// UPDATE STATE (lazy create on first touch)
// ======================================================

type UpdateStateInput struct {
	SourceID string

	Status        string
	Notes         string
	TouchContact  bool
	LastContactAt *time.Time

	ActorID   uint
	ActorName string
}

type UpdateState struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	reports *cache.ReportCache
	tz      string
}

func NewUpdateState(
	repo domain.Repository,
	audit *audit.Dispatcher,
	reports *cache.ReportCache,
	tz string,
) *UpdateState {
	return &UpdateState{
		repo:    repo,
		audit:   audit,
		reports: reports,
		tz:      tz,
	}
}

func (uc *UpdateState) Execute(
	ctx context.Context,
	in UpdateStateInput,
) (*models.FollowUpState, error) {

	if !validStatus(in.Status) {
		return nil, errInvalidStatus
	}

	st, err := uc.repo.GetFollowUpState(ctx, in.SourceID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		// first touch creates the record
		st = &models.FollowUpState{SourceID: in.SourceID}
	}

	st.Status = in.Status
	st.Notes = in.Notes
	if in.LastContactAt != nil {
		st.LastContactAt = in.LastContactAt
	} else if in.TouchContact {
		now := timezone.NowIn(uc.tz)
		st.LastContactAt = &now
	}

	if err := uc.repo.SaveFollowUpState(ctx, st); err != nil {
		return nil, err
	}

	uc.reports.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Actor:    in.ActorName,
		Action:   "followup_state_updated",
		Entity:   "followup",
		EntityID: in.SourceID,
		Metadata: map[string]any{"status": in.Status},
	})

	return st, nil
}

// ======================================================
// ARCHIVE (privileged, soft-hide only)
// ======================================================

type ArchiveState struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	reports *cache.ReportCache
}

func NewArchiveState(
	repo domain.Repository,
	audit *audit.Dispatcher,
	reports *cache.ReportCache,
) *ArchiveState {
	return &ArchiveState{
		repo:    repo,
		audit:   audit,
		reports: reports,
	}
}

// Execute toggles the archived flag. Archiving never deletes the record
// and is independent of the follow-up status.
func (uc *ArchiveState) Execute(
	ctx context.Context,
	sourceID string,
	archived bool,
	actorID uint,
	actorName string,
	privileged bool,
) (*models.FollowUpState, error) {

	if !privileged {
		return nil, errNotPrivileged
	}

	st, err := uc.repo.GetFollowUpState(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = &models.FollowUpState{
			SourceID: sourceID,
			Status:   models.FollowUpPending,
		}
	}

	st.Archived = archived

	if err := uc.repo.SaveFollowUpState(ctx, st); err != nil {
		return nil, err
	}

	uc.reports.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Actor:    actorName,
		Action:   "followup_archived",
		Entity:   "followup",
		EntityID: sourceID,
		Metadata: map[string]any{"archived": archived},
	})

	return st, nil
}
