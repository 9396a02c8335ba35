package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/domain/schedule"
	"github.com/dermaline/studio-scheduler/internal/dto"
	"github.com/dermaline/studio-scheduler/internal/timezone"
)

type ListAppointments struct {
	repo        domain.Repository
	tz          string
	specialists []string
}

func NewListAppointments(
	repo domain.Repository,
	tz string,
	specialists []string,
) *ListAppointments {
	return &ListAppointments{
		repo:        repo,
		tz:          tz,
		specialists: specialists,
	}
}

func (uc *ListAppointments) ByDate(
	ctx context.Context,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	loc := timezone.Location(uc.tz)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	return uc.listPeriod(ctx, start, end)
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	loc := timezone.Location(uc.tz)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.listPeriod(ctx, start, end)
}

func (uc *ListAppointments) listPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:             ap.ID,
			BookingCode:    ap.BookingCode,
			Specialist:     ap.Specialist,
			StartTime:      ap.StartTime,
			EndTime:        ap.EndTime,
			Status:         ap.Status,
			Reconfirmation: ap.Reconfirmation,
			ClientName:     ap.Client.Name,
			ClientDocument: ap.ClientDocument,
			ServiceType:    ap.ServiceType,
			Procedure:      ap.Procedure,
			HasDeposit:     ap.DepositTransactionID != nil,
		})
	}

	return out, nil
}

// Occupancy derives, per specialist, booked minutes against the open
// minutes of the day. Cancelled and no-show appointments do not count as
// booked here; this is a utilisation view, not conflict detection.
func (uc *ListAppointments) Occupancy(
	ctx context.Context,
	date time.Time,
) ([]dto.SpecialistOccupancyDTO, error) {

	loc := timezone.Location(uc.tz)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows, err := uc.repo.GetWeek(ctx)
	if err != nil {
		return nil, err
	}
	week := schedule.NewWeek(rows)

	openMinutes := 0
	weekday := schedule.ISOWeekday(start)
	if week.IsOpen(weekday) {
		h := week.HoursFor(weekday)
		openMinutes = (h.End - h.Start) * 60
		for hour := h.Start; hour < h.End; hour++ {
			if week.IsWithinLunch(weekday, hour) {
				openMinutes -= 60
			}
		}
	}

	booked := make(map[string]int, len(uc.specialists))
	for _, name := range uc.specialists {
		booked[name] = 0
	}

	// Specialists with bookings but absent from the configured roster still
	// show up; the roster only fixes the order of the regulars.
	var extras []string
	for _, ap := range appointments {
		switch domain.Status(ap.Status) {
		case domain.StatusScheduled, domain.StatusCompleted:
		default:
			continue
		}
		if _, known := booked[ap.Specialist]; !known {
			extras = append(extras, ap.Specialist)
		}
		booked[ap.Specialist] += int(ap.EndTime.Sub(ap.StartTime).Minutes())
	}
	sort.Strings(extras)

	out := make([]dto.SpecialistOccupancyDTO, 0, len(booked))
	for _, name := range append(append([]string{}, uc.specialists...), extras...) {
		out = append(out, dto.SpecialistOccupancyDTO{
			Specialist:    name,
			BookedMinutes: booked[name],
			OpenMinutes:   openMinutes,
		})
	}

	return out, nil
}
