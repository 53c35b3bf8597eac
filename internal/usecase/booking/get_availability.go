package booking

import (
	"context"
	"time"

	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute computes the bookable slots for one staff member, service and day.
// Every duration variant configured on the service gets its own full pass
// over the working window; the passes are unioned for the calendar view.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.StudioID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	staff, err := uc.repo.GetStaff(ctx, in.StudioID, in.StaffID)
	if err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	if service.RequiredStaffID != nil && *service.RequiredStaffID != staff.ID {
		return []domain.TimeSlot{}, nil
	}

	rules, err := uc.repo.ListAvailabilityRules(ctx, staff.ID, service.ID)
	if err != nil {
		return nil, err
	}

	defaults, err := uc.repo.ListDayDefaults(ctx, staff.ID)
	if err != nil {
		return nil, err
	}

	hours, available := domain.ResolveHours(rules, defaults, staff, service.ID, in.Date)
	if !available {
		return []domain.TimeSlot{}, nil
	}

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		in.Date.Location(),
	)

	existing, err := uc.repo.ListBookingsForDay(ctx, staff.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	durations, err := uc.repo.ListDurationVariants(ctx, service.ID)
	if err != nil {
		return nil, err
	}

	busy := domain.BusyIntervals(existing)
	slots := domain.GenerateSlotUnion(hours, in.Date, durations, busy)

	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	return slots, nil
}
