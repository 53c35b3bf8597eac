package booking

import (
	"context"
	"time"

	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/dto"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(
	repo domain.Repository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	staffID uint,
	studioID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:           b.ID,
			Reference:    b.Reference,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			Status:       b.Status,
			CustomerName: b.Customer.Name,
			ServiceName:  b.Service.Name,
		})
	}

	return out, nil
}
