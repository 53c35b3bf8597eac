package booking

import (
	"context"
	"time"

	domain "github.com/MLSatya/spark-scheduler/internal/domain/booking"
	"github.com/MLSatya/spark-scheduler/internal/dto"
	"github.com/MLSatya/spark-scheduler/internal/readmodel"
	"github.com/MLSatya/spark-scheduler/internal/timezone"
)

type ListBookingsByDate struct {
	repo   domain.Repository
	mirror *readmodel.ScheduleMirror
}

func NewListBookingsByDate(
	repo domain.Repository,
	mirror *readmodel.ScheduleMirror,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo:   repo,
		mirror: mirror,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	staffID uint,
	studioID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	// serve from the derived day view when warm
	if entries, ok := uc.mirror.Get(ctx, staffID, start.Format("2006-01-02")); ok {
		out := make([]dto.BookingListDTO, 0, len(entries))
		for _, e := range entries {
			st, _ := time.ParseInLocation("2006-01-02 15:04", start.Format("2006-01-02")+" "+e.Start, loc)
			et, _ := time.ParseInLocation("2006-01-02 15:04", start.Format("2006-01-02")+" "+e.End, loc)
			out = append(out, dto.BookingListDTO{
				ID:           e.BookingID,
				Reference:    e.Reference,
				StartTime:    st,
				EndTime:      et,
				Status:       e.Status,
				CustomerName: e.Customer,
				ServiceName:  e.Service,
			})
		}
		return out, nil
	}

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	// warm the mirror for the next read
	go uc.mirror.Rebuild(context.Background(), staffID, start.Format("2006-01-02"), loc)

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
