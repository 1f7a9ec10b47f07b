package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sawa-travel/marketplace/internal/models"
)

func newBookingServiceForTest(bookingRepo *mockBookingRepo, cityRepo *mockCityRepo, hostRespRepo *mockHostResponseRepo) BookingService {
	return NewBookingService(bookingRepo, cityRepo, &mockConversationRepo{}, hostRespRepo, &mockNotifier{})
}

func TestCreateBooking_Success(t *testing.T) {
	var created *models.Booking
	bookingRepo := &mockBookingRepo{
		createFn: func(ctx context.Context, booking *models.Booking) error {
			booking.ID = 7
			created = booking
			return nil
		},
	}
	cityRepo := &mockCityRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.City, error) {
			return &models.City{ID: id, Name: "Aqaba"}, nil
		},
	}
	svc := newBookingServiceForTest(bookingRepo, cityRepo, &mockHostResponseRepo{})

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	booking, err := svc.CreateBooking(context.Background(), "amal@example.com", CreateBookingInput{
		CityID:     3,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 4),
		Adults:     2,
		Children:   1,
		ServiceIDs: []string{"diving", "camping"},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(7), booking.ID)
	assert.Equal(t, models.BookingPending, created.Status)
	assert.Equal(t, "amal@example.com", created.TravelerEmail)
	assert.Len(t, created.ServiceIDs, 2)
}

func TestCreateBooking_EndBeforeStart(t *testing.T) {
	svc := newBookingServiceForTest(&mockBookingRepo{}, &mockCityRepo{}, &mockHostResponseRepo{})

	start := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateBooking(context.Background(), "amal@example.com", CreateBookingInput{
		CityID:    3,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -2),
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateBooking_UnknownCity(t *testing.T) {
	cityRepo := &mockCityRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.City, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newBookingServiceForTest(&mockBookingRepo{}, cityRepo, &mockHostResponseRepo{})

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateBooking(context.Background(), "amal@example.com", CreateBookingInput{
		CityID:    999,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
	})

	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestCreateBooking_DefaultsToOneAdult(t *testing.T) {
	var created *models.Booking
	bookingRepo := &mockBookingRepo{
		createFn: func(ctx context.Context, booking *models.Booking) error {
			created = booking
			return nil
		},
	}
	cityRepo := &mockCityRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.City, error) {
			return &models.City{ID: id}, nil
		},
	}
	svc := newBookingServiceForTest(bookingRepo, cityRepo, &mockHostResponseRepo{})

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateBooking(context.Background(), "amal@example.com", CreateBookingInput{
		CityID:    3,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, created.Adults)
}

func TestGetBooking_NotFound(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newBookingServiceForTest(bookingRepo, &mockCityRepo{}, &mockHostResponseRepo{})

	_, err := svc.GetBooking(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestHostResponses_ReturnsClassifiedRows(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id, Status: models.BookingPending}, nil
		},
	}
	hostRespRepo := &mockHostResponseRepo{
		findFn: func(ctx context.Context, bookingID uint) ([]models.HostResponse, error) {
			return []models.HostResponse{
				{BookingID: bookingID, HostEmail: "a@example.com", Status: models.HostHasPendingOffer},
				{BookingID: bookingID, HostEmail: "b@example.com", Status: models.HostPendingResponse},
			}, nil
		},
	}
	svc := newBookingServiceForTest(bookingRepo, &mockCityRepo{}, hostRespRepo)

	rows, err := svc.HostResponses(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, models.HostHasPendingOffer, rows[0].Status)
}

func TestHostResponses_UnknownBooking(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newBookingServiceForTest(bookingRepo, &mockCityRepo{}, &mockHostResponseRepo{})

	_, err := svc.HostResponses(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
