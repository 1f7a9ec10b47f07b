package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sawa-travel/marketplace/internal/models"
	"github.com/sawa-travel/marketplace/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCityNotFound      = errors.New("city not found")
	ErrNotBookingOwner   = errors.New("booking belongs to another traveler")
	ErrBookingNotActive  = errors.New("booking is cancelled or completed")
	ErrBookingNotPending = errors.New("booking already has an accepted offer")
	ErrInvalidDateRange  = errors.New("end date must be after start date")
)

type CreateBookingInput struct {
	CityID     uint
	StartDate  time.Time
	EndDate    time.Time
	Adults     int
	Children   int
	ServiceIDs []string
	Notes      string
}

type BookingService interface {
	CreateBooking(ctx context.Context, travelerEmail string, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, travelerEmail string, status *models.BookingStatus) ([]models.Booking, error)
	CancelBooking(ctx context.Context, travelerEmail string, bookingID uint) (*models.Booking, error)
	CompleteBooking(ctx context.Context, travelerEmail string, bookingID uint) (*models.Booking, error)
	HostResponses(ctx context.Context, bookingID uint) ([]models.HostResponse, error)
}

type bookingService struct {
	bookingRepo      repository.BookingRepository
	cityRepo         repository.CityRepository
	conversationRepo repository.ConversationRepository
	hostResponseRepo repository.HostResponseRepository
	notifier         NotificationService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	cityRepo repository.CityRepository,
	conversationRepo repository.ConversationRepository,
	hostResponseRepo repository.HostResponseRepository,
	notifier NotificationService,
) BookingService {
	return &bookingService{
		bookingRepo:      bookingRepo,
		cityRepo:         cityRepo,
		conversationRepo: conversationRepo,
		hostResponseRepo: hostResponseRepo,
		notifier:         notifier,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, travelerEmail string, input CreateBookingInput) (*models.Booking, error) {
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if _, err := s.cityRepo.FindByID(ctx, input.CityID); err != nil {
		return nil, ErrCityNotFound
	}

	adults := input.Adults
	if adults < 1 {
		adults = 1
	}

	booking := &models.Booking{
		TravelerEmail: travelerEmail,
		CityID:        input.CityID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Adults:        adults,
		Children:      input.Children,
		ServiceIDs:    pq.StringArray(input.ServiceIDs),
		Notes:         input.Notes,
		Status:        models.BookingPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, travelerEmail string, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.FindByTraveler(ctx, travelerEmail, status)
}

// CancelBooking is a status transition, never a delete. Conversations for a
// cancelled booking become read-only through the guards on message and offer
// creation; their own status is left alone.
func (s *bookingService) CancelBooking(ctx context.Context, travelerEmail string, bookingID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.TravelerEmail != travelerEmail {
			return ErrNotBookingOwner
		}
		if !booking.Status.Active() {
			return ErrBookingNotActive
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, bookingID, models.BookingCancelled); err != nil {
			return err
		}

		booking.Status = models.BookingCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Tell every host still in a conversation that the trip is off.
	if conversations, err := s.conversationRepo.FindByBookingID(ctx, bookingID); err == nil {
		seen := map[string]bool{}
		for _, c := range conversations {
			for _, host := range c.HostEmails {
				if seen[host] {
					continue
				}
				seen[host] = true
				s.notifier.Notify(NotificationEvent{
					RecipientEmail: host,
					Kind:           models.NotifyBookingCancelled,
					Title:          "Booking cancelled",
					Body:           "The traveler has cancelled this booking request.",
					BookingID:      &bookingID,
				})
			}
		}
	}

	return result, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, travelerEmail string, bookingID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.TravelerEmail != travelerEmail {
			return ErrNotBookingOwner
		}
		if booking.Status != models.BookingConfirmed {
			return ErrBookingNotActive
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, bookingID, models.BookingCompleted); err != nil {
			return err
		}

		booking.Status = models.BookingCompleted
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HostResponses returns the normalized per-(booking, host) classification
// rows for the "who has responded" view.
func (s *bookingService) HostResponses(ctx context.Context, bookingID uint) ([]models.HostResponse, error) {
	if _, err := s.bookingRepo.FindByID(ctx, bookingID); err != nil {
		return nil, ErrBookingNotFound
	}
	return s.hostResponseRepo.FindByBookingID(ctx, bookingID)
}
