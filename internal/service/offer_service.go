package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sawa-travel/marketplace/internal/models"
	"github.com/sawa-travel/marketplace/internal/pricing"
	"github.com/sawa-travel/marketplace/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOfferNotFound      = errors.New("offer not found")
	ErrOfferNotPending    = errors.New("offer is no longer pending")
	ErrOfferAlreadyStands = errors.New("host already has a pending offer for this booking")
	ErrOfferExpired       = errors.New("offer has expired")
	ErrBookingTaken       = errors.New("booking already confirmed with another offer")
	ErrNotParticipant     = errors.New("user is not a participant of this conversation")
	ErrNotAHost           = errors.New("user is not a host")
	ErrInvalidPrice       = errors.New("base price must be positive")
)

type SubmitOfferInput struct {
	ConversationID uint
	OfferType      models.OfferType
	PriceBase      float64
	Inclusions     string
	RentalDetails  string
	ExpiryDate     *time.Time
}

type OfferService interface {
	SubmitOffer(ctx context.Context, host *models.User, input SubmitOfferInput) (*models.Offer, error)
	AcceptOffer(ctx context.Context, travelerEmail string, offerID uint) (*models.Offer, error)
	DeclineOffer(ctx context.Context, travelerEmail string, offerID uint) (*models.Offer, error)
	PassOnBooking(ctx context.Context, host *models.User, bookingID uint) error
	ListOffers(ctx context.Context, bookingID uint) ([]models.Offer, error)
}

type offerService struct {
	offerRepo        repository.OfferRepository
	bookingRepo      repository.BookingRepository
	conversationRepo repository.ConversationRepository
	hostResponseRepo repository.HostResponseRepository
	notifier         NotificationService
	now              func() time.Time
}

func NewOfferService(
	offerRepo repository.OfferRepository,
	bookingRepo repository.BookingRepository,
	conversationRepo repository.ConversationRepository,
	hostResponseRepo repository.HostResponseRepository,
	notifier NotificationService,
) OfferService {
	return &offerService{
		offerRepo:        offerRepo,
		bookingRepo:      bookingRepo,
		conversationRepo: conversationRepo,
		hostResponseRepo: hostResponseRepo,
		notifier:         notifier,
		now:              time.Now,
	}
}

// SubmitOffer creates a priced offer inside a conversation. Service offers
// get the full commission breakdown from the host's category; rentals carry
// the base price through unchanged.
func (s *offerService) SubmitOffer(ctx context.Context, host *models.User, input SubmitOfferInput) (*models.Offer, error) {
	if host.Role != models.RoleHost {
		return nil, ErrNotAHost
	}
	if input.PriceBase <= 0 {
		return nil, ErrInvalidPrice
	}

	conversation, err := s.conversationRepo.FindByID(ctx, input.ConversationID)
	if err != nil {
		return nil, ErrConversationNotFound
	}
	if !conversation.HasHost(host.Email) {
		return nil, ErrNotParticipant
	}
	if conversation.Status != models.ConversationOpen {
		return nil, ErrConversationClosed
	}

	offer := &models.Offer{
		BookingID:  conversation.BookingID,
		HostEmail:  host.Email,
		HostName:   host.Name,
		OfferType:  input.OfferType,
		Inclusions: input.Inclusions,
		Status:     models.OfferPending,
		ExpiryDate: input.ExpiryDate,
	}

	if input.OfferType == models.OfferTypeService {
		b := pricing.ServiceBreakdown(input.PriceBase, host.HostType)
		offer.PriceBase = b.PriceBase
		offer.SawaPercent = b.SawaPercent
		offer.SawaFee = b.SawaFee
		offer.OfficePercent = b.OfficePercent
		offer.OfficeFee = b.OfficeFee
		offer.PriceTotal = b.Total
	} else {
		// Rentals carry no commission breakdown.
		offer.RentalDetails = input.RentalDetails
		offer.PriceBase = pricing.Round2(input.PriceBase)
		offer.PriceTotal = offer.PriceBase
	}

	err = s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, conversation.BookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		// Reject before any write: no new offers on a cancelled or
		// already-confirmed booking.
		if booking.Status == models.BookingConfirmed {
			return ErrBookingTaken
		}
		if booking.Status != models.BookingPending {
			return ErrBookingNotActive
		}

		// One live offer per host per booking. Checked under the booking
		// lock, so we surface a conflict instead of tripping the partial
		// unique index.
		standing, err := s.offerRepo.HasPending(ctx, tx, conversation.BookingID, host.Email)
		if err != nil {
			return err
		}
		if standing {
			return ErrOfferAlreadyStands
		}

		if err := s.offerRepo.Create(ctx, tx, offer); err != nil {
			return fmt.Errorf("create offer: %w", err)
		}

		return s.hostResponseRepo.Upsert(ctx, tx, &models.HostResponse{
			BookingID: conversation.BookingID,
			HostEmail: host.Email,
			Status:    models.HostHasPendingOffer,
			OfferID:   &offer.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(NotificationEvent{
		RecipientEmail: conversation.TravelerEmail,
		Kind:           models.NotifyOfferReceived,
		Title:          "New offer received",
		Body:           fmt.Sprintf("%s sent you an offer for %.2f.", host.Name, offer.PriceTotal),
		BookingID:      &conversation.BookingID,
	})

	return offer, nil
}

// AcceptOffer settles the whole negotiation in one transaction serialized on
// the booking row: the offer becomes accepted, the booking confirmed, every
// competing pending offer not_selected, and every conversation excluding the
// winning host is deleted. Notifications go out only after commit.
func (s *offerService) AcceptOffer(ctx context.Context, travelerEmail string, offerID uint) (*models.Offer, error) {
	var (
		accepted *models.Offer
		booking  *models.Booking
		losers   []models.Offer
	)

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		offer, err := s.offerRepo.FindByIDForUpdate(ctx, tx, offerID)
		if err != nil {
			return ErrOfferNotFound
		}

		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, offer.BookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.TravelerEmail != travelerEmail {
			return ErrNotBookingOwner
		}
		if booking.Status == models.BookingConfirmed {
			return ErrBookingTaken
		}
		if booking.Status != models.BookingPending {
			return ErrBookingNotActive
		}
		if offer.Status != models.OfferPending {
			return ErrOfferNotPending
		}
		// An expired offer is not acceptable; record its terminal state
		// while we hold the lock.
		if offer.ExpiredAt(s.now()) {
			if err := s.offerRepo.UpdateStatus(ctx, tx, offer.ID, models.OfferExpired); err != nil {
				return err
			}
			return ErrOfferExpired
		}

		if err := s.offerRepo.UpdateStatus(ctx, tx, offer.ID, models.OfferAccepted); err != nil {
			return err
		}
		offer.Status = models.OfferAccepted

		if err := s.bookingRepo.Confirm(ctx, tx, booking.ID, offer); err != nil {
			return err
		}

		losers, err = s.offerRepo.FindPendingExcept(ctx, tx, booking.ID, offer.ID)
		if err != nil {
			return err
		}
		for _, l := range losers {
			if err := s.offerRepo.UpdateStatus(ctx, tx, l.ID, models.OfferNotSelected); err != nil {
				return err
			}
		}

		if err := s.conversationRepo.DeleteExcludingHost(ctx, tx, booking.ID, offer.HostEmail); err != nil {
			return err
		}

		if err := s.hostResponseRepo.Upsert(ctx, tx, &models.HostResponse{
			BookingID: booking.ID,
			HostEmail: offer.HostEmail,
			Status:    models.HostAccepted,
			OfferID:   &offer.ID,
		}); err != nil {
			return err
		}
		if err := s.hostResponseRepo.ReclassifyOnAccept(ctx, tx, booking.ID, offer.HostEmail); err != nil {
			return err
		}

		accepted = offer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(NotificationEvent{
		RecipientEmail: accepted.HostEmail,
		Kind:           models.NotifyOfferAccepted,
		Title:          "Offer accepted",
		Body:           "The traveler accepted your offer. The booking is confirmed.",
		BookingID:      &booking.ID,
	})
	s.notifier.Notify(NotificationEvent{
		RecipientEmail: booking.TravelerEmail,
		Kind:           models.NotifyOfferAccepted,
		Title:          "Booking confirmed",
		Body:           fmt.Sprintf("Your booking is confirmed with %s.", accepted.HostName),
		BookingID:      &booking.ID,
	})
	for _, l := range losers {
		s.notifier.Notify(NotificationEvent{
			RecipientEmail: l.HostEmail,
			Kind:           models.NotifyBookingTaken,
			Title:          "Booking taken",
			Body:           "The traveler went with another offer for this booking.",
			BookingID:      &booking.ID,
		})
	}

	return accepted, nil
}

// DeclineOffer rejects a single offer. No booking-level side effect.
func (s *offerService) DeclineOffer(ctx context.Context, travelerEmail string, offerID uint) (*models.Offer, error) {
	var declined *models.Offer

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		offer, err := s.offerRepo.FindByIDForUpdate(ctx, tx, offerID)
		if err != nil {
			return ErrOfferNotFound
		}

		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, offer.BookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.TravelerEmail != travelerEmail {
			return ErrNotBookingOwner
		}
		if offer.Status != models.OfferPending {
			return ErrOfferNotPending
		}

		if err := s.offerRepo.UpdateStatus(ctx, tx, offer.ID, models.OfferDeclined); err != nil {
			return err
		}
		offer.Status = models.OfferDeclined

		if err := s.hostResponseRepo.Upsert(ctx, tx, &models.HostResponse{
			BookingID: booking.ID,
			HostEmail: offer.HostEmail,
			Status:    models.HostDeclinedByTraveler,
			OfferID:   &offer.ID,
		}); err != nil {
			return err
		}

		declined = offer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(NotificationEvent{
		RecipientEmail: declined.HostEmail,
		Kind:           models.NotifyOfferDeclined,
		Title:          "Offer declined",
		Body:           "The traveler declined your offer.",
		BookingID:      &declined.BookingID,
	})

	return declined, nil
}

// PassOnBooking records that the host explicitly chose not to offer.
func (s *offerService) PassOnBooking(ctx context.Context, host *models.User, bookingID uint) error {
	if host.Role != models.RoleHost {
		return ErrNotAHost
	}

	return s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Status != models.BookingPending {
			return ErrBookingNotActive
		}

		return s.hostResponseRepo.Upsert(ctx, tx, &models.HostResponse{
			BookingID: bookingID,
			HostEmail: host.Email,
			Status:    models.HostDeclinedByHost,
		})
	})
}

// ListOffers returns the booking's offers, settling expiry lazily: a pending
// offer past its expiry date is written back as expired before it is shown.
// There is no background sweep.
func (s *offerService) ListOffers(ctx context.Context, bookingID uint) ([]models.Offer, error) {
	offers, err := s.offerRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	db := s.bookingRepo.GetDB()
	for i := range offers {
		if !offers[i].ExpiredAt(now) {
			continue
		}
		// The write-back is conditional on the row still being pending: our
		// read is unlocked, and a concurrent accept may have settled the
		// offer since. A terminal state must never be overwritten.
		expired, err := s.offerRepo.ExpireIfPending(ctx, db, offers[i].ID)
		if err != nil {
			return nil, err
		}
		if expired {
			offers[i].Status = models.OfferExpired
			continue
		}
		fresh, err := s.offerRepo.FindByID(ctx, offers[i].ID)
		if err != nil {
			return nil, err
		}
		offers[i].Status = fresh.Status
	}
	return offers, nil
}
