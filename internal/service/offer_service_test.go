package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/sawa-travel/marketplace/internal/models"
)

func hostUser() *models.User {
	return &models.User{
		Email:    "host@example.com",
		Name:     "Petra Tours",
		Role:     models.RoleHost,
		HostType: models.HostIndependent,
	}
}

func newOfferServiceForTest(
	offerRepo *mockOfferRepo,
	bookingRepo *mockBookingRepo,
	convRepo *mockConversationRepo,
	notifier *mockNotifier,
) *offerService {
	return NewOfferService(offerRepo, bookingRepo, convRepo, &mockHostResponseRepo{}, notifier).(*offerService)
}

func TestSubmitOffer_TravelerCannotOffer(t *testing.T) {
	svc := newOfferServiceForTest(&mockOfferRepo{}, &mockBookingRepo{}, &mockConversationRepo{}, &mockNotifier{})

	traveler := &models.User{Email: "amal@example.com", Role: models.RoleTraveler}
	_, err := svc.SubmitOffer(context.Background(), traveler, SubmitOfferInput{
		ConversationID: 1,
		OfferType:      models.OfferTypeService,
		PriceBase:      100,
	})

	assert.ErrorIs(t, err, ErrNotAHost)
}

func TestSubmitOffer_RejectsNonPositivePrice(t *testing.T) {
	svc := newOfferServiceForTest(&mockOfferRepo{}, &mockBookingRepo{}, &mockConversationRepo{}, &mockNotifier{})

	_, err := svc.SubmitOffer(context.Background(), hostUser(), SubmitOfferInput{
		ConversationID: 1,
		OfferType:      models.OfferTypeService,
		PriceBase:      0,
	})

	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestSubmitOffer_HostMustBeInConversation(t *testing.T) {
	convRepo := &mockConversationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Conversation, error) {
			return &models.Conversation{
				ID:            1,
				BookingID:     1,
				TravelerEmail: "amal@example.com",
				HostEmails:    pq.StringArray{"another-host@example.com"},
				Status:        models.ConversationOpen,
			}, nil
		},
	}
	svc := newOfferServiceForTest(&mockOfferRepo{}, &mockBookingRepo{}, convRepo, &mockNotifier{})

	_, err := svc.SubmitOffer(context.Background(), hostUser(), SubmitOfferInput{
		ConversationID: 1,
		OfferType:      models.OfferTypeService,
		PriceBase:      100,
	})

	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSubmitOffer_ClosedConversation(t *testing.T) {
	convRepo := &mockConversationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Conversation, error) {
			return &models.Conversation{
				ID:            1,
				BookingID:     1,
				TravelerEmail: "amal@example.com",
				HostEmails:    pq.StringArray{"host@example.com"},
				Status:        models.ConversationClosed,
			}, nil
		},
	}
	svc := newOfferServiceForTest(&mockOfferRepo{}, &mockBookingRepo{}, convRepo, &mockNotifier{})

	_, err := svc.SubmitOffer(context.Background(), hostUser(), SubmitOfferInput{
		ConversationID: 1,
		OfferType:      models.OfferTypeService,
		PriceBase:      100,
	})

	assert.ErrorIs(t, err, ErrConversationClosed)
}

func TestListOffers_SettlesExpiryLazily(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	var expiredWrites []uint
	offerRepo := &mockOfferRepo{
		findByBookingFn: func(ctx context.Context, bookingID uint) ([]models.Offer, error) {
			return []models.Offer{
				{ID: 1, BookingID: 1, Status: models.OfferPending, ExpiryDate: &past},
				{ID: 2, BookingID: 1, Status: models.OfferPending, ExpiryDate: &future},
				{ID: 3, BookingID: 1, Status: models.OfferDeclined, ExpiryDate: &past},
				{ID: 4, BookingID: 1, Status: models.OfferPending},
			}, nil
		},
		expirePendingFn: func(ctx context.Context, offerID uint) (bool, error) {
			expiredWrites = append(expiredWrites, offerID)
			return true, nil
		},
	}

	svc := newOfferServiceForTest(offerRepo, &mockBookingRepo{}, &mockConversationRepo{}, &mockNotifier{})
	offers, err := svc.ListOffers(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, []uint{1}, expiredWrites, "only the pending offer past its expiry gets written back")
	assert.Equal(t, models.OfferExpired, offers[0].Status)
	assert.Equal(t, models.OfferPending, offers[1].Status)
	assert.Equal(t, models.OfferDeclined, offers[2].Status, "a terminal status never re-enters the machine")
	assert.Equal(t, models.OfferPending, offers[3].Status, "no expiry date means no expiry")
}

// An expiry write-back can race a concurrent accept: the list read saw the
// offer pending, the accept committed first. The settled state must win.
func TestListOffers_ConcurrentSettleOutranksExpiry(t *testing.T) {
	past := time.Now().Add(-time.Hour)

	offerRepo := &mockOfferRepo{
		findByBookingFn: func(ctx context.Context, bookingID uint) ([]models.Offer, error) {
			return []models.Offer{
				{ID: 1, BookingID: 1, Status: models.OfferPending, ExpiryDate: &past},
			}, nil
		},
		expirePendingFn: func(ctx context.Context, offerID uint) (bool, error) {
			// Zero rows matched: the offer is no longer pending.
			return false, nil
		},
		findByIDFn: func(ctx context.Context, id uint) (*models.Offer, error) {
			return &models.Offer{ID: 1, BookingID: 1, Status: models.OfferAccepted, ExpiryDate: &past}, nil
		},
	}

	svc := newOfferServiceForTest(offerRepo, &mockBookingRepo{}, &mockConversationRepo{}, &mockNotifier{})
	offers, err := svc.ListOffers(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, models.OfferAccepted, offers[0].Status, "the committed accept is never overwritten with expired")
}

func TestSubmitOffer_SecondPendingOfferRejected(t *testing.T) {
	convRepo := &mockConversationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Conversation, error) {
			return &models.Conversation{
				ID:            1,
				BookingID:     1,
				TravelerEmail: "amal@example.com",
				HostEmails:    pq.StringArray{"host@example.com"},
				Status:        models.ConversationOpen,
			}, nil
		},
	}
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: 1, TravelerEmail: "amal@example.com", Status: models.BookingPending}, nil
		},
	}
	offerRepo := &mockOfferRepo{
		hasPendingFn: func(ctx context.Context, bookingID uint, hostEmail string) (bool, error) {
			return true, nil
		},
	}

	svc := newOfferServiceForTest(offerRepo, bookingRepo, convRepo, &mockNotifier{})
	_, err := svc.SubmitOffer(context.Background(), hostUser(), SubmitOfferInput{
		ConversationID: 1,
		OfferType:      models.OfferTypeService,
		PriceBase:      100,
	})

	assert.ErrorIs(t, err, ErrOfferAlreadyStands)
}
