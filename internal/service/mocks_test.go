package service

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn       func(ctx context.Context, booking *models.Booking) error
	findByIDFn     func(ctx context.Context, id uint) (*models.Booking, error)
	findTravelerFn func(ctx context.Context, travelerEmail string, status *models.BookingStatus) ([]models.Booking, error)
	updateStatusFn func(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	confirmFn      func(ctx context.Context, tx *gorm.DB, bookingID uint, offer *models.Offer) error
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	return m.createFn(ctx, booking)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByTraveler(ctx context.Context, travelerEmail string, status *models.BookingStatus) ([]models.Booking, error) {
	return m.findTravelerFn(ctx, travelerEmail, status)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, bookingID, status)
	}
	return nil
}
func (m *mockBookingRepo) Confirm(ctx context.Context, tx *gorm.DB, bookingID uint, offer *models.Offer) error {
	if m.confirmFn != nil {
		return m.confirmFn(ctx, tx, bookingID, offer)
	}
	return nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// Transaction runs the closure directly; the repo mocks ignore the tx handle.
func (m *mockBookingRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock OfferRepository ---

type mockOfferRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, offer *models.Offer) error
	findByIDFn      func(ctx context.Context, id uint) (*models.Offer, error)
	findByBookingFn func(ctx context.Context, bookingID uint) ([]models.Offer, error)
	findPendingFn   func(ctx context.Context, tx *gorm.DB, bookingID, exceptOfferID uint) ([]models.Offer, error)
	hasPendingFn    func(ctx context.Context, bookingID uint, hostEmail string) (bool, error)
	updateStatusFn  func(ctx context.Context, tx *gorm.DB, offerID uint, status models.OfferStatus) error
	expirePendingFn func(ctx context.Context, offerID uint) (bool, error)
}

func (m *mockOfferRepo) Create(ctx context.Context, tx *gorm.DB, offer *models.Offer) error {
	return m.createFn(ctx, tx, offer)
}
func (m *mockOfferRepo) FindByID(ctx context.Context, id uint) (*models.Offer, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockOfferRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Offer, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockOfferRepo) FindByBookingID(ctx context.Context, bookingID uint) ([]models.Offer, error) {
	return m.findByBookingFn(ctx, bookingID)
}
func (m *mockOfferRepo) FindPendingExcept(ctx context.Context, tx *gorm.DB, bookingID, exceptOfferID uint) ([]models.Offer, error) {
	if m.findPendingFn != nil {
		return m.findPendingFn(ctx, tx, bookingID, exceptOfferID)
	}
	return nil, nil
}
func (m *mockOfferRepo) HasPending(ctx context.Context, tx *gorm.DB, bookingID uint, hostEmail string) (bool, error) {
	if m.hasPendingFn != nil {
		return m.hasPendingFn(ctx, bookingID, hostEmail)
	}
	return false, nil
}
func (m *mockOfferRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, offerID uint, status models.OfferStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, offerID, status)
	}
	return nil
}
func (m *mockOfferRepo) ExpireIfPending(ctx context.Context, tx *gorm.DB, offerID uint) (bool, error) {
	if m.expirePendingFn != nil {
		return m.expirePendingFn(ctx, offerID)
	}
	return true, nil
}

// --- Mock ConversationRepository ---

type mockConversationRepo struct {
	createFn        func(ctx context.Context, conversation *models.Conversation) error
	findByIDFn      func(ctx context.Context, id uint) (*models.Conversation, error)
	findByBookingFn func(ctx context.Context, bookingID uint) ([]models.Conversation, error)
	deleteExclFn    func(ctx context.Context, tx *gorm.DB, bookingID uint, hostEmail string) error
}

func (m *mockConversationRepo) Create(ctx context.Context, tx *gorm.DB, conversation *models.Conversation) error {
	if m.createFn != nil {
		return m.createFn(ctx, conversation)
	}
	return nil
}
func (m *mockConversationRepo) FindByID(ctx context.Context, id uint) (*models.Conversation, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockConversationRepo) FindByBookingID(ctx context.Context, bookingID uint) ([]models.Conversation, error) {
	return m.findByBookingFn(ctx, bookingID)
}
func (m *mockConversationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, conversationID uint, status models.ConversationStatus) error {
	return nil
}
func (m *mockConversationRepo) DeleteExcludingHost(ctx context.Context, tx *gorm.DB, bookingID uint, hostEmail string) error {
	if m.deleteExclFn != nil {
		return m.deleteExclFn(ctx, tx, bookingID, hostEmail)
	}
	return nil
}

// --- Mock MessageRepository ---

type mockMessageRepo struct {
	createFn   func(ctx context.Context, message *models.Message) (*models.Message, error)
	findFn     func(ctx context.Context, conversationID uint) ([]models.Message, error)
	markReadFn func(ctx context.Context, conversationID uint, readerEmail string) error
}

func (m *mockMessageRepo) CreateIdempotent(ctx context.Context, message *models.Message) (*models.Message, error) {
	return m.createFn(ctx, message)
}
func (m *mockMessageRepo) FindByConversationID(ctx context.Context, conversationID uint) ([]models.Message, error) {
	return m.findFn(ctx, conversationID)
}
func (m *mockMessageRepo) MarkRead(ctx context.Context, conversationID uint, readerEmail string) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, conversationID, readerEmail)
	}
	return nil
}

// --- Mock HostResponseRepository ---

type mockHostResponseRepo struct {
	upsertFn     func(ctx context.Context, tx *gorm.DB, response *models.HostResponse) error
	findFn       func(ctx context.Context, bookingID uint) ([]models.HostResponse, error)
	reclassifyFn func(ctx context.Context, tx *gorm.DB, bookingID uint, winnerEmail string) error
}

func (m *mockHostResponseRepo) Upsert(ctx context.Context, tx *gorm.DB, response *models.HostResponse) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, tx, response)
	}
	return nil
}
func (m *mockHostResponseRepo) FindByBookingID(ctx context.Context, bookingID uint) ([]models.HostResponse, error) {
	return m.findFn(ctx, bookingID)
}
func (m *mockHostResponseRepo) ReclassifyOnAccept(ctx context.Context, tx *gorm.DB, bookingID uint, winnerEmail string) error {
	if m.reclassifyFn != nil {
		return m.reclassifyFn(ctx, tx, bookingID, winnerEmail)
	}
	return nil
}

// --- Mock CityRepository ---

type mockCityRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.City, error)
}

func (m *mockCityRepo) FindByID(ctx context.Context, id uint) (*models.City, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCityRepo) FindAll(ctx context.Context) ([]models.City, error) { return nil, nil }
func (m *mockCityRepo) SearchByName(ctx context.Context, prefix string) ([]models.City, error) {
	return nil, nil
}

// --- Mock NotificationService ---

type mockNotifier struct {
	events []NotificationEvent
}

func (m *mockNotifier) Notify(event NotificationEvent) {
	m.events = append(m.events, event)
}
func (m *mockNotifier) List(ctx context.Context, recipientEmail string, unreadOnly bool) ([]models.Notification, error) {
	return nil, nil
}
func (m *mockNotifier) MarkRead(ctx context.Context, notificationID uint, recipientEmail string) error {
	return nil
}

// --- Mock AIRepository ---

type mockAIRepo struct {
	getCachedFn func(ctx context.Context, promptHash string) (*models.AICache, error)
	putCachedFn func(ctx context.Context, cache *models.AICache) error
	logFn       func(ctx context.Context, entry *models.AILog) error
}

func (m *mockAIRepo) GetCached(ctx context.Context, promptHash string) (*models.AICache, error) {
	if m.getCachedFn != nil {
		return m.getCachedFn(ctx, promptHash)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockAIRepo) PutCached(ctx context.Context, cache *models.AICache) error {
	if m.putCachedFn != nil {
		return m.putCachedFn(ctx, cache)
	}
	return nil
}
func (m *mockAIRepo) Log(ctx context.Context, entry *models.AILog) error {
	if m.logFn != nil {
		return m.logFn(ctx, entry)
	}
	return nil
}
