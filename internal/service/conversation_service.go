package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sawa-travel/marketplace/internal/models"
	"github.com/sawa-travel/marketplace/internal/repository"
	"github.com/sawa-travel/marketplace/pkg/retry"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationClosed   = errors.New("conversation is closed")
	ErrEmptyMessage         = errors.New("message body is empty")
	ErrInvalidClientKey     = errors.New("client key must be a UUID")
	ErrNoHosts              = errors.New("conversation needs at least one host")
)

type SendMessageInput struct {
	ConversationID uint
	ClientKey      string
	Body           string
	SourceLang     string
	Attachments    []string
}

type ConversationService interface {
	CreateConversation(ctx context.Context, travelerEmail string, bookingID uint, hostEmails []string) (*models.Conversation, error)
	GetConversation(ctx context.Context, userEmail string, conversationID uint) (*models.Conversation, error)
	ListConversations(ctx context.Context, userEmail string, bookingID uint) ([]models.Conversation, error)
	CloseConversation(ctx context.Context, travelerEmail string, conversationID uint) error
	SendMessage(ctx context.Context, senderEmail string, input SendMessageInput) (*models.Message, error)
	ListMessages(ctx context.Context, userEmail string, conversationID uint) ([]models.Message, error)
	MarkRead(ctx context.Context, readerEmail string, conversationID uint) error
}

type conversationService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	bookingRepo      repository.BookingRepository
	hostResponseRepo repository.HostResponseRepository
	notifier         NotificationService
	fetchRetries     int
}

func NewConversationService(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	bookingRepo repository.BookingRepository,
	hostResponseRepo repository.HostResponseRepository,
	notifier NotificationService,
	fetchRetries int,
) ConversationService {
	if fetchRetries < 1 {
		fetchRetries = 1
	}
	return &conversationService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		bookingRepo:      bookingRepo,
		hostResponseRepo: hostResponseRepo,
		notifier:         notifier,
		fetchRetries:     fetchRetries,
	}
}

// CreateConversation opens a chat channel binding the booking's traveler to
// one or more hosts, and seeds a pending_response classification row for
// each host that has none yet.
func (s *conversationService) CreateConversation(ctx context.Context, travelerEmail string, bookingID uint, hostEmails []string) (*models.Conversation, error) {
	if len(hostEmails) == 0 {
		return nil, ErrNoHosts
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.TravelerEmail != travelerEmail {
		return nil, ErrNotBookingOwner
	}
	if booking.Status != models.BookingPending {
		return nil, ErrBookingNotActive
	}

	conversation := &models.Conversation{
		BookingID:     bookingID,
		TravelerEmail: travelerEmail,
		HostEmails:    pq.StringArray(hostEmails),
		Status:        models.ConversationOpen,
	}

	// The conversation and its classification rows commit together: a host
	// the traveler reached out to must never be missing from the table.
	err = s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.conversationRepo.Create(ctx, tx, conversation); err != nil {
			return fmt.Errorf("create conversation: %w", err)
		}
		for _, host := range hostEmails {
			if err := s.hostResponseRepo.Upsert(ctx, tx, &models.HostResponse{
				BookingID: bookingID,
				HostEmail: host,
				Status:    models.HostPendingResponse,
			}); err != nil {
				return fmt.Errorf("seed host response for %s: %w", host, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return conversation, nil
}

func (s *conversationService) GetConversation(ctx context.Context, userEmail string, conversationID uint) (*models.Conversation, error) {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conversation.Participant(userEmail) {
		return nil, ErrNotParticipant
	}
	return conversation, nil
}

// ListConversations fetches the booking's conversations with a bounded
// backoff retry, to tolerate transient permission-propagation delay in the
// store right after a conversation is created.
func (s *conversationService) ListConversations(ctx context.Context, userEmail string, bookingID uint) ([]models.Conversation, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	var all []models.Conversation
	err = retry.WithBackoff(ctx, s.fetchRetries, func() error {
		var ferr error
		all, ferr = s.conversationRepo.FindByBookingID(ctx, bookingID)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	if booking.TravelerEmail == userEmail {
		return all, nil
	}
	visible := make([]models.Conversation, 0, len(all))
	for _, c := range all {
		if c.HasHost(userEmail) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// CloseConversation ends the negotiation channel. Only the traveler closes;
// hosts walk away by passing on the booking instead.
func (s *conversationService) CloseConversation(ctx context.Context, travelerEmail string, conversationID uint) error {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return ErrConversationNotFound
	}
	if conversation.TravelerEmail != travelerEmail {
		return ErrNotParticipant
	}
	if conversation.Status != models.ConversationOpen {
		return ErrConversationClosed
	}
	return s.conversationRepo.UpdateStatus(ctx, s.bookingRepo.GetDB(), conversationID, models.ConversationClosed)
}

// SendMessage appends a message. The client-generated key makes the write
// idempotent: a retried send returns the original row rather than a
// duplicate. Guards run before any write.
func (s *conversationService) SendMessage(ctx context.Context, senderEmail string, input SendMessageInput) (*models.Message, error) {
	if input.Body == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := uuid.Parse(input.ClientKey); err != nil {
		return nil, ErrInvalidClientKey
	}

	conversation, err := s.conversationRepo.FindByID(ctx, input.ConversationID)
	if err != nil {
		return nil, ErrConversationNotFound
	}
	if !conversation.Participant(senderEmail) {
		return nil, ErrNotParticipant
	}
	if conversation.Status != models.ConversationOpen {
		return nil, ErrConversationClosed
	}

	booking, err := s.bookingRepo.FindByID(ctx, conversation.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	// A cancelled or completed booking makes its conversations read-only
	// regardless of their own status.
	if !booking.Status.Active() {
		return nil, ErrBookingNotActive
	}

	lang := input.SourceLang
	if lang == "" {
		lang = "en"
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		ClientKey:      input.ClientKey,
		SenderEmail:    senderEmail,
		Body:           input.Body,
		SourceLang:     lang,
		Attachments:    pq.StringArray(input.Attachments),
		DeliveredTo:    pq.StringArray{senderEmail},
		ReadBy:         pq.StringArray{senderEmail},
	}
	stored, err := s.messageRepo.CreateIdempotent(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	// Only a fresh insert notifies; an idempotent replay stays quiet.
	if stored.ID == message.ID {
		for _, recipient := range s.recipients(conversation, senderEmail) {
			s.notifier.Notify(NotificationEvent{
				RecipientEmail: recipient,
				Kind:           models.NotifyNewMessage,
				Title:          "New message",
				Body:           fmt.Sprintf("New message from %s", senderEmail),
				BookingID:      &conversation.BookingID,
			})
		}
	}

	return stored, nil
}

func (s *conversationService) ListMessages(ctx context.Context, userEmail string, conversationID uint) ([]models.Message, error) {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, ErrConversationNotFound
	}
	if !conversation.Participant(userEmail) {
		return nil, ErrNotParticipant
	}
	return s.messageRepo.FindByConversationID(ctx, conversationID)
}

func (s *conversationService) MarkRead(ctx context.Context, readerEmail string, conversationID uint) error {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return ErrConversationNotFound
	}
	if !conversation.Participant(readerEmail) {
		return ErrNotParticipant
	}
	return s.messageRepo.MarkRead(ctx, conversationID, readerEmail)
}

func (s *conversationService) recipients(conversation *models.Conversation, senderEmail string) []string {
	var out []string
	if conversation.TravelerEmail != senderEmail {
		out = append(out, conversation.TravelerEmail)
	}
	for _, h := range conversation.HostEmails {
		if h != senderEmail {
			out = append(out, h)
		}
	}
	return out
}
