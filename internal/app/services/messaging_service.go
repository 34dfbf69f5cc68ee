package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
)

// MessagingService handles the single thread each student shares with the
// admin team.
type MessagingService struct {
	messagingRepo *repositories.MessagingRepository
	studentRepo   *repositories.StudentRepository
	logger        zerolog.Logger
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(
	messagingRepo *repositories.MessagingRepository,
	studentRepo *repositories.StudentRepository,
	logger zerolog.Logger,
) *MessagingService {
	return &MessagingService{
		messagingRepo: messagingRepo,
		studentRepo:   studentRepo,
		logger:        logger,
	}
}

// SendToStudent appends a staff message to a student's thread, creating
// the conversation on first contact.
func (s *MessagingService) SendToStudent(ctx context.Context, studentID, senderUserID int64, req *dto.SendMessageRequest) (*models.Message, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	conversation, err := s.messagingRepo.GetOrCreateConversation(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.append(ctx, conversation.ID, senderUserID, req.Body, false)
}

// SendFromStudent appends a message from the student side of the thread
func (s *MessagingService) SendFromStudent(ctx context.Context, studentUserID int64, req *dto.SendMessageRequest) (*models.Message, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	conversation, err := s.messagingRepo.GetOrCreateConversation(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	return s.append(ctx, conversation.ID, studentUserID, req.Body, true)
}

func (s *MessagingService) append(ctx context.Context, conversationID, senderID int64, body string, fromStudent bool) (*models.Message, error) {
	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.messagingRepo.AppendMessage(ctx, message, fromStudent); err != nil {
		return nil, err
	}
	return message, nil
}

// GetConversation retrieves a conversation header by ID
func (s *MessagingService) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	return s.messagingRepo.GetConversationByID(ctx, id)
}

// GetStudentConversation retrieves the thread behind a student user
// account, creating it if the student has never messaged.
func (s *MessagingService) GetStudentConversation(ctx context.Context, studentUserID int64) (*models.Conversation, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	return s.messagingRepo.GetOrCreateConversation(ctx, student.ID)
}

// ListConversations returns all threads for the admin inbox, most
// recently active first.
func (s *MessagingService) ListConversations(ctx context.Context) ([]dto.ConversationResponse, error) {
	conversations, err := s.messagingRepo.ListConversations(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		resp := dto.ConversationResponse{
			ID:            c.ID,
			StudentID:     c.StudentID,
			LastMessageAt: c.LastMessageAt,
			Unread:        !c.AdminRead,
		}
		if c.Student != nil {
			resp.RegNo = c.Student.RegNo
			if c.Student.User != nil {
				resp.StudentName = c.Student.User.FullName()
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ListMessages returns a conversation's messages, oldest first, and marks
// the reading side's flag.
func (s *MessagingService) ListMessages(ctx context.Context, conversationID int64, studentSide bool) ([]dto.MessageResponse, error) {
	if _, err := s.messagingRepo.GetConversationByID(ctx, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.messagingRepo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.messagingRepo.MarkRead(ctx, conversationID, studentSide); err != nil {
		s.logger.Warn().Err(err).Int64("conversationID", conversationID).Msg("Failed to mark conversation read")
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp := dto.MessageResponse{
			ID:       m.ID,
			SenderID: m.SenderID,
			Body:     m.Body,
			SentAt:   m.SentAt,
		}
		if m.Sender != nil {
			resp.SenderName = m.Sender.FullName()
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
