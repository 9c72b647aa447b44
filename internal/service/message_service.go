package service

import (
	"context"

	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/response"
)

// MessageService handles professor-to-student messaging.
type MessageService struct {
	messageRepo *repository.MessageRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo *repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Send delivers a message to the listed students.
func (s *MessageService) Send(ctx context.Context, senderID int, req *model.SendMessageRequest) (*model.Message, error) {
	m := &model.Message{
		SenderID: senderID,
		Subject:  req.Subject,
		Body:     req.Body,
	}
	if err := s.messageRepo.Create(ctx, m, req.RecipientIDs); err != nil {
		return nil, err
	}
	return m, nil
}

// Inbox retrieves a student's messages, newest first.
func (s *MessageService) Inbox(ctx context.Context, studentID, page, perPage int) ([]model.StudentMessage, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)
	messages, total, err := s.messageRepo.ListForStudentPaginated(ctx, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if messages == nil {
		messages = []model.StudentMessage{}
	}
	return messages, paginationFor(page, perPage, total), nil
}

// Sent retrieves a professor's sent messages.
func (s *MessageService) Sent(ctx context.Context, professorID, page, perPage int) ([]model.Message, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)
	messages, total, err := s.messageRepo.ListSentPaginated(ctx, professorID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return messages, paginationFor(page, perPage, total), nil
}

// MarkRead stamps a message as read by the student. Reports false when the
// message was not addressed to them.
func (s *MessageService) MarkRead(ctx context.Context, messageID, studentID int) (bool, error) {
	return s.messageRepo.MarkRead(ctx, messageID, studentID)
}

// UnreadCount returns the student's unread message count.
func (s *MessageService) UnreadCount(ctx context.Context, studentID int) (int, error) {
	return s.messageRepo.UnreadCount(ctx, studentID)
}
