package store

import (
	"context"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/model"
)

func (s *gormStore) CreateSupportTicket(ctx context.Context, ticket *model.SupportTicket) error {
	if ticket.Name == "" || ticket.Email == "" || ticket.Message == "" {
		return apperr.Validation("name, email and message are required")
	}
	if err := validateEmail(ticket.Email); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return apperr.Internal("failed to store support ticket", err)
	}
	return nil
}
