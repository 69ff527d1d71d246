package email

import (
	"context"
	"fmt"
	"time"

	"partshelf/internal/catalog"
	"partshelf/internal/config"
	"partshelf/internal/logger"
	"partshelf/internal/models"

	"github.com/mailgun/mailgun-go/v5"
)

type Service struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	enabled     bool
}

func NewService(cfg *config.Config) *Service {
	enabled := cfg.MailgunDomain != "" && cfg.MailgunAPIKey != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.MailgunAPIKey)
	}

	return &Service{
		client:      client,
		domain:      cfg.MailgunDomain,
		senderEmail: cfg.MailgunSender,
		senderName:  cfg.MailgunSenderName,
		enabled:     enabled,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendOrderSheet emails a reorder sheet for one supplier: every listed item
// with its model number and default order quantity.
func (s *Service) SendOrderSheet(supplier *models.Supplier, items []*catalog.Item, recipient string) error {
	if !s.enabled {
		return fmt.Errorf("email service is not configured")
	}
	if len(items) == 0 {
		return fmt.Errorf("no items to order for supplier %s", supplier.Name)
	}

	subject := fmt.Sprintf("Order sheet - %s", supplier.Name)
	htmlBody := s.generateOrderSheetHTML(supplier, items)
	textBody := s.generateOrderSheetText(supplier, items)

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		textBody,
		recipient,
	)
	message.SetHTML(htmlBody)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send order sheet for %s: %w", supplier.Name, err)
	}

	logger.Info("order sheet sent", "supplier", supplier.Name, "items", len(items), "message_id", resp)
	return nil
}
