package email

import (
	"context"
	"fmt"
	"time"

	"otakumart/internal/config"
	"otakumart/internal/logger"
	"otakumart/internal/models"

	"github.com/mailgun/mailgun-go/v5"
)

// Service sends transactional mail through Mailgun. When the domain or API
// key is missing the service stays disabled and every send reports an error
// the caller can log and ignore.
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
		senderEmail: cfg.MailgunSenderEmail,
		senderName:  cfg.MailgunSenderName,
		enabled:     enabled,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

func (s *Service) send(to, subject, textBody, htmlBody string) error {
	if !s.enabled {
		return fmt.Errorf("email service is not configured")
	}

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		textBody,
		to,
	)
	message.SetHTML(htmlBody)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	logger.Info("Email sent", "email", to, "message_id", resp)
	return nil
}

// SendWelcomeEmail greets a freshly registered account.
func (s *Service) SendWelcomeEmail(user models.User) error {
	subject := fmt.Sprintf("Welcome to Otakumart, %s!", user.Username)
	return s.send(user.Email, subject, welcomeText(user), welcomeHTML(user))
}

// SendOrderConfirmation mails the order summary after checkout.
func (s *Service) SendOrderConfirmation(user models.User, order models.Order) error {
	subject := fmt.Sprintf("Your Otakumart order %s", order.ID)
	return s.send(user.Email, subject, orderText(user, order), orderHTML(user, order))
}
