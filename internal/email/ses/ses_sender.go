package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendPaymentReceipt(ctx context.Context, toEmail, toName string, bill *domain.Bill) error {
	subject := fmt.Sprintf("Payment received for %s", bill.Month)
	htmlBody := buildReceiptHTML(toName, bill)
	textBody := fmt.Sprintf("Hi %s,\n\nWe received your rent payment of %s for %s. Thank you.\n\nRentdesk",
		toName, bill.TotalAmount, bill.Month)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendBillNotice(ctx context.Context, toEmail, toName string, bill *domain.Bill) error {
	subject := fmt.Sprintf("Rent bill for %s", bill.Month)
	htmlBody := buildNoticeHTML(toName, bill)
	textBody := fmt.Sprintf("Hi %s,\n\nYour rent bill of %s for %s is due on %s.\n\nRentdesk",
		toName, bill.TotalAmount, bill.Month, bill.DueDate.Format("2 January 2006"))

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReceiptHTML(name string, bill *domain.Bill) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Payment received</h2>
  <p>Hi %s,</p>
  <p>We received your rent payment of <strong>%s</strong> for <strong>%s</strong>. Thank you.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Rentdesk - Property Management</p>
</body>
</html>`, name, bill.TotalAmount, bill.Month)
}

func buildNoticeHTML(name string, bill *domain.Bill) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your rent bill for %s</h2>
  <p>Hi %s,</p>
  <p>Your rent bill of <strong>%s</strong> is due on <strong>%s</strong>.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Rentdesk - Property Management</p>
</body>
</html>`, bill.Month, name, bill.TotalAmount, bill.DueDate.Format("2 January 2006"))
}
