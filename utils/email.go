package utils

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"brew-commerce/models"
)

// EmailService sends transactional mail through SendGrid.
type EmailService struct {
	client    *sendgrid.Client
	from      *mail.Email
	storeName string
}

func NewEmailService(apiKey, fromName, fromAddr, storeName string) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		from:      mail.NewEmail(fromName, fromAddr),
		storeName: storeName,
	}
}

// Send delivers one HTML email.
func (es *EmailService) Send(toEmail, subject, htmlContent string) error {
	message := mail.NewSingleEmail(es.from, subject, mail.NewEmail("", toEmail), htmlContent, htmlContent)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmation mails the itemized order confirmation.
func (es *EmailService) SendOrderConfirmation(toEmail string, order *models.Order) error {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "&bull; %s (Qty: %d) - &#8377;%.2f<br>",
			item.Title, item.Quantity, item.Price*float64(item.Quantity))
	}

	name := order.Username
	if name == "" {
		name = "Valued Customer"
	}

	htmlContent := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>Dear <strong>%s</strong>,</p>
  <p>Thank you for shopping with <strong>%s</strong>! Your order has been successfully placed.</p>
  <h2 style="text-align:center;">Order Details</h2>
  <p><strong>Order ID:</strong> %s</p>
  <p><strong>Order Date:</strong> %s</p>
  <p><strong>Payment Method:</strong> %s</p>
  <p><strong>Items Ordered:</strong></p>
  <div style="margin: 10px 0 20px 0; padding-left: 10px; border-left: 3px solid #00704A;">%s</div>
  <p style="font-size: 18px; color: #00704A;"><strong>Total Amount:</strong> &#8377;%.2f</p>
  <h2 style="text-align:center;">Delivery Address</h2>
  <p style="white-space: pre-line; background-color: #f9f9f9; padding: 15px; border-radius: 5px;">%s</p>
  <p>Your order is now being processed, and we will notify you once it has been shipped.</p>
  <p>Thank you for choosing <strong>%s</strong>. We look forward to serving you again!</p>
</div>`,
		name,
		es.storeName,
		order.OrderID,
		order.CreatedAt.Format("January 2, 2006"),
		order.PaymentMethod,
		items.String(),
		order.Total,
		order.Address,
		es.storeName,
	)

	subject := "Order Confirmed - Thank You for Your Purchase!"
	return es.Send(toEmail, subject, htmlContent)
}

// SendStatusUpdate mails the customer when an admin transitions their order.
func (es *EmailService) SendStatusUpdate(toEmail string, order *models.Order) error {
	name := order.Username
	if name == "" {
		name = "Valued Customer"
	}

	htmlContent := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>Dear <strong>%s</strong>,</p>
  <p>The status of your order <strong>%s</strong> has been updated to
  <strong style="color: #00704A;">%s</strong>.</p>
  <p>Thank you for shopping with <strong>%s</strong>.</p>
</div>`,
		name, order.OrderID, order.Status, es.storeName)

	subject := fmt.Sprintf("Order %s Status Update - %s", order.OrderID, order.Status)
	return es.Send(toEmail, subject, htmlContent)
}

// SendOTP mails a password-reset verification code.
func (es *EmailService) SendOTP(toEmail, code string) error {
	subject := fmt.Sprintf("Password Reset OTP - %s", es.storeName)
	htmlContent := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #00704A; text-align: center;">%s Password Reset</h2>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0;">
    <p>Your verification code is:</p>
    <div style="background: #00704A; color: white; padding: 15px; border-radius: 6px; font-size: 24px; font-weight: bold; display: inline-block;">%s</div>
  </div>
  <p style="color: #666; font-size: 14px;">This code expires in 5 minutes. Don't share it with anyone.</p>
</div>`,
		es.storeName, code)

	return es.Send(toEmail, subject, htmlContent)
}
