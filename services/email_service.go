package services

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
	"github.com/shopspring/decimal"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderConfirmationEmail sends the order summary to the customer with a
// copy to the shop inbox.
func (es *EmailService) SendOrderConfirmationEmail(order *structs.OrderRequest) error {
	totals := structs.SummarizeCart(order.CartItems)

	var itemsBuilder strings.Builder
	for i := range order.CartItems {
		item := &order.CartItems[i]
		lineTotal := item.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&itemsBuilder, "<li>%d&times; %s &mdash; %s %s</li>",
			item.Quantity, html.EscapeString(item.Title), lineTotal.StringFixed(2), totals.Currency)
	}

	name := strings.TrimSpace(order.BillingForm.FirstName + " " + order.BillingForm.LastName)

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #B22222; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.order-details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Спасибо за ваш заказ!</h1>
				</div>
				<div class="content">
					<p>Здравствуйте, %s!</p>
					<p>Мы получили ваш заказ. Детали ниже.</p>

					<div class="order-details">
						<h3>Номер заказа: <strong>%s</strong></h3>
						<h4>Состав заказа:</h4>
						<ul>%s</ul>
						<p><strong>Итого: %s %s</strong></p>
					</div>

					<p>Мы свяжемся с вами для подтверждения доставки и оплаты.</p>
				</div>

				<div class="footer">
					<p>KonigFood | Домашняя еда с доставкой</p>
				</div>
			</div>
		</body>
		</html>
	`, html.EscapeString(name), html.EscapeString(order.OrderID), itemsBuilder.String(), totals.Amount, totals.Currency)

	subject := fmt.Sprintf("Подтверждение заказа %s", order.OrderID)

	return es.SendEmail([]string{order.BillingForm.Email, es.cfg.Email.ShopRecipient}, subject, emailBody)
}

// SendContactEmail forwards a storefront contact form message to the shop.
func (es *EmailService) SendContactEmail(contact *structs.ContactRequest) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.content { padding: 20px; background-color: #f9f9f9; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="content">
					<h2>Новое сообщение с сайта</h2>
					<p><strong>Имя:</strong> %s</p>
					<p><strong>Email:</strong> %s</p>
					<p><strong>Сообщение:</strong></p>
					<p>%s</p>
				</div>
			</div>
		</body>
		</html>
	`, html.EscapeString(contact.Name), html.EscapeString(contact.Email), html.EscapeString(contact.Message))

	subject := fmt.Sprintf("Сообщение с сайта от %s", contact.Name)

	return es.SendEmail([]string{es.cfg.Email.ShopRecipient}, subject, emailBody)
}
