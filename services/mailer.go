package services

import (
	"fmt"

	"shop-app/config"
	"shop-app/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer() *Mailer {
	return &Mailer{
		host:     config.SMTPHost,
		port:     config.SMTPPort,
		username: config.SMTPUser,
		password: config.SMTPPassword,
		from:     config.MailFrom,
	}
}

func (m *Mailer) SendOrderConfirmation(email string, order *models.Order) error {
	if m.host == "" {
		// SMTP belum dikonfigurasi
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", fmt.Sprintf("Order %s confirmed", order.Code))
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Terima kasih, order <b>%s</b> sudah kami terima.</p><p>Total: %d</p>",
		order.Code, order.TotalAmount))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}

// SendOrderConfirmationAsync kirim email di background. Gagal kirim
// tidak menggagalkan order, cukup di-log.
func SendOrderConfirmationAsync(m *Mailer, email string, order *models.Order) {
	go func() {
		if err := m.SendOrderConfirmation(email, order); err != nil {
			logrus.WithField("order_code", order.Code).WithError(err).Warn("order confirmation mail failed")
		}
	}()
}
