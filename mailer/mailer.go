package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/bluelinehq/police-records-api/config"
	templates "github.com/bluelinehq/police-records-api/templates/html"
)

const fromName = "Police Records Management"
const fromAddress = "no-reply@police-records.local"

// Mailer sends transactional mail through Sendgrid. With no API key
// configured it reports disabled and callers fall back to demo behavior.
type Mailer struct {
	apiKey string
}

// New builds a Mailer from the config.
func New(conf config.Config) *Mailer {
	return &Mailer{apiKey: conf.SendgridKey}
}

// Enabled reports whether mail delivery is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.apiKey != ""
}

func (m *Mailer) send(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail(fromName, fromAddress)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("sendgrid status %d", response.StatusCode)
	}
	return nil
}

// SendPasswordReset delivers a reset token to the account holder.
func (m *Mailer) SendPasswordReset(toEmail, firstName, token string) error {
	subject := "Password Reset Request - Police Records Management"
	htmlContent := templates.RenderPasswordResetEmail(firstName, token)
	plainText := "A password reset was requested for your account. Token: " + token
	return m.send(toEmail, firstName, subject, htmlContent, plainText)
}
