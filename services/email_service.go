// File: /services/email_service.go
package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"

	"gigtrack-api/config"
	"gigtrack-api/metrics"
	"gigtrack-api/models"
	"gigtrack-api/utils"
)

// MailDialer sends composed messages. *gomail.Dialer satisfies it.
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	config *config.Config
	dialer MailDialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return NewEmailServiceWithDialer(cfg, dialer)
}

func NewEmailServiceWithDialer(cfg *config.Config, dialer MailDialer) *EmailService {
	return &EmailService{config: cfg, dialer: dialer}
}

// WeeklyReport is the content of the weekly goal email.
type WeeklyReport struct {
	Subject string
	Text    string
	HTML    string
}

func money(currency string, amount float64) string {
	return currency + " " + decimal.NewFromFloat(amount).StringFixed(2)
}

// BuildWeeklyReport renders the goal progress for the week starting at
// status.WeekStart.
func BuildWeeklyReport(user models.User, settings models.Settings, status metrics.GoalStatus, estimate metrics.FuelEstimate) WeeklyReport {
	currency := settings.CurrencyCode
	if currency == "" {
		currency = models.DefaultCurrencyCode
	}
	percent := decimal.NewFromFloat(status.Percent).Round(0).String()
	week := status.WeekStart.Format(models.DateLayout)

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", user.Name)
	fmt.Fprintf(&text, "Week starting %s\n\n", week)
	fmt.Fprintf(&text, "Earnings:        %s of %s (%s%%)\n", money(currency, status.Current), money(currency, status.Goal), percent)
	fmt.Fprintf(&text, "Business km:     %s\n", decimal.NewFromFloat(status.WeekBusinessKm).StringFixed(1))
	fmt.Fprintf(&text, "Estimated fuel:  %s\n", money(currency, status.WeekEstimatedFuel))
	fmt.Fprintf(&text, "Net:             %s\n", money(currency, status.WeekNet))
	fmt.Fprintf(&text, "Profit per km:   %s\n", money(currency, status.WeekProfitPerDistance))
	if estimate.IsEstimate {
		text.WriteString("\nFuel costs are estimated until you log two fill-ups.\n")
	}
	text.WriteString("\nGigTrack\n")

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Week starting %s</h2>
    <p>Hi %s,</p>
    <table cellpadding="6">
        <tr><td>Earnings</td><td><strong>%s</strong> of %s (%s%%)</td></tr>
        <tr><td>Business km</td><td>%s</td></tr>
        <tr><td>Estimated fuel</td><td>%s</td></tr>
        <tr><td>Net</td><td>%s</td></tr>
        <tr><td>Profit per km</td><td>%s</td></tr>
    </table>
    <p style="color: #666; font-size: 12px;">This is an automated message, please do not reply.</p>
</body>
</html>`,
		week, html.EscapeString(user.Name),
		money(currency, status.Current), money(currency, status.Goal), percent,
		decimal.NewFromFloat(status.WeekBusinessKm).StringFixed(1),
		money(currency, status.WeekEstimatedFuel),
		money(currency, status.WeekNet),
		money(currency, status.WeekProfitPerDistance),
	)

	return WeeklyReport{
		Subject: fmt.Sprintf("GigTrack weekly report: %s%% of your goal", percent),
		Text:    text.String(),
		HTML:    htmlBody,
	}
}

// SendWeeklyReport mails the weekly goal report to the user.
func (es *EmailService) SendWeeklyReport(user models.User, settings models.Settings, status metrics.GoalStatus, estimate metrics.FuelEstimate) error {
	if !utils.IsValidEmail(user.Email) {
		return fmt.Errorf("%w: %q is not a deliverable address", ErrInvalidInput, user.Email)
	}

	report := BuildWeeklyReport(user, settings, status, estimate)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", report.Subject)
	m.SetBody("text/plain", report.Text)
	m.AddAlternative("text/html", report.HTML)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send weekly report: %w", err)
	}

	logger.Info().Str("user_id", user.ID).Str("week", status.WeekStart.Format(models.DateLayout)).Msg("weekly report sent")
	return nil
}
