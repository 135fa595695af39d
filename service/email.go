package service

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"fintrack/config"
	"fintrack/stats"

	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled is returned when SMTP is not configured
var ErrEmailDisabled = errors.New("email service disabled, set email.enabled=true")

// EmailService sends notification emails over SMTP
type EmailService struct {
	cfg   *config.EmailConfig
	stats config.StatsConfig
	send  func(m *gomail.Message) error
}

// NewEmailService creates an email service
func NewEmailService(cfg *config.EmailConfig, statsCfg config.StatsConfig) *EmailService {
	s := &EmailService{cfg: cfg, stats: statsCfg}
	s.send = func(m *gomail.Message) error {
		d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
		return d.DialAndSend(m)
	}
	return s
}

var budgetAlertTemplate = template.Must(template.New("alert").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background: #f5f5f5; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; padding: 30px;">
    <h2 style="color: #ef4444;">Budget exceeded: {{.Category}}</h2>
    <p>Hello <strong>{{.Username}}</strong>,</p>
    <p>You have spent <strong>{{.Spent}}</strong> of your {{.Period}} budget of <strong>{{.Amount}}</strong>
       ({{printf "%.1f" .Percent}}%).</p>
    <p style="color: #6c757d; font-size: 12px;">This message was sent automatically by fintrack.</p>
  </div>
</body>
</html>`))

type budgetAlertView struct {
	Username string
	Category string
	Period   string
	Spent    string
	Amount   string
	Percent  float64
}

// BudgetAlertBody renders the alert email for one over-limit budget
func (s *EmailService) BudgetAlertBody(username string, status stats.BudgetStatus) (string, error) {
	lang, err := language.Parse(s.stats.Locale)
	if err != nil {
		lang = language.French
	}
	unit := stats.ParseCurrency(s.stats.Currency)
	view := budgetAlertView{
		Username: username,
		Category: status.Budget.CategoryName,
		Period:   string(status.Budget.Period),
		Spent:    stats.FormatCurrency(status.Spent, lang, unit),
		Amount:   stats.FormatCurrency(status.Budget.Amount, lang, unit),
		Percent:  status.UtilizationPercent,
	}
	var buf bytes.Buffer
	if err := budgetAlertTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render alert: %w", err)
	}
	return buf.String(), nil
}

// SendBudgetAlert notifies a user that a budget went over its allowance
func (s *EmailService) SendBudgetAlert(toEmail, username string, status stats.BudgetStatus) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}
	body, err := s.BudgetAlertBody(username, status)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("[fintrack] Budget exceeded: %s", status.Budget.CategoryName)
	return s.sendEmail(toEmail, subject, body)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
