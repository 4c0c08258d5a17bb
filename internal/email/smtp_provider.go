package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх SMTP (gomail)
type SMTPProvider struct {
	config      *SMTPConfig
	dialer      *gomail.Dialer
	renderer    TemplateRenderer
	frontendURL string
}

// NewSMTPProvider создает новый SMTP провайдер.
// frontendURL используется для построения ссылок в письмах.
func NewSMTPProvider(config *SMTPConfig, renderer TemplateRenderer, frontendURL string) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPProvider{
		config:      config,
		dialer:      dialer,
		renderer:    renderer,
		frontendURL: frontendURL,
	}, nil
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

// SendVerification отправляет письмо с кодом подтверждения email
func (p *SMTPProvider) SendVerification(to, name, code string) error {
	return p.sendTemplate(to, "Confirm your email", "verification", TemplateData{
		UserName:   name,
		ActionURL:  fmt.Sprintf("%s/verify-email?code=%s", p.frontendURL, code),
		ActionText: "Confirm email",
		FromName:   p.config.FromName,
	})
}

// SendPasswordReset отправляет письмо с кодом сброса пароля
func (p *SMTPProvider) SendPasswordReset(to, name, code string) error {
	return p.sendTemplate(to, "Reset your password", "password_reset", TemplateData{
		UserName:   name,
		ActionURL:  fmt.Sprintf("%s/reset-password?code=%s", p.frontendURL, code),
		ActionText: "Reset password",
		FromName:   p.config.FromName,
	})
}

// SendWelcome отправляет приветственное письмо
func (p *SMTPProvider) SendWelcome(to, name string) error {
	return p.sendTemplate(to, "Welcome aboard", "welcome", TemplateData{
		UserName: name,
		FromName: p.config.FromName,
	})
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	return p.config.Validate()
}

// Close закрывает соединение (gomail открывает его на каждую отправку)
func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) sendTemplate(to, subject, templateName string, data TemplateData) error {
	data.Subject = subject

	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template %q: %w", templateName, err)
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}
