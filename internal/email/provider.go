package email

// Provider определяет интерфейс для отправки email.
// Все вызовы со стороны сервисов выполняются best-effort: ошибка
// отправки логируется вызывающим и никогда не откатывает транзакцию.
type Provider interface {
	// Send отправляет произвольное email сообщение
	Send(email *Email) error

	// SendVerification отправляет письмо с кодом подтверждения email
	SendVerification(to, name, code string) error

	// SendPasswordReset отправляет письмо с кодом сброса пароля
	SendPasswordReset(to, name, code string) error

	// SendWelcome отправляет приветственное письмо после верификации
	SendWelcome(to, name string) error

	// Validate проверяет конфигурацию провайдера
	Validate() error

	// Close закрывает соединение с провайдером
	Close() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
