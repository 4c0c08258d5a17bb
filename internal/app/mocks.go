package app

import "jobboard_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct {
	Sent []email.Email
}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	m.Sent = append(m.Sent, *msg)
	return nil
}

func (m *MockEmailProvider) SendVerification(to, name, code string) error {
	return m.Send(&email.Email{To: []string{to}, Subject: "Verify your email", Body: code})
}

func (m *MockEmailProvider) SendPasswordReset(to, name, code string) error {
	return m.Send(&email.Email{To: []string{to}, Subject: "Reset your password", Body: code})
}

func (m *MockEmailProvider) SendWelcome(to, name string) error {
	return m.Send(&email.Email{To: []string{to}, Subject: "Welcome"})
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }
