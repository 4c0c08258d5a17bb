package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// TemplateManager рендерит HTML шаблоны писем.
// Встроенные шаблоны можно переопределить файлами из templates_dir.
type TemplateManager struct {
	templates map[string]*template.Template
}

var builtinTemplates = map[string]string{
	"verification": `<html><body>
<p>Hi {{.UserName}},</p>
<p>Please confirm your email address to activate your account.</p>
<p><a href="{{.ActionURL}}">{{.ActionText}}</a></p>
<p>The link expires in 15 minutes. If you did not sign up, ignore this email.</p>
<p>— {{.FromName}}</p>
</body></html>`,

	"password_reset": `<html><body>
<p>Hi {{.UserName}},</p>
<p>We received a request to reset your password.</p>
<p><a href="{{.ActionURL}}">{{.ActionText}}</a></p>
<p>The link expires in 15 minutes. If you did not request this, ignore this email.</p>
<p>— {{.FromName}}</p>
</body></html>`,

	"welcome": `<html><body>
<p>Hi {{.UserName}},</p>
<p>Your email is confirmed and your account is ready. Welcome!</p>
<p>— {{.FromName}}</p>
</body></html>`,
}

// NewTemplateManager создает менеджер с встроенными шаблонами и,
// если dirPath не пуст, переопределяет их файлами *.html из директории
func NewTemplateManager(dirPath string) (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}

	for name, text := range builtinTemplates {
		t, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse builtin template %q: %w", name, err)
		}
		tm.templates[name] = t
	}

	if dirPath != "" {
		if err := tm.loadDir(dirPath); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	t, ok := tm.templates[templateName]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", templateName)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %q: %w", templateName, err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) loadDir(dirPath string) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Директория опциональна, работаем на встроенных шаблонах
			return nil
		}
		return fmt.Errorf("failed to read templates dir %s: %w", dirPath, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".html")
		t, err := template.ParseFiles(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}
		tm.templates[name] = t
	}
	return nil
}
