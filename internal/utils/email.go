package utils

import "strings"

// NormalizeEmail приводит email к каноническому виду для хранения
// и сравнения: обрезает пробелы и опускает регистр
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
