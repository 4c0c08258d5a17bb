package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateCode генерирует случайный одноразовый код
// (верификация email, сброс пароля)
func GenerateCode() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибку
		panic(err)
	}
	return hex.EncodeToString(b)
}

// CodeExpiry возвращает абсолютное время истечения кода
func CodeExpiry(ttl time.Duration) *time.Time {
	exp := time.Now().Add(ttl)
	return &exp
}
