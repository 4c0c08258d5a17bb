package main

import (
	"jobboard_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env опционален: в production переменные задает окружение
	_ = godotenv.Load()

	app.Run()
}
