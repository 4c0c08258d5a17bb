package dto

import "jobboard_backend/internal/models"

// AdminCreateUserRequest - создание аккаунта администратором.
// Аккаунт создается сразу верифицированным.
type AdminCreateUserRequest struct {
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required"`
	FirstName string          `json:"first_name" binding:"required"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role" binding:"required,oneof=jobseeker employer admin"`
}

// UpdateUserStatusRequest - переключение active/deactivated
type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=active deactivated"`
}
