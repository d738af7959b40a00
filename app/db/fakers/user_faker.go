package fakers

import (
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

func UserFaker(role string) *models.User {
	return &models.User{
		ID:         uuid.New().String(),
		Name:       faker.Name(),
		Email:      strings.ToLower(uuid.NewString()[:8] + "." + faker.Email()),
		Role:       role,
		IsVerified: role == models.RoleSeller,
	}
}
