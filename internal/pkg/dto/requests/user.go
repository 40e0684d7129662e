package requests

import "medicalcv-service/internal/app/models"

type User struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Role          string `json:"role" validate:"required,oneof=admin_institutions doctor"`
	InstitutionID string `json:"institutionId"`
}

func (p *User) ToModel() models.User {
	return models.User{
		Name:          p.Name,
		Email:         p.Email,
		Role:          models.Role(p.Role),
		InstitutionID: p.InstitutionID,
	}
}
