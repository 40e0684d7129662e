package requests

import "medicalcv-service/internal/app/models"

type Doctor struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	Specialization string   `json:"specialization" validate:"required"`
	LicenseNumber  string   `json:"licenseNumber" validate:"required"`
	DateOfBirth    string   `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	InstitutionIDs []string `json:"institutionIds"`
}

func (p *Doctor) ToModel() models.Doctor {
	return models.Doctor{
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		Specialization: p.Specialization,
		LicenseNumber:  p.LicenseNumber,
		DateOfBirth:    p.DateOfBirth,
		InstitutionIDs: p.InstitutionIDs,
	}
}
