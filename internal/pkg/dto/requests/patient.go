package requests

import "medicalcv-service/internal/app/models"

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type InsuranceInfo struct {
	Provider     string `json:"provider"`
	Type         string `json:"type"`
	PolicyNumber string `json:"policyNumber"`
}

// Patient carries no patientId: the backend assigns it and it never changes.
type Patient struct {
	Name             string           `json:"name" validate:"required,max=200"`
	DateOfBirth      string           `json:"dateOfBirth" validate:"required"`
	Gender           string           `json:"gender" validate:"required,oneof=male female"`
	BloodType        string           `json:"bloodType" validate:"blood_type"`
	Contact          Contact          `json:"contact"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Allergies        string           `json:"allergies"`
	InsuranceInfo    InsuranceInfo    `json:"insuranceInfo"`
	IsPregnant       bool             `json:"isPregnant"`
	InstitutionIDs   []string         `json:"institutionIds"`
}

func (p *Patient) ToModel() models.Patient {
	return models.Patient{
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		BloodType:   p.BloodType,
		Contact:     p.Contact.toModel(),
		EmergencyContact: models.EmergencyContact{
			Name:         p.EmergencyContact.Name,
			Phone:        p.EmergencyContact.Phone,
			Relationship: p.EmergencyContact.Relationship,
		},
		Allergies: p.Allergies,
		InsuranceInfo: models.InsuranceInfo{
			Provider:     p.InsuranceInfo.Provider,
			Type:         p.InsuranceInfo.Type,
			PolicyNumber: p.InsuranceInfo.PolicyNumber,
		},
		IsPregnant:     p.IsPregnant,
		InstitutionIDs: p.InstitutionIDs,
	}
}
