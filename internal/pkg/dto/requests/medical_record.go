package requests

import "medicalcv-service/internal/app/models"

type MedicalRecord struct {
	PatientID     string                `json:"patientId" validate:"required"`
	DoctorID      string                `json:"doctorId" validate:"required"`
	InstitutionID string                `json:"institutionId"`
	VisitInfo     VisitInfo             `json:"visitInfo"`
	ClinicalData  models.ClinicalData   `json:"clinicalData"`
	Prescriptions []models.Prescription `json:"prescriptions"`
	LabResults    []models.LabResult    `json:"labResults"`
	Attachments   []models.Attachment   `json:"attachments"`
}

type VisitInfo struct {
	Type        string `json:"type" validate:"required,oneof=consultation emergency follow-up surgery lab-test immunization"`
	Date        string `json:"date" validate:"required"`
	IsEmergency bool   `json:"isEmergency"`
}

func (p *MedicalRecord) ToModel() models.MedicalRecord {
	return models.MedicalRecord{
		PatientID:     p.PatientID,
		DoctorID:      p.DoctorID,
		InstitutionID: p.InstitutionID,
		VisitInfo: models.VisitInfo{
			Type:        models.VisitType(p.VisitInfo.Type),
			Date:        p.VisitInfo.Date,
			IsEmergency: p.VisitInfo.IsEmergency,
		},
		ClinicalData:  p.ClinicalData,
		Prescriptions: p.Prescriptions,
		LabResults:    p.LabResults,
		Attachments:   p.Attachments,
	}
}
