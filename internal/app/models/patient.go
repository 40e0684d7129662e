package models

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

// Patient is keyed by PatientID, the human readable business key. ID is the
// backend's internal id and is never used as a join key.
type Patient struct {
	ID               string           `json:"_id,omitempty"`
	PatientID        string           `json:"patientId"`
	Name             string           `json:"name"`
	DateOfBirth      string           `json:"dateOfBirth"`
	Gender           string           `json:"gender"`
	BloodType        string           `json:"bloodType"`
	Contact          Contact          `json:"contact"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Allergies        string           `json:"allergies,omitempty"`
	InsuranceInfo    InsuranceInfo    `json:"insuranceInfo"`
	IsPregnant       bool             `json:"isPregnant"`
	InstitutionIDs   []string         `json:"institutionIds"`
}
