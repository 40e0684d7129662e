package models

type Doctor struct {
	ID             string   `json:"_id,omitempty"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	Specialization string   `json:"specialization"`
	LicenseNumber  string   `json:"licenseNumber"`
	DateOfBirth    string   `json:"dateOfBirth"`
	InstitutionIDs []string `json:"institutionIds"`
}
