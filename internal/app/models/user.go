package models

// User is an administrative account, distinct from patients and doctors.
type User struct {
	ID            string `json:"_id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	InstitutionID string `json:"institutionId,omitempty"`
}
