package models

type InstitutionType string

const (
	InstitutionTypeHospital InstitutionType = "hospital"
	InstitutionTypeClinic   InstitutionType = "clinic"
)

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Institution struct {
	ID       string          `json:"_id,omitempty"`
	Name     string          `json:"name"`
	Type     InstitutionType `json:"type"`
	Contact  Contact         `json:"contact"`
	Services []string        `json:"services"`
}
