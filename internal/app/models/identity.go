package models

// Role values are the backend's wire values.
type Role string

const (
	RoleSystemAdmin      Role = "admin"
	RoleInstitutionAdmin Role = "admin_institutions"
	RoleDoctor           Role = "doctor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSystemAdmin, RoleInstitutionAdmin, RoleDoctor:
		return true
	}
	return false
}

// Identity is the authenticated operator of one dashboard session.
type Identity struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	InstitutionID string `json:"institutionId,omitempty"`
}

func (i *Identity) HasInstitution() bool {
	return i != nil && i.InstitutionID != ""
}
