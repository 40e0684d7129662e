package access

import (
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/constvars"
)

type ResourceType string

const (
	ResourceInstitutions   ResourceType = constvars.ResourceInstitutions
	ResourceDoctors        ResourceType = constvars.ResourceDoctors
	ResourcePatients       ResourceType = constvars.ResourcePatients
	ResourceMedicalRecords ResourceType = constvars.ResourceMedicalRecords
	ResourceUsers          ResourceType = constvars.ResourceUsers
)

// Class is the zero-value-safe scope classification: an unknown role or
// resource resolves to Forbidden.
type Class int

const (
	Forbidden Class = iota
	Unrestricted
	OwnInstitutionOnly
)

func (c Class) String() string {
	switch c {
	case Unrestricted:
		return "unrestricted"
	case OwnInstitutionOnly:
		return "own_institution_only"
	default:
		return "forbidden"
	}
}

// Scope is what one identity may do with one resource type.
type Scope struct {
	Class         Class
	InstitutionID string
	ReadOnly      bool
}

func (s Scope) CanRead() bool {
	return s.Class != Forbidden
}

func (s Scope) CanMutate() bool {
	return s.CanRead() && !s.ReadOnly
}

// Allows is the scope predicate over a record's institution references.
func (s Scope) Allows(institutionIDs ...string) bool {
	switch s.Class {
	case Unrestricted:
		return true
	case OwnInstitutionOnly:
		for _, id := range institutionIDs {
			if id == s.InstitutionID {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Resolve maps an identity and a resource type to a scope. It only looks at
// the role and institution affiliation, so it is deterministic and safe to
// call from anywhere.
func Resolve(identity *models.Identity, resource ResourceType) Scope {
	if identity == nil {
		return Scope{Class: Forbidden}
	}

	switch identity.Role {
	case models.RoleSystemAdmin:
		switch resource {
		case ResourceInstitutions, ResourceDoctors, ResourcePatients, ResourceMedicalRecords, ResourceUsers:
			return Scope{Class: Unrestricted}
		}

	case models.RoleInstitutionAdmin:
		if !identity.HasInstitution() {
			return Scope{Class: Forbidden}
		}
		switch resource {
		case ResourceDoctors, ResourcePatients, ResourceMedicalRecords:
			return Scope{Class: OwnInstitutionOnly, InstitutionID: identity.InstitutionID}
		}

	case models.RoleDoctor:
		if resource == ResourcePatients && identity.HasInstitution() {
			return Scope{Class: OwnInstitutionOnly, InstitutionID: identity.InstitutionID, ReadOnly: true}
		}
	}
	return Scope{Class: Forbidden}
}
