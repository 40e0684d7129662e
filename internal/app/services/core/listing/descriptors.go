package listing

import (
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/core/access"
	"medicalcv-service/internal/pkg/constvars"
	"net/url"
)

// Category keys accepted as list query parameters.
const (
	CategoryInstitutionType = "type"
	CategorySpecialization  = "specialization"
	CategoryGender          = "gender"
	CategoryBloodType       = "bloodType"
	CategoryVisitType       = "visitType"
	CategoryRole            = "role"
)

func InstitutionDescriptor() Descriptor[models.Institution] {
	return Descriptor[models.Institution]{
		Resource:    access.ResourceInstitutions,
		ID:          func(i models.Institution) string { return i.ID },
		DisplayName: func(i models.Institution) string { return i.Name },
		SearchFields: func(i models.Institution) []string {
			return []string{i.Name, i.Contact.Address, i.Contact.Email}
		},
		Categories: map[string]func(models.Institution) string{
			CategoryInstitutionType: func(i models.Institution) string { return string(i.Type) },
		},
		Preserve: func(existing, payload models.Institution) models.Institution {
			payload.ID = existing.ID
			return payload
		},
	}
}

func DoctorDescriptor() Descriptor[models.Doctor] {
	return Descriptor[models.Doctor]{
		Resource:     access.ResourceDoctors,
		ID:           func(d models.Doctor) string { return d.ID },
		DisplayName:  func(d models.Doctor) string { return d.Name },
		Institutions: func(d models.Doctor) []string { return d.InstitutionIDs },
		SearchFields: func(d models.Doctor) []string {
			return []string{d.Name, d.Email, d.LicenseNumber, d.Specialization}
		},
		Categories: map[string]func(models.Doctor) string{
			CategorySpecialization: func(d models.Doctor) string { return d.Specialization },
		},
		ScopeQuery: func(scope access.Scope, query url.Values) {
			query.Set(constvars.QueryParamInstitutionIDs, scope.InstitutionID)
		},
		AssignInstitution: func(d models.Doctor, institutionID string) models.Doctor {
			d.InstitutionIDs = []string{institutionID}
			return d
		},
		KeepInstitutions: func(existing, payload models.Doctor) models.Doctor {
			payload.InstitutionIDs = existing.InstitutionIDs
			return payload
		},
		Preserve: func(existing, payload models.Doctor) models.Doctor {
			payload.ID = existing.ID
			return payload
		},
	}
}

// PatientDescriptor keys patients by their business key, never the internal id.
func PatientDescriptor() Descriptor[models.Patient] {
	return Descriptor[models.Patient]{
		Resource:     access.ResourcePatients,
		ID:           func(p models.Patient) string { return p.PatientID },
		DisplayName:  func(p models.Patient) string { return p.Name },
		Institutions: func(p models.Patient) []string { return p.InstitutionIDs },
		SearchFields: func(p models.Patient) []string {
			return []string{p.Name, p.PatientID, p.Contact.Email}
		},
		Categories: map[string]func(models.Patient) string{
			CategoryGender:    func(p models.Patient) string { return p.Gender },
			CategoryBloodType: func(p models.Patient) string { return p.BloodType },
		},
		ScopeQuery: func(scope access.Scope, query url.Values) {
			query.Set(constvars.QueryParamInstitutionID, scope.InstitutionID)
		},
		AssignInstitution: func(p models.Patient, institutionID string) models.Patient {
			p.InstitutionIDs = []string{institutionID}
			return p
		},
		KeepInstitutions: func(existing, payload models.Patient) models.Patient {
			payload.InstitutionIDs = existing.InstitutionIDs
			return payload
		},
		Preserve: func(existing, payload models.Patient) models.Patient {
			payload.ID = existing.ID
			payload.PatientID = existing.PatientID
			return payload
		},
	}
}

func MedicalRecordDescriptor() Descriptor[models.MedicalRecord] {
	return Descriptor[models.MedicalRecord]{
		Resource: access.ResourceMedicalRecords,
		ID:       func(r models.MedicalRecord) string { return r.ID },
		DisplayName: func(r models.MedicalRecord) string {
			name := r.PatientName()
			if name == "" {
				name = r.PatientID
			}
			if r.VisitInfo.Date == "" {
				return name
			}
			return name + " (" + r.VisitInfo.Date + ")"
		},
		Institutions: func(r models.MedicalRecord) []string { return []string{r.InstitutionID} },
		SearchFields: func(r models.MedicalRecord) []string {
			return []string{r.PatientID, r.PatientName(), r.DoctorName(), r.ClinicalData.Diagnosis}
		},
		Categories: map[string]func(models.MedicalRecord) string{
			CategoryVisitType: func(r models.MedicalRecord) string { return string(r.VisitInfo.Type) },
		},
		ScopeQuery: func(scope access.Scope, query url.Values) {
			query.Set(constvars.QueryParamInstitutionFilter, constvars.QueryValueOwnInstitution)
		},
		AssignInstitution: func(r models.MedicalRecord, institutionID string) models.MedicalRecord {
			r.InstitutionID = institutionID
			return r
		},
		KeepInstitutions: func(existing, payload models.MedicalRecord) models.MedicalRecord {
			payload.InstitutionID = existing.InstitutionID
			return payload
		},
		Preserve: func(existing, payload models.MedicalRecord) models.MedicalRecord {
			payload.ID = existing.ID
			payload.PatientID = existing.PatientID
			return payload
		},
	}
}

// UserDescriptor protects system admin accounts from edits and deletes.
func UserDescriptor() Descriptor[models.User] {
	return Descriptor[models.User]{
		Resource:     access.ResourceUsers,
		ID:           func(u models.User) string { return u.ID },
		DisplayName:  func(u models.User) string { return u.Name },
		Institutions: func(u models.User) []string { return []string{u.InstitutionID} },
		SearchFields: func(u models.User) []string {
			return []string{u.Name, u.Email}
		},
		Categories: map[string]func(models.User) string{
			CategoryRole: func(u models.User) string { return string(u.Role) },
		},
		Protected: func(u models.User) bool { return u.Role == models.RoleSystemAdmin },
		Preserve: func(existing, payload models.User) models.User {
			payload.ID = existing.ID
			return payload
		},
	}
}
