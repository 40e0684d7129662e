package models

type VisitType string

const (
	VisitTypeConsultation VisitType = "consultation"
	VisitTypeEmergency    VisitType = "emergency"
	VisitTypeFollowUp     VisitType = "follow-up"
	VisitTypeSurgery      VisitType = "surgery"
	VisitTypeLabTest      VisitType = "lab-test"
	VisitTypeImmunization VisitType = "immunization"
)

type VisitInfo struct {
	Type        VisitType `json:"type"`
	Date        string    `json:"date"`
	IsEmergency bool      `json:"isEmergency"`
}

type ClinicalData struct {
	Symptoms  string `json:"symptoms"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}

type Prescription struct {
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	Duration       string `json:"duration"`
	Instructions   string `json:"instructions,omitempty"`
}

type LabResult struct {
	TestName       string `json:"testName"`
	Result         string `json:"result"`
	ReferenceRange string `json:"referenceRange,omitempty"`
	Status         string `json:"status,omitempty"`
}

type Attachment struct {
	FileName    string `json:"fileName"`
	ObjectName  string `json:"objectName,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
}

// PartyRef is the populated name of a patient or doctor the backend may
// embed next to the plain id.
type PartyRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

type MedicalRecord struct {
	ID            string         `json:"_id,omitempty"`
	PatientID     string         `json:"patientId"`
	DoctorID      string         `json:"doctorId"`
	InstitutionID string         `json:"institutionId"`
	Patient       *PartyRef      `json:"patient,omitempty"`
	Doctor        *PartyRef      `json:"doctor,omitempty"`
	VisitInfo     VisitInfo      `json:"visitInfo"`
	ClinicalData  ClinicalData   `json:"clinicalData"`
	Prescriptions []Prescription `json:"prescriptions"`
	LabResults    []LabResult    `json:"labResults"`
	Attachments   []Attachment   `json:"attachments"`
}

func (r MedicalRecord) PatientName() string {
	if r.Patient == nil {
		return ""
	}
	return r.Patient.Name
}

func (r MedicalRecord) DoctorName() string {
	if r.Doctor == nil {
		return ""
	}
	return r.Doctor.Name
}
