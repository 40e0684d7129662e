package listing

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/core/access"
	"medicalcv-service/internal/pkg/exceptions"
	"sort"
	"time"
)

var visitDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseVisitDate(value string) (time.Time, bool) {
	for _, layout := range visitDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PatientHistory returns the medical records of one patient the identity can
// see, newest visit first. The patient itself must be visible.
func PatientHistory(ctx context.Context, identity *models.Identity, patients *Controller[models.Patient], gateway contracts.MedicalRecordGateway, patientID string) ([]models.MedicalRecord, error) {
	recordScope := access.Resolve(identity, access.ResourceMedicalRecords)
	if !recordScope.CanRead() {
		return nil, exceptions.ErrScopeForbidden("read", string(access.ResourceMedicalRecords), roleOf(identity))
	}

	if _, err := patients.Get(ctx, patientID); err != nil {
		return nil, err
	}

	records, err := gateway.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, exceptions.ErrFetch(err, string(access.ResourceMedicalRecords))
	}

	descriptor := MedicalRecordDescriptor()
	visible := make([]models.MedicalRecord, 0, len(records))
	for _, record := range records {
		if record.PatientID == patientID && descriptor.allowed(recordScope, record) {
			visible = append(visible, record)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		a, okA := parseVisitDate(visible[i].VisitInfo.Date)
		b, okB := parseVisitDate(visible[j].VisitInfo.Date)
		if okA && okB {
			return a.After(b)
		}
		if okA != okB {
			return okA
		}
		return visible[i].VisitInfo.Date > visible[j].VisitInfo.Date
	})
	return visible, nil
}
