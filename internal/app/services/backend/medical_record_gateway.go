package backend

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/constvars"
	"net/url"

	"go.uber.org/zap"
)

type MedicalRecords struct {
	*Resource[models.MedicalRecord]
}

func NewMedicalRecords(client *Client, tokens contracts.TokenSource) *MedicalRecords {
	return &MedicalRecords{
		Resource: NewResource[models.MedicalRecord](client, tokens, constvars.BackendPathMedicalRecords, constvars.ResourceMedicalRecords),
	}
}

var _ contracts.MedicalRecordGateway = (*MedicalRecords)(nil)

func (r *MedicalRecords) ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	r.logCall(ctx, "ListByPatient", zap.String(constvars.LoggingResourceIDKey, patientID))

	envelope, _, err := send[[]models.MedicalRecord](ctx, r.client, call{
		method: constvars.MethodGet,
		path:   constvars.BackendPathPatientMedicalRecord + url.PathEscape(patientID),
		token:  r.token(),
	})
	if err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []models.MedicalRecord{}, nil
	}
	return envelope.Data, nil
}
