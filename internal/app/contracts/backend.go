package contracts

import (
	"context"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/dto/responses"
	"net/url"
)

type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (*responses.SignIn, error)
	SignOut(ctx context.Context, token string) error
}

type ResourceGateway[T any] interface {
	List(ctx context.Context, query url.Values) (*responses.Page[T], error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id string, payload T) (T, error)
	Delete(ctx context.Context, id string) error
}

type MedicalRecordGateway interface {
	ResourceGateway[models.MedicalRecord]
	ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error)
}
