package audit

import (
	"context"
	"errors"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Insert(ctx context.Context, entry *models.AuditEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *mockAuditRepository) FindByRecord(ctx context.Context, resource, recordID string) ([]models.AuditEntry, error) {
	args := m.Called(ctx, resource, recordID)
	entries, _ := args.Get(0).([]models.AuditEntry)
	return entries, args.Error(1)
}

func TestAuditObserver_OnMutation(t *testing.T) {
	mutation := models.Mutation{
		Resource: constvars.ResourceDoctors,
		Action:   models.MutationActionCreate,
		RecordID: "d9",
	}

	t.Run("Inserts an entry carrying the session id", func(t *testing.T) {
		repo := new(mockAuditRepository)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(e *models.AuditEntry) bool {
			return e.SessionID == "s1" && e.RecordID == "d9"
		})).Return("oid", nil).Once()

		ctx := context.WithValue(context.Background(), constvars.CONTEXT_SESSION_ID_KEY, "s1")
		NewAuditObserver(repo, zap.NewNop()).OnMutation(ctx, mutation)
		repo.AssertExpectations(t)
	})

	t.Run("Insert failure is swallowed", func(t *testing.T) {
		repo := new(mockAuditRepository)
		repo.On("Insert", mock.Anything, mock.Anything).Return("", errors.New("mongo down")).Once()

		assert.NotPanics(t, func() {
			NewAuditObserver(repo, zap.NewNop()).OnMutation(context.Background(), mutation)
		})
		repo.AssertExpectations(t)
	})
}
