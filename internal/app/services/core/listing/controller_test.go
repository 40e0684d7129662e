package listing

import (
	"context"
	"errors"
	"fmt"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/core/access"
	"medicalcv-service/internal/app/services/core/confirm"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/exceptions"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	systemAdmin      = &models.Identity{ID: "a1", Name: "Root", Role: models.RoleSystemAdmin}
	institutionAdmin = &models.Identity{ID: "a2", Name: "Inst Admin", Role: models.RoleInstitutionAdmin, InstitutionID: "INST1"}
	doctorIdentity   = &models.Identity{ID: "d1", Name: "Dr. House", Role: models.RoleDoctor, InstitutionID: "INST1"}
)

type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) OnMutation(ctx context.Context, mutation models.Mutation) {
	m.Called(ctx, mutation)
}

func tenPatients() []models.Patient {
	patients := make([]models.Patient, 0, 10)
	for i := 1; i <= 10; i++ {
		institutions := []string{"INST2"}
		if i <= 3 {
			institutions = []string{"INST3", "INST1"}
		}
		patients = append(patients, models.Patient{
			ID:             fmt.Sprintf("oid-%d", i),
			PatientID:      fmt.Sprintf("P-%03d", i),
			Name:           fmt.Sprintf("Patient %d", i),
			Gender:         []string{"male", "female"}[i%2],
			BloodType:      "O+",
			InstitutionIDs: institutions,
		})
	}
	return patients
}

func sampleDoctors() []models.Doctor {
	return []models.Doctor{
		{ID: "doc1", Name: "Cardio Santos", Email: "santos@example.com", LicenseNumber: "L-1", Specialization: "Neurology", InstitutionIDs: []string{"INST1"}},
		{ID: "doc2", Name: "Jane Doe", Email: "jane@example.com", LicenseNumber: "L-2", Specialization: "Cardiology", InstitutionIDs: []string{"INST1"}},
		{ID: "doc3", Name: "John Smith", Email: "john@example.com", LicenseNumber: "L-3", Specialization: "Pediatrics", InstitutionIDs: []string{"INST2"}},
		{ID: "doc4", Name: "Ann Lee", Email: "ann@cardiocare.org", LicenseNumber: "L-4", Specialization: "Dermatology", InstitutionIDs: []string{"INST2", "INST1"}},
	}
}

func TestController_Load(t *testing.T) {
	t.Run("Institution admin sees only own institution patients", func(t *testing.T) {
		gateway := &fakeGateway[models.Patient]{items: tenPatients()}
		controller := NewController(PatientDescriptor(), gateway, institutionAdmin, zap.NewNop())

		require.NoError(t, controller.Load(context.Background()))

		displayed := controller.Displayed()
		assert.Len(t, displayed, 3)
		for _, p := range displayed {
			assert.Contains(t, p.InstitutionIDs, "INST1")
		}
		require.NotEmpty(t, gateway.listQueries)
		assert.Equal(t, "INST1", gateway.listQueries[0].Get(constvars.QueryParamInstitutionID))
	})

	t.Run("Scope query per resource", func(t *testing.T) {
		doctors := &fakeGateway[models.Doctor]{}
		require.NoError(t, NewController(DoctorDescriptor(), doctors, institutionAdmin, zap.NewNop()).Load(context.Background()))
		assert.Equal(t, "INST1", doctors.listQueries[0].Get(constvars.QueryParamInstitutionIDs))

		records := &fakeGateway[models.MedicalRecord]{}
		require.NoError(t, NewController(MedicalRecordDescriptor(), records, institutionAdmin, zap.NewNop()).Load(context.Background()))
		assert.Equal(t, constvars.QueryValueOwnInstitution, records.listQueries[0].Get(constvars.QueryParamInstitutionFilter))

		unrestricted := &fakeGateway[models.Patient]{}
		require.NoError(t, NewController(PatientDescriptor(), unrestricted, systemAdmin, zap.NewNop()).Load(context.Background()))
		assert.Empty(t, unrestricted.listQueries[0].Get(constvars.QueryParamInstitutionID))
	})

	t.Run("Fetches every page", func(t *testing.T) {
		gateway := &fakeGateway[models.Patient]{items: tenPatients()}
		controller := NewController(PatientDescriptor(), gateway, systemAdmin, zap.NewNop(), WithPageSize[models.Patient](4))

		require.NoError(t, controller.Load(context.Background()))
		assert.Len(t, controller.Displayed(), 10)
		assert.Len(t, gateway.listQueries, 3)
	})

	t.Run("Failure empties the base collection and reports a fetch error", func(t *testing.T) {
		gateway := &fakeGateway[models.Patient]{items: tenPatients()}
		controller := NewController(PatientDescriptor(), gateway, systemAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))
		require.Len(t, controller.Displayed(), 10)

		gateway.listErr = errors.New("connection reset")
		err := controller.Load(context.Background())
		require.Error(t, err)
		assert.Equal(t, exceptions.KindFetch, exceptions.KindOf(err))
		assert.Empty(t, controller.Displayed())
		assert.Equal(t, 0, controller.Result().BaseTotal)
		assert.Error(t, controller.Result().LoadErr)
	})

	t.Run("Forbidden resource is refused without a backend call", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{items: sampleDoctors()}
		controller := NewController(DoctorDescriptor(), gateway, doctorIdentity, zap.NewNop())

		err := controller.Load(context.Background())
		assert.Equal(t, exceptions.KindScope, exceptions.KindOf(err))
		assert.Empty(t, gateway.listQueries)
	})

	t.Run("Older load finishing last is discarded", func(t *testing.T) {
		release := make(chan struct{})
		firstStarted := make(chan struct{})
		gateway := &fakeGateway[models.Patient]{items: tenPatients()}
		gateway.beforeList = func(call int) {
			if call == 0 {
				close(firstStarted)
				<-release
			}
		}
		controller := NewController(PatientDescriptor(), gateway, systemAdmin, zap.NewNop())

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			gateway.mu.Lock()
			gateway.items = tenPatients()[:2]
			gateway.mu.Unlock()
			_ = controller.Load(context.Background())
		}()
		<-firstStarted

		gateway.mu.Lock()
		gateway.items = tenPatients()
		gateway.mu.Unlock()
		require.NoError(t, controller.Load(context.Background()))
		assert.Len(t, controller.Displayed(), 10)

		gateway.mu.Lock()
		gateway.items = tenPatients()[:2]
		gateway.mu.Unlock()
		close(release)
		wg.Wait()

		assert.Len(t, controller.Displayed(), 10, "stale result must not overwrite the newer one")
	})
}

func TestController_ApplyFilter(t *testing.T) {
	t.Run("Search matches any configured field case-insensitively", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{items: sampleDoctors()}
		controller := NewController(DoctorDescriptor(), gateway, systemAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		displayed := controller.ApplyFilter(Criteria{Search: "cardio"})
		names := make([]string, 0, len(displayed))
		for _, d := range displayed {
			names = append(names, d.Name)
		}
		assert.ElementsMatch(t, []string{"Cardio Santos", "Jane Doe", "Ann Lee"}, names)
	})

	t.Run("Category filter composes with search", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{items: sampleDoctors()}
		controller := NewController(DoctorDescriptor(), gateway, systemAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		displayed := controller.ApplyFilter(Criteria{
			Search:     "cardio",
			Categories: map[string]string{CategorySpecialization: "cardiology"},
		})
		require.Len(t, displayed, 1)
		assert.Equal(t, "Jane Doe", displayed[0].Name)

		all := controller.ApplyFilter(Criteria{Categories: map[string]string{CategorySpecialization: "all"}})
		assert.Len(t, all, 4)
	})

	t.Run("Scoped admin never sees other institutions whatever the criteria", func(t *testing.T) {
		gateway := &fakeGateway[models.Patient]{items: tenPatients()}
		controller := NewController(PatientDescriptor(), gateway, institutionAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		criteria := []Criteria{
			{},
			{Search: "Patient"},
			{Search: "P-00"},
			{Search: "patient 9"},
			{Categories: map[string]string{CategoryGender: "female"}},
			{Categories: map[string]string{CategoryBloodType: "O+", CategoryGender: "all"}},
		}
		for _, c := range criteria {
			for _, p := range controller.ApplyFilter(c) {
				assert.Contains(t, p.InstitutionIDs, "INST1")
			}
		}
	})

	t.Run("Applying the same criteria twice is idempotent", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{items: sampleDoctors()}
		controller := NewController(DoctorDescriptor(), gateway, systemAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		criteria := Criteria{Search: "o", Categories: map[string]string{CategorySpecialization: "Neurology"}}
		first := controller.ApplyFilter(criteria)
		second := controller.ApplyFilter(criteria)
		assert.Equal(t, first, second)
		assert.Equal(t, 4, controller.Result().BaseTotal)
	})

	t.Run("Category options come from the base collection", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{items: sampleDoctors()}
		controller := NewController(DoctorDescriptor(), gateway, systemAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))
		controller.ApplyFilter(Criteria{Search: "nobody"})

		options := controller.Result().CategoryOptions
		assert.Equal(t, []string{"Cardiology", "Dermatology", "Neurology", "Pediatrics"}, options[CategorySpecialization])
	})

	t.Run("Concurrent filters each get their own result", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{items: sampleDoctors()}
		controller := NewController(DoctorDescriptor(), gateway, systemAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				result := controller.ResultFor(Criteria{Search: "cardio"})
				assert.Len(t, result.Items, 3)
				assert.Equal(t, 4, result.BaseTotal)
			}()
			go func() {
				defer wg.Done()
				result := controller.ResultFor(Criteria{Search: "nobody"})
				assert.Empty(t, result.Items)
			}()
		}
		wg.Wait()
	})
}

func TestController_Create(t *testing.T) {
	t.Run("Scoped create injects the caller's institution", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{
			createFn: func(payload models.Doctor) (models.Doctor, error) {
				payload.ID = "doc9"
				return payload, nil
			},
		}
		observer := new(mockObserver)
		observer.On("OnMutation", mock.Anything, mock.MatchedBy(func(m models.Mutation) bool {
			return m.Action == models.MutationActionCreate && m.RecordID == "doc9" && m.ActorID == "a2"
		})).Once()

		controller := NewController(DoctorDescriptor(), gateway, institutionAdmin, zap.NewNop(), WithObservers[models.Doctor](observer))
		require.NoError(t, controller.Load(context.Background()))

		created, err := controller.Create(context.Background(), models.Doctor{Name: "New", InstitutionIDs: []string{"INST9"}})
		require.NoError(t, err)
		assert.Equal(t, "doc9", created.ID)
		require.Len(t, gateway.created, 1)
		assert.Equal(t, []string{"INST1"}, gateway.created[0].InstitutionIDs)

		_, found := controller.Find("doc9")
		assert.True(t, found)
		observer.AssertExpectations(t)
	})

	t.Run("Failed create leaves the base collection untouched", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{
			items: sampleDoctors(),
			createFn: func(payload models.Doctor) (models.Doctor, error) {
				return models.Doctor{}, errors.New("409 conflict")
			},
		}
		observer := new(mockObserver)
		controller := NewController(DoctorDescriptor(), gateway, systemAdmin, zap.NewNop(), WithObservers[models.Doctor](observer))
		require.NoError(t, controller.Load(context.Background()))

		_, err := controller.Create(context.Background(), models.Doctor{Name: "New"})
		require.Error(t, err)
		assert.Equal(t, exceptions.KindMutation, exceptions.KindOf(err))
		assert.Len(t, controller.Displayed(), 4)
		observer.AssertNotCalled(t, "OnMutation", mock.Anything, mock.Anything)
	})

	t.Run("Record without server id is not added", func(t *testing.T) {
		gateway := &fakeGateway[models.Institution]{
			createFn: func(payload models.Institution) (models.Institution, error) {
				return payload, nil
			},
		}
		controller := NewController(InstitutionDescriptor(), gateway, systemAdmin, zap.NewNop())

		_, err := controller.Create(context.Background(), models.Institution{Name: "General"})
		require.Error(t, err)
		assert.Empty(t, controller.Displayed())
	})

	t.Run("Read-only scope cannot create", func(t *testing.T) {
		gateway := &fakeGateway[models.Patient]{}
		controller := NewController(PatientDescriptor(), gateway, doctorIdentity, zap.NewNop())

		_, err := controller.Create(context.Background(), models.Patient{Name: "X"})
		assert.Equal(t, exceptions.KindScope, exceptions.KindOf(err))
		assert.Empty(t, gateway.created)
	})
}

func TestController_Update(t *testing.T) {
	t.Run("Replaces the entry and keeps server-owned fields", func(t *testing.T) {
		gateway := &fakeGateway[models.Patient]{
			items: tenPatients(),
			updateFn: func(id string, payload models.Patient) (models.Patient, error) {
				return payload, nil
			},
		}
		controller := NewController(PatientDescriptor(), gateway, institutionAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		updated, err := controller.Update(context.Background(), "P-002", models.Patient{
			PatientID:      "HIJACK",
			Name:           "Renamed",
			InstitutionIDs: []string{"INST2"},
		})
		require.NoError(t, err)
		assert.Equal(t, "P-002", updated.PatientID)
		assert.Equal(t, "oid-2", updated.ID)
		assert.Equal(t, []string{"INST3", "INST1"}, gateway.updated[0].InstitutionIDs)

		p, found := controller.Find("P-002")
		require.True(t, found)
		assert.Equal(t, "Renamed", p.Name)
		assert.Len(t, controller.Displayed(), 3)
	})

	t.Run("Failed update keeps prior state", func(t *testing.T) {
		gateway := &fakeGateway[models.Doctor]{
			items: sampleDoctors(),
			updateFn: func(id string, payload models.Doctor) (models.Doctor, error) {
				return models.Doctor{}, errors.New("500")
			},
		}
		controller := NewController(DoctorDescriptor(), gateway, systemAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		_, err := controller.Update(context.Background(), "doc2", models.Doctor{Name: "Changed"})
		assert.Equal(t, exceptions.KindMutation, exceptions.KindOf(err))
		d, _ := controller.Find("doc2")
		assert.Equal(t, "Jane Doe", d.Name)
	})

	t.Run("Record outside the scope is not found", func(t *testing.T) {
		gateway := &fakeGateway[models.Patient]{
			items: tenPatients(),
			getFn: func(id string) (models.Patient, error) {
				return models.Patient{PatientID: id, InstitutionIDs: []string{"INST2"}}, nil
			},
		}
		controller := NewController(PatientDescriptor(), gateway, institutionAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		_, err := controller.Update(context.Background(), "P-009", models.Patient{Name: "X"})
		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, err.(*exceptions.CustomError).StatusCode)
		assert.Empty(t, gateway.updated)
	})

	t.Run("System admin accounts are protected", func(t *testing.T) {
		gateway := &fakeGateway[models.User]{
			items: []models.User{
				{ID: "u1", Name: "Root", Role: models.RoleSystemAdmin},
				{ID: "u2", Name: "Clinic Admin", Role: models.RoleInstitutionAdmin, InstitutionID: "INST1"},
			},
		}
		controller := NewController(UserDescriptor(), gateway, systemAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))

		_, err := controller.Update(context.Background(), "u1", models.User{Name: "Hacked"})
		assert.Equal(t, exceptions.KindScope, exceptions.KindOf(err))

		_, err = controller.DeleteTarget(context.Background(), "u1")
		assert.Equal(t, exceptions.KindScope, exceptions.KindOf(err))
		assert.Empty(t, gateway.updated)
	})
}

func TestController_DeleteFlow(t *testing.T) {
	janeDoe := models.Patient{PatientID: "P-100", Name: "Jane Doe", InstitutionIDs: []string{"INST1"}}

	setup := func(deleteErr error) (*Controller[models.Patient], *fakeGateway[models.Patient], *confirm.Gate) {
		gateway := &fakeGateway[models.Patient]{
			items:    append(tenPatients(), janeDoe),
			deleteFn: func(id string) error { return deleteErr },
		}
		controller := NewController(PatientDescriptor(), gateway, institutionAdmin, zap.NewNop())
		require.NoError(t, controller.Load(context.Background()))
		return controller, gateway, confirm.NewGate(zap.NewNop())
	}

	run := func(t *testing.T, controller *Controller[models.Patient], gate *confirm.Gate) error {
		target, err := controller.DeleteTarget(context.Background(), "P-100")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", target.DisplayName)
		require.NoError(t, gate.Request(target))

		require.NoError(t, gate.Type("delet"))
		assert.False(t, gate.CanConfirm())
		require.NoError(t, gate.Type("confirm"))
		assert.True(t, gate.CanConfirm())

		return gate.Confirm(context.Background(), func(ctx context.Context, approval confirm.Approval) error {
			return controller.Delete(ctx, approval)
		})
	}

	t.Run("Confirmed delete removes the patient", func(t *testing.T) {
		controller, gateway, gate := setup(nil)

		require.NoError(t, run(t, controller, gate))
		assert.Equal(t, []string{"P-100"}, gateway.deleted)
		_, found := controller.Find("P-100")
		assert.False(t, found)
		for _, p := range controller.ApplyFilter(Criteria{Search: "Jane"}) {
			assert.NotEqual(t, "P-100", p.PatientID)
		}
	})

	t.Run("Failed delete keeps the patient and reports the error", func(t *testing.T) {
		controller, gateway, gate := setup(errors.New("503"))

		err := run(t, controller, gate)
		require.Error(t, err)
		assert.Equal(t, exceptions.KindMutation, exceptions.KindOf(err))
		assert.Equal(t, []string{"P-100"}, gateway.deleted)
		_, found := controller.Find("P-100")
		assert.True(t, found)
		assert.Error(t, gate.Snapshot().LastError)
	})

	t.Run("Delete without approval never reaches the backend", func(t *testing.T) {
		controller, gateway, _ := setup(nil)

		err := controller.Delete(context.Background(), confirm.Approval{})
		assert.Equal(t, exceptions.KindConfirmation, exceptions.KindOf(err))
		assert.Empty(t, gateway.deleted)
	})

	t.Run("Approval for another resource is refused", func(t *testing.T) {
		controller, gateway, gate := setup(nil)
		require.NoError(t, gate.Request(confirm.Target{Resource: string(access.ResourceDoctors), ID: "P-100"}))
		require.NoError(t, gate.Type("confirm"))

		err := gate.Confirm(context.Background(), func(ctx context.Context, approval confirm.Approval) error {
			return controller.Delete(ctx, approval)
		})
		assert.Error(t, err)
		assert.Empty(t, gateway.deleted)
	})
}

func TestController_SetIdentity(t *testing.T) {
	gateway := &fakeGateway[models.Patient]{items: tenPatients()}
	controller := NewController(PatientDescriptor(), gateway, systemAdmin, zap.NewNop())
	require.NoError(t, controller.Load(context.Background()))
	require.Len(t, controller.Displayed(), 10)

	controller.SetIdentity(institutionAdmin)
	assert.Empty(t, controller.Displayed())
	assert.False(t, controller.Loaded())
	assert.Equal(t, access.OwnInstitutionOnly, controller.Scope().Class)

	require.NoError(t, controller.Load(context.Background()))
	assert.Len(t, controller.Displayed(), 3)

	controller.SetIdentity(nil)
	assert.Equal(t, access.Forbidden, controller.Scope().Class)
}
