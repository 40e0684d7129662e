package workspace

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/backend"
	"medicalcv-service/internal/app/services/core/access"
	"medicalcv-service/internal/app/services/core/confirm"
	"medicalcv-service/internal/app/services/core/dashboard"
	"medicalcv-service/internal/app/services/core/listing"
	"medicalcv-service/internal/app/services/core/session"
	"medicalcv-service/internal/app/services/shared/ratelimiter"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/responses"
	"medicalcv-service/internal/pkg/exceptions"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Dependencies are shared by every workspace of the process.
type Dependencies struct {
	Client         *backend.Client
	Auth           contracts.AuthGateway
	Sessions       contracts.SessionStore
	LoginLimiter   *ratelimiter.KeyedLimiter
	Observers      []contracts.MutationObserver
	Storage        contracts.Storage
	Audit          contracts.AuditRepository
	BucketName     string
	DownloadExpiry time.Duration
	PageSize       int
	Log            *zap.Logger
}

// entityController is the type-erased part of a list controller that the
// gate and the audit trail need.
type entityController interface {
	Resource() access.ResourceType
	Visible(ctx context.Context, id string) error
	DeleteTarget(ctx context.Context, id string) (confirm.Target, error)
	Delete(ctx context.Context, approval confirm.Approval) error
}

// Workspace is everything one browser session works with: its identity
// provider, one list controller per resource and its confirmation gate.
// Every controller follows the provider's identity.
type Workspace struct {
	id   string
	deps *Dependencies

	Session        *session.Provider
	Institutions   *listing.Controller[models.Institution]
	Doctors        *listing.Controller[models.Doctor]
	Patients       *listing.Controller[models.Patient]
	MedicalRecords *listing.Controller[models.MedicalRecord]
	Users          *listing.Controller[models.User]
	Gate           *confirm.Gate

	records     contracts.MedicalRecordGateway
	dashboard   *dashboard.Service
	controllers map[string]entityController
	lastSeen    atomic.Int64
}

func newController[T any](deps *Dependencies, descriptor listing.Descriptor[T], gateway contracts.ResourceGateway[T]) *listing.Controller[T] {
	return listing.NewController(descriptor, gateway, nil, deps.Log,
		listing.WithPageSize[T](deps.PageSize),
		listing.WithObservers[T](deps.Observers...),
	)
}

func New(id string, deps *Dependencies) *Workspace {
	w := &Workspace{id: id, deps: deps}
	w.Session = session.NewProvider(id, deps.Sessions, deps.Auth, deps.LoginLimiter, deps.Log)

	institutions := backend.NewResource[models.Institution](deps.Client, w.Session, constvars.BackendPathInstitutions, constvars.ResourceInstitutions)
	doctors := backend.NewResource[models.Doctor](deps.Client, w.Session, constvars.BackendPathDoctors, constvars.ResourceDoctors)
	patients := backend.NewResource[models.Patient](deps.Client, w.Session, constvars.BackendPathPatients, constvars.ResourcePatients)
	users := backend.NewResource[models.User](deps.Client, w.Session, constvars.BackendPathUsers, constvars.ResourceUsers)
	records := backend.NewMedicalRecords(deps.Client, w.Session)

	w.Institutions = newController[models.Institution](deps, listing.InstitutionDescriptor(), institutions)
	w.Doctors = newController[models.Doctor](deps, listing.DoctorDescriptor(), doctors)
	w.Patients = newController[models.Patient](deps, listing.PatientDescriptor(), patients)
	w.MedicalRecords = newController[models.MedicalRecord](deps, listing.MedicalRecordDescriptor(), records)
	w.Users = newController[models.User](deps, listing.UserDescriptor(), users)
	w.Gate = confirm.NewGate(deps.Log)
	w.records = records
	w.dashboard = dashboard.NewService(dashboard.Sources{
		Institutions:   institutions,
		Doctors:        doctors,
		Patients:       patients,
		MedicalRecords: records,
		Users:          users,
	}, deps.Log)

	w.controllers = make(map[string]entityController, 5)
	for _, c := range []entityController{w.Institutions, w.Doctors, w.Patients, w.MedicalRecords, w.Users} {
		w.controllers[string(c.Resource())] = c
	}

	w.Session.Subscribe(func(identity *models.Identity) {
		w.Institutions.SetIdentity(identity)
		w.Doctors.SetIdentity(identity)
		w.Patients.SetIdentity(identity)
		w.MedicalRecords.SetIdentity(identity)
		w.Users.SetIdentity(identity)
		_ = w.Gate.Cancel()
	})
	w.touch(time.Now())
	return w
}

func (w *Workspace) ID() string {
	return w.id
}

func (w *Workspace) Identity() *models.Identity {
	return w.Session.Identity()
}

func (w *Workspace) touch(now time.Time) {
	w.lastSeen.Store(now.UnixNano())
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, w.lastSeen.Load()))
}

func (w *Workspace) Navigation() []access.NavigationEntry {
	return access.Navigation(w.Identity())
}

func (w *Workspace) Stats(ctx context.Context) (responses.DashboardStats, error) {
	return w.dashboard.Stats(ctx, w.Identity())
}

// PatientRecords returns the visit history of one patient, newest first.
func (w *Workspace) PatientRecords(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	return listing.PatientHistory(ctx, w.Identity(), w.Patients, w.records, patientID)
}

// RequestDelete opens the confirmation gate for one entity.
func (w *Workspace) RequestDelete(ctx context.Context, resource, id string) (confirm.Snapshot, error) {
	target, ok := w.controllers[resource]
	if !ok {
		return confirm.Snapshot{}, exceptions.ErrUnknownResource(resource)
	}
	t, err := target.DeleteTarget(ctx, id)
	if err != nil {
		return confirm.Snapshot{}, err
	}
	if err := w.Gate.Request(t); err != nil {
		return confirm.Snapshot{}, err
	}
	return w.Gate.Snapshot(), nil
}

// Confirm runs the pending delete through the controller that owns it.
func (w *Workspace) Confirm(ctx context.Context) error {
	return w.Gate.Confirm(ctx, func(ctx context.Context, approval confirm.Approval) error {
		target, ok := w.controllers[approval.Target().Resource]
		if !ok {
			return exceptions.ErrUnknownResource(approval.Target().Resource)
		}
		return target.Delete(ctx, approval)
	})
}

// AuditTrail lists the recorded mutations of one entity. Callers limited to
// their own institution only see the trail of entities they can still see.
func (w *Workspace) AuditTrail(ctx context.Context, resource, id string) ([]models.AuditEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	w.deps.Log.Info("workspace.Workspace.AuditTrail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, resource),
		zap.String(constvars.LoggingResourceIDKey, id),
	)

	target, ok := w.controllers[resource]
	if !ok {
		return nil, exceptions.ErrUnknownResource(resource)
	}
	identity := w.Identity()
	scope := access.Resolve(identity, access.ResourceType(resource))
	if !scope.CanRead() {
		return nil, exceptions.ErrScopeForbidden("read", resource, roleOf(identity))
	}
	if scope.Class == access.OwnInstitutionOnly {
		if err := target.Visible(ctx, id); err != nil {
			return nil, err
		}
	}
	return w.deps.Audit.FindByRecord(ctx, resource, id)
}

func roleOf(identity *models.Identity) string {
	if identity == nil {
		return constvars.ResponseUnknown
	}
	return string(identity.Role)
}
