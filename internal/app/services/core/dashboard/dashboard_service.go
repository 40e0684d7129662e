package dashboard

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/core/access"
	"medicalcv-service/internal/app/services/core/listing"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/responses"
	"medicalcv-service/internal/pkg/exceptions"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sources are the session-bound gateways the counters read from.
type Sources struct {
	Institutions   contracts.ResourceGateway[models.Institution]
	Doctors        contracts.ResourceGateway[models.Doctor]
	Patients       contracts.ResourceGateway[models.Patient]
	MedicalRecords contracts.ResourceGateway[models.MedicalRecord]
	Users          contracts.ResourceGateway[models.User]
}

type Service struct {
	sources Sources
	log     *zap.Logger
}

func NewService(sources Sources, log *zap.Logger) *Service {
	return &Service{sources: sources, log: log}
}

// Stats counts what the identity's role is shown on the dashboard. System
// admins see institutions and users, the user total excluding their own
// account. Institution admins see their institution's patients, doctors and
// records. Everyone else sees zeros. Any failed count zeroes every figure.
func (s *Service) Stats(ctx context.Context, identity *models.Identity) (responses.DashboardStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("dashboard.Service.Stats called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, roleOf(identity)),
	)

	stats := responses.DashboardStats{}
	if identity == nil {
		return stats, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	switch identity.Role {
	case models.RoleSystemAdmin:
		g.Go(func() (err error) {
			stats.TotalInstitutions, err = count(gctx, identity, s.sources.Institutions, listing.InstitutionDescriptor())
			return err
		})
		g.Go(func() (err error) {
			stats.TotalUsers, err = count(gctx, identity, s.sources.Users, listing.UserDescriptor())
			return err
		})
	case models.RoleInstitutionAdmin:
		g.Go(func() (err error) {
			stats.TotalPatients, err = count(gctx, identity, s.sources.Patients, listing.PatientDescriptor())
			return err
		})
		g.Go(func() (err error) {
			stats.TotalDoctors, err = count(gctx, identity, s.sources.Doctors, listing.DoctorDescriptor())
			return err
		})
		g.Go(func() (err error) {
			stats.TotalRecords, err = count(gctx, identity, s.sources.MedicalRecords, listing.MedicalRecordDescriptor())
			return err
		})
	default:
		return stats, nil
	}

	if err := g.Wait(); err != nil {
		s.log.Error("dashboard.Service.Stats failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return responses.DashboardStats{Error: err.Error()}, err
	}

	if identity.Role == models.RoleSystemAdmin {
		stats.TotalUsers--
		if stats.TotalUsers < 0 {
			stats.TotalUsers = 0
		}
	}
	return stats, nil
}

// count asks for a single item and reads the collection total from the
// pagination, passing the same scope parameters a listing load would.
func count[T any](ctx context.Context, identity *models.Identity, gateway contracts.ResourceGateway[T], descriptor listing.Descriptor[T]) (int, error) {
	scope := access.Resolve(identity, descriptor.Resource)
	if !scope.CanRead() {
		return 0, nil
	}

	query := url.Values{}
	if scope.Class == access.OwnInstitutionOnly && descriptor.ScopeQuery != nil {
		descriptor.ScopeQuery(scope, query)
	}
	query.Set(constvars.QueryParamPage, "1")
	query.Set(constvars.QueryParamLimit, "1")

	page, err := gateway.List(ctx, query)
	if err != nil {
		return 0, exceptions.ErrFetch(err, string(descriptor.Resource))
	}
	return page.Total, nil
}

func roleOf(identity *models.Identity) string {
	if identity == nil {
		return constvars.ResponseUnknown
	}
	return string(identity.Role)
}
