package routers

import (
	"fmt"
	"medicalcv-service/internal/app/config"
	"medicalcv-service/internal/app/delivery/http/controllers"
	"medicalcv-service/internal/app/delivery/http/middlewares"
	"medicalcv-service/internal/pkg/constvars"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// ResourceHandler is the route surface shared by every entity controller.
type ResourceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	DeleteIntent(w http.ResponseWriter, r *http.Request)
	AuditTrail(w http.ResponseWriter, r *http.Request)
}

type Controllers struct {
	Auth           *controllers.AuthController
	Dashboard      *controllers.DashboardController
	Confirmation   *controllers.ConfirmationController
	MedicalRecord  *controllers.MedicalRecordController
	Institutions   ResourceHandler
	Doctors        ResourceHandler
	Patients       ResourceHandler
	MedicalRecords ResourceHandler
	Users          ResourceHandler
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	ctrls *Controllers,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, ctrls.Auth)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewares.Authenticate)

				r.Get("/me", ctrls.Auth.Me)
				r.Get("/dashboard", ctrls.Dashboard.GetDashboard)

				r.Route("/confirmation", func(r chi.Router) {
					attachConfirmationRoutes(r, ctrls.Confirmation)
				})

				r.Route("/"+constvars.ResourceInstitutions, func(r chi.Router) {
					attachResourceRoutes(r, ctrls.Institutions)
				})
				r.Route("/"+constvars.ResourceDoctors, func(r chi.Router) {
					attachResourceRoutes(r, ctrls.Doctors)
				})
				r.Route("/"+constvars.ResourcePatients, func(r chi.Router) {
					attachPatientRoutes(r, ctrls.Patients, ctrls.MedicalRecord)
				})
				r.Route("/"+constvars.ResourceMedicalRecords, func(r chi.Router) {
					attachMedicalRecordRoutes(r, ctrls.MedicalRecords, ctrls.MedicalRecord)
				})
				r.Route("/"+constvars.ResourceUsers, func(r chi.Router) {
					attachResourceRoutes(r, ctrls.Users)
				})
			})
		})
	})
}
