package routers

import (
	"medicalcv-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachResourceRoutes(router chi.Router, handler ResourceHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/{id}", handler.Get)
	router.Put("/{id}", handler.Update)
	router.Post("/{id}/delete-intent", handler.DeleteIntent)
	router.Get("/{id}/audit", handler.AuditTrail)
}

func attachPatientRoutes(router chi.Router, handler ResourceHandler, recordController *controllers.MedicalRecordController) {
	attachResourceRoutes(router, handler)
	router.Get("/{patient_id}/records", recordController.PatientRecords)
}

func attachMedicalRecordRoutes(router chi.Router, handler ResourceHandler, recordController *controllers.MedicalRecordController) {
	attachResourceRoutes(router, handler)
	router.Post("/{id}/attachments", recordController.UploadAttachment)
	router.Get("/{id}/attachments/{attachment_name}", recordController.AttachmentURL)
}

func attachConfirmationRoutes(router chi.Router, confirmationController *controllers.ConfirmationController) {
	router.Get("/", confirmationController.GetState)
	router.Put("/", confirmationController.Type)
	router.Post("/", confirmationController.Confirm)
	router.Delete("/", confirmationController.Cancel)
}
