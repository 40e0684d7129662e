package controllers

import (
	"context"
	"medicalcv-service/internal/app/services/core/workspace"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/exceptions"
	"medicalcv-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MedicalRecordController serves the record endpoints that do not fit the
// generic list controller: patient history and attachments.
type MedicalRecordController struct {
	Log                 *zap.Logger
	Timeout             time.Duration
	MaxUploadSizeInByte int64
}

func NewMedicalRecordController(logger *zap.Logger, timeoutInSeconds int, maxUploadSizeInMB int64) *MedicalRecordController {
	return &MedicalRecordController{
		Log:                 logger,
		Timeout:             requestTimeout(timeoutInSeconds),
		MaxUploadSizeInByte: maxUploadSizeInMB << 20,
	}
}

func (ctrl *MedicalRecordController) PatientRecords(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	records, err := ws.PatientRecords(ctx, chi.URLParam(r, constvars.URLParamPatientID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientRecordsSuccess, records)
}

func (ctrl *MedicalRecordController) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, ctrl.MaxUploadSizeInByte+(1<<20))
	if err := r.ParseMultipartForm(ctrl.MaxUploadSizeInByte); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	if header.Size > ctrl.MaxUploadSizeInByte {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFileTooLarge(header.Size, ctrl.MaxUploadSizeInByte))
		return
	}

	contentType := header.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	record, err := ws.UploadAttachment(ctx, chi.URLParam(r, constvars.URLParamID), workspace.Upload{
		File:        file,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: contentType,
		Description: r.FormValue(constvars.FormFieldDescription),
	})
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AttachmentUploadSuccess, record)
}

func (ctrl *MedicalRecordController) AttachmentURL(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	link, err := ws.AttachmentURL(ctx, chi.URLParam(r, constvars.URLParamID), chi.URLParam(r, constvars.URLParamAttachment))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AttachmentDownloadLinkSuccess, link)
}
