package workspace

import (
	"context"
	"fmt"
	"io"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/responses"
	"medicalcv-service/internal/pkg/exceptions"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload is one file attached to a medical record.
type Upload struct {
	File        io.Reader
	Size        int64
	FileName    string
	ContentType string
	Description string
}

func attachmentObjectName(recordID, fileName string) string {
	return fmt.Sprintf("%s/%s/%s-%s", constvars.ResourceMedicalRecords, recordID, uuid.NewString(), fileName)
}

func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// UploadAttachment stores the file and appends it to the record's
// attachments through a regular update.
func (w *Workspace) UploadAttachment(ctx context.Context, recordID string, upload Upload) (models.MedicalRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	w.deps.Log.Info("workspace.Workspace.UploadAttachment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, recordID),
		zap.Int64(constvars.LoggingFileSizeKey, upload.Size),
	)

	if !w.MedicalRecords.Scope().CanMutate() {
		return models.MedicalRecord{}, exceptions.ErrScopeForbidden("update", constvars.ResourceMedicalRecords, roleOf(w.Identity()))
	}
	record, err := w.MedicalRecords.Get(ctx, recordID)
	if err != nil {
		return models.MedicalRecord{}, err
	}

	fileName := cleanFileName(upload.FileName)
	if fileName == "" {
		fileName = uuid.NewString()
	}
	objectName := attachmentObjectName(recordID, fileName)
	if _, err := w.deps.Storage.UploadFile(ctx, upload.File, upload.Size, upload.ContentType, w.deps.BucketName, objectName); err != nil {
		return models.MedicalRecord{}, err
	}

	record.Attachments = append(append([]models.Attachment{}, record.Attachments...), models.Attachment{
		FileName:    fileName,
		ObjectName:  objectName,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		Description: upload.Description,
	})

	updated, err := w.MedicalRecords.Update(ctx, recordID, record)
	if err != nil {
		w.deps.Log.Warn("workspace.Workspace.UploadAttachment left an unreferenced object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectKey, objectName),
		)
		return models.MedicalRecord{}, err
	}
	return updated, nil
}

// AttachmentURL returns a time-limited download link for one attachment.
func (w *Workspace) AttachmentURL(ctx context.Context, recordID, fileName string) (responses.AttachmentURL, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	w.deps.Log.Info("workspace.Workspace.AttachmentURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, recordID),
	)

	record, err := w.MedicalRecords.Get(ctx, recordID)
	if err != nil {
		return responses.AttachmentURL{}, err
	}

	for _, attachment := range record.Attachments {
		if attachment.FileName != fileName || attachment.ObjectName == "" {
			continue
		}
		url, err := w.deps.Storage.GetObjectUrlWithExpiryTime(ctx, w.deps.BucketName, attachment.ObjectName, w.deps.DownloadExpiry)
		if err != nil {
			return responses.AttachmentURL{}, err
		}
		return responses.AttachmentURL{
			FileName:  attachment.FileName,
			URL:       url,
			ExpiresAt: time.Now().Add(w.deps.DownloadExpiry).UTC(),
		}, nil
	}
	return responses.AttachmentURL{}, exceptions.ErrRecordNotFound(constvars.ResourceAttachments, fileName)
}
