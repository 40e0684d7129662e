package constvars

const (
	ResponseUnknown = "unknown"

	LoginSuccess                  = "successfully login"
	LogoutSuccess                 = "successfully logout"
	GetProfileSuccess             = "get profile successfully"
	GetDashboardSuccess           = "get dashboard successfully"
	GetListSuccess                = "get %s successfully"
	GetDetailSuccess              = "get %s detail successfully"
	CreateSuccess                 = "%s created successfully"
	UpdateSuccess                 = "%s updated successfully"
	DeleteSuccess                 = "%s deleted successfully"
	GetPatientRecordsSuccess      = "get patient records successfully"
	DeleteIntentSuccess           = "type 'confirm' to delete %s"
	ConfirmationStateSuccess      = "get confirmation state successfully"
	ConfirmationTypedSuccess      = "confirmation input recorded"
	ConfirmationCancelledSuccess  = "delete cancelled"
	AttachmentUploadSuccess       = "attachment uploaded successfully"
	AttachmentDownloadLinkSuccess = "attachment download link created successfully"
	GetAuditTrailSuccess          = "get audit trail successfully"
)
