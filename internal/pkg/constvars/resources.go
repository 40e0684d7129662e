package constvars

// Backend REST resource paths.
const (
	BackendPathSignIn               = "/auth/sign-in"
	BackendPathSignOut              = "/auth/sign-out"
	BackendPathInstitutions         = "/admin/institutions"
	BackendPathUsers                = "/admin/users"
	BackendPathDoctors              = "/doctors"
	BackendPathPatients             = "/patients"
	BackendPathMedicalRecords       = "/medical-records"
	BackendPathPatientMedicalRecord = "/medical-records/patient/"
)

// Resource names used in logs, errors and routes.
const (
	ResourceInstitutions   = "institutions"
	ResourceDoctors        = "doctors"
	ResourcePatients       = "patients"
	ResourceMedicalRecords = "medical-records"
	ResourceUsers          = "users"
	ResourceAuth           = "auth"
	ResourceDashboard      = "dashboard"
	ResourceAttachments    = "attachments"
)

// Query parameters understood by the backend.
const (
	QueryParamPage              = "page"
	QueryParamLimit             = "limit"
	QueryParamInstitutionID     = "institutionId"
	QueryParamInstitutionIDs    = "institutionIds"
	QueryParamInstitutionFilter = "institutionFilter"
	QueryValueOwnInstitution    = "own"
)

// Query parameters understood by the dashboard service.
const (
	URLQueryParamSearch   = "search"
	URLQueryParamReload   = "reload"
	URLQueryParamPageSize = "pageSize"
)

const (
	URLParamID         = "id"
	URLParamPatientID  = "patient_id"
	URLParamAttachment = "attachment_name"
)

const (
	FormFieldFile        = "file"
	FormFieldDescription = "description"
)
