package responses

type DashboardStats struct {
	TotalPatients     int    `json:"totalPatients"`
	TotalDoctors      int    `json:"totalDoctors"`
	TotalRecords      int    `json:"totalRecords"`
	TotalInstitutions int    `json:"totalInstitutions"`
	TotalUsers        int    `json:"totalUsers"`
	Error             string `json:"error,omitempty"`
}
