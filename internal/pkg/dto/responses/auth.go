package responses

import "medicalcv-service/internal/app/models"

type NavigationItem struct {
	Label    string `json:"label"`
	Resource string `json:"resource"`
	Path     string `json:"path"`
}

type Login struct {
	Token      string           `json:"token"`
	User       *models.Identity `json:"user"`
	Navigation []NavigationItem `json:"navigation"`
}

type Profile struct {
	User       *models.Identity `json:"user"`
	Navigation []NavigationItem `json:"navigation"`
}
