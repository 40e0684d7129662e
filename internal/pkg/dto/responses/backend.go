package responses

import "medicalcv-service/internal/app/models"

// Envelope is the single response shape the REST backend returns.
type Envelope[T any] struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       T                  `json:"data"`
	Pagination *BackendPagination `json:"pagination,omitempty"`
}

type BackendPagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// Page is one page of a list call. Total falls back to the item count when
// the backend omits pagination.
type Page[T any] struct {
	Items      []T
	Total      int
	TotalPages int
}

type SignIn struct {
	Token string           `json:"token"`
	User  *models.Identity `json:"user"`
}
