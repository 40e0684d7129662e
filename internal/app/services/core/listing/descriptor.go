package listing

import (
	"medicalcv-service/internal/app/services/core/access"
	"net/url"
)

// Descriptor tells the generic controller how to handle one resource type.
type Descriptor[T any] struct {
	Resource access.ResourceType
	// ID is the key used in backend paths.
	ID          func(T) string
	DisplayName func(T) string
	// Institutions returns the institution references the scope predicate checks.
	Institutions func(T) []string
	SearchFields func(T) []string
	Categories   map[string]func(T) string
	// ScopeQuery adds the server-side scoping parameter for an own-institution scope.
	ScopeQuery func(scope access.Scope, query url.Values)
	// AssignInstitution sets the caller's institution as the only institution of a new record.
	AssignInstitution func(item T, institutionID string) T
	// KeepInstitutions copies the institution references of the existing record
	// onto an update payload so a scoped caller cannot move records.
	KeepInstitutions func(existing, payload T) T
	// Preserve copies server-owned fields of the existing record onto an update payload.
	Preserve func(existing, payload T) T
	// Protected marks records the dashboard must never change.
	Protected func(T) bool
}

func (d *Descriptor[T]) name() string {
	return string(d.Resource)
}

func (d *Descriptor[T]) isProtected(item T) bool {
	return d.Protected != nil && d.Protected(item)
}

func (d *Descriptor[T]) allowed(scope access.Scope, item T) bool {
	if scope.Class == access.OwnInstitutionOnly && d.Institutions == nil {
		return false
	}
	var institutions []string
	if d.Institutions != nil {
		institutions = d.Institutions(item)
	}
	return scope.Allows(institutions...)
}
