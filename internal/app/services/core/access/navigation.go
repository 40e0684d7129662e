package access

import "medicalcv-service/internal/app/models"

const ResourceDashboard ResourceType = "dashboard"

type NavigationEntry struct {
	Resource ResourceType
	Label    string
}

var navigationOrder = []NavigationEntry{
	{Resource: ResourceInstitutions, Label: "Institutions"},
	{Resource: ResourceUsers, Label: "Users"},
	{Resource: ResourcePatients, Label: "Patients"},
	{Resource: ResourceDoctors, Label: "Doctors"},
	{Resource: ResourceMedicalRecords, Label: "Medical Records"},
}

// Navigation lists the screens an identity can open. The dashboard is shown
// to identities that manage at least one resource.
func Navigation(identity *models.Identity) []NavigationEntry {
	entries := make([]NavigationEntry, 0, len(navigationOrder)+1)
	manages := false
	for _, entry := range navigationOrder {
		scope := Resolve(identity, entry.Resource)
		if !scope.CanRead() {
			continue
		}
		manages = manages || scope.CanMutate()
		entries = append(entries, entry)
	}
	if manages {
		entries = append([]NavigationEntry{{Resource: ResourceDashboard, Label: "Dashboard"}}, entries...)
	}
	return entries
}
