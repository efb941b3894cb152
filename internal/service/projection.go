package service

import (
	"github.com/shenikar/dispatch_console/internal/models"
)

// workerStatuses - статусы, которые видит выездная группа
var workerStatuses = map[models.IncidentStatus]bool{
	models.StatusAnalyzing: true,
	models.StatusAssigned:  true,
	models.StatusHandling:  true,
}

// ProjectForRole возвращает подмножество инцидентов, видимое роли.
// Порядок входного списка сохраняется, вход не изменяется.
func ProjectForRole(incidents []models.Incident, role models.Role) []models.Incident {
	projected := make([]models.Incident, 0, len(incidents))
	switch role {
	case models.RoleAdmin, models.RolePublic:
		projected = append(projected, incidents...)
	case models.RoleWorker:
		for _, incident := range incidents {
			if workerStatuses[incident.Status] {
				projected = append(projected, incident)
			}
		}
	}
	return projected
}
