package service

import (
	"testing"

	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incidentsWithStatuses(statuses ...models.IncidentStatus) []models.Incident {
	list := make([]models.Incident, 0, len(statuses))
	for i, status := range statuses {
		list = append(list, models.Incident{
			ID:       string(rune('1' + i)),
			Status:   status,
			Location: models.Location{Latitude: float64(10 + i), Longitude: float64(70 + i)},
		})
	}
	return list
}

func TestProjectForRole_AdminSeesEverything(t *testing.T) {
	input := incidentsWithStatuses(models.StatusNew, models.StatusHandled, models.StatusAssigned)

	projected := ProjectForRole(input, models.RoleAdmin)

	assert.Equal(t, input, projected)
}

func TestProjectForRole_PublicSeesEverything(t *testing.T) {
	input := incidentsWithStatuses(models.StatusNew, models.StatusAnalyzing)

	projected := ProjectForRole(input, models.RolePublic)

	assert.Equal(t, input, projected)
}

func TestProjectForRole_WorkerFiltersAndKeepsOrder(t *testing.T) {
	// new, assigned, handling -> только assigned и handling, в исходном порядке
	input := incidentsWithStatuses(models.StatusNew, models.StatusAssigned, models.StatusHandling)

	projected := ProjectForRole(input, models.RoleWorker)

	require.Len(t, projected, 2)
	assert.Equal(t, "2", projected[0].ID)
	assert.Equal(t, models.StatusAssigned, projected[0].Status)
	assert.Equal(t, "3", projected[1].ID)
	assert.Equal(t, models.StatusHandling, projected[1].Status)
}

func TestProjectForRole_WorkerIncludesAnalyzing(t *testing.T) {
	input := incidentsWithStatuses(models.StatusAnalyzing, models.StatusHandled, models.StatusNew)

	projected := ProjectForRole(input, models.RoleWorker)

	require.Len(t, projected, 1)
	assert.Equal(t, "1", projected[0].ID)
}

func TestProjectForRole_DoesNotMutateInput(t *testing.T) {
	input := incidentsWithStatuses(models.StatusNew, models.StatusAssigned)
	before := make([]models.Incident, len(input))
	copy(before, input)

	projected := ProjectForRole(input, models.RoleWorker)
	projected[0].Description = "changed"

	assert.Equal(t, before, input)
}

func TestProjectForRole_IsIdempotent(t *testing.T) {
	input := incidentsWithStatuses(models.StatusHandling, models.StatusNew, models.StatusAnalyzing, models.StatusHandled)

	for _, role := range []models.Role{models.RoleAdmin, models.RoleWorker, models.RolePublic} {
		once := ProjectForRole(input, role)
		twice := ProjectForRole(once, role)
		assert.Equal(t, once, twice, role)
	}
}

func TestProjectForRole_UnknownRoleSeesNothing(t *testing.T) {
	projected := ProjectForRole(incidentsWithStatuses(models.StatusNew), models.Role("guest"))

	assert.NotNil(t, projected)
	assert.Empty(t, projected)
}
