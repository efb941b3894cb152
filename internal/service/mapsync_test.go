package service

import (
	"testing"
	"time"

	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFallback = models.Location{Latitude: 20.5937, Longitude: 78.9629}

func TestDefaultMapConfig_WorkerZoomsOutFurther(t *testing.T) {
	admin := DefaultMapConfig(models.RoleAdmin, testFallback)
	worker := DefaultMapConfig(models.RoleWorker, testFallback)

	assert.Equal(t, 16, admin.FocusedZoom)
	assert.Equal(t, 13, worker.FocusedZoom)
	assert.Equal(t, 5, admin.OverviewZoom)
	assert.Equal(t, 1500*time.Millisecond, admin.FlyDuration)
	assert.Equal(t, 0.25, admin.EaseLinearity)
}

func TestMapSync_ViewportFallbackWhenEmpty(t *testing.T) {
	m := NewMapSync(DefaultMapConfig(models.RoleAdmin, testFallback))

	vp := m.Viewport(nil, nil)

	assert.Equal(t, testFallback, vp.Center)
	assert.Equal(t, 5, vp.Zoom)
	assert.Nil(t, vp.Bounds)
}

func TestMapSync_ViewportCentersOnSelected(t *testing.T) {
	m := NewMapSync(DefaultMapConfig(models.RoleAdmin, testFallback))
	incidents := []models.Incident{
		{ID: "1", Location: models.Location{Latitude: 10, Longitude: 70}},
		{ID: "2", Location: models.Location{Latitude: 12, Longitude: 75}},
	}

	vp := m.Viewport(incidents, &incidents[1])

	assert.Equal(t, incidents[1].Location, vp.Center)
	assert.Equal(t, 16, vp.Zoom)
	require.NotNil(t, vp.Bounds)
	assert.InDelta(t, 10, vp.Bounds.SouthWest.Latitude, 1e-9)
	assert.InDelta(t, 70, vp.Bounds.SouthWest.Longitude, 1e-9)
	assert.InDelta(t, 12, vp.Bounds.NorthEast.Latitude, 1e-9)
	assert.InDelta(t, 75, vp.Bounds.NorthEast.Longitude, 1e-9)
}

func TestMapSync_ObserveFliesOncePerSelection(t *testing.T) {
	m := NewMapSync(DefaultMapConfig(models.RoleWorker, testFallback))
	first := &models.Incident{ID: "1", Location: models.Location{Latitude: 10, Longitude: 70}}

	fly := m.Observe(first)
	require.NotNil(t, fly)
	assert.Equal(t, "1", fly.IncidentID)
	assert.Equal(t, 13, fly.Zoom)
	assert.Equal(t, models.FlyReasonSelection, fly.Reason)

	// тот же id с обновленным телом - перелета нет
	updated := *first
	updated.Analysis = &models.Analysis{OperatorInstructions: []string{"Stay indoors"}}
	assert.Nil(t, m.Observe(&updated))

	second := &models.Incident{ID: "2", Location: models.Location{Latitude: 11, Longitude: 71}}
	fly = m.Observe(second)
	require.NotNil(t, fly)
	assert.Equal(t, second.Location, fly.Center)
}

func TestMapSync_ObserveNilDoesNotFly(t *testing.T) {
	m := NewMapSync(DefaultMapConfig(models.RoleAdmin, testFallback))

	assert.Nil(t, m.Observe(nil))
}

func TestMapSync_RecenterHoldsUntilSelectionChanges(t *testing.T) {
	m := NewMapSync(DefaultMapConfig(models.RoleAdmin, testFallback))
	incident := models.Incident{ID: "1", Location: models.Location{Latitude: 10, Longitude: 70}}
	m.Observe(&incident)

	device := models.Location{Latitude: 28.6, Longitude: 77.2}
	fly := m.Recenter(device)
	assert.Equal(t, models.FlyReasonDevice, fly.Reason)
	assert.Equal(t, 2*time.Second, fly.Duration)
	assert.Empty(t, fly.IncidentID)

	vp := m.Viewport([]models.Incident{incident}, &incident)
	assert.Equal(t, device, vp.Center)

	other := models.Incident{ID: "2", Location: models.Location{Latitude: 11, Longitude: 71}}
	require.NotNil(t, m.Observe(&other))
	vp = m.Viewport([]models.Incident{incident, other}, &other)
	assert.Equal(t, other.Location, vp.Center)
}
