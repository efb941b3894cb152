package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/dispatch_console/internal/geocode"
	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI отдает список инцидентов через подставляемую функцию
type fakeAPI struct {
	list func(ctx context.Context) ([]models.Incident, error)
}

func (f *fakeAPI) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	return f.list(ctx)
}

func (f *fakeAPI) ReportIncident(context.Context, *models.Report) (*models.ReportResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) PatchWorkerStatus(context.Context, string, models.StatusPatch) error {
	return errors.New("not implemented")
}

type geocoderFunc func(ctx context.Context, loc models.Location) string

func (f geocoderFunc) DisplayName(ctx context.Context, loc models.Location) string {
	return f(ctx, loc)
}

func newTestView(t *testing.T, role models.Role, api IncidentAPI, geocoder Geocoder) *View {
	t.Helper()
	v := newView(context.Background(), "view-1", role, time.Hour, DefaultMapConfig(role, testFallback), viewDeps{
		api:      api,
		geocoder: geocoder,
		logger:   newTestLogger(),
	})
	t.Cleanup(v.Close)
	return v
}

func staticList(list []models.Incident) *fakeAPI {
	return &fakeAPI{list: func(context.Context) ([]models.Incident, error) { return list, nil }}
}

func TestView_EmptyFirstLoad(t *testing.T) {
	v := newTestView(t, models.RoleAdmin, staticList([]models.Incident{}), nil)

	require.NoError(t, v.Refresh(context.Background()))

	state := v.Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Incidents)
	assert.Nil(t, state.Selected)
	assert.Equal(t, testFallback, state.Viewport.Center)
	assert.Equal(t, 5, state.Viewport.Zoom)
}

func TestView_FirstLoadAutoSelects(t *testing.T) {
	v := newTestView(t, models.RoleAdmin, staticList([]models.Incident{{ID: "1", Status: models.StatusNew}}), nil)
	assert.True(t, v.Snapshot().Loading)

	require.NoError(t, v.Refresh(context.Background()))

	assert.Equal(t, "1", v.Snapshot().SelectedID())
}

func TestView_WorkerProjection(t *testing.T) {
	v := newTestView(t, models.RoleWorker, staticList(incidentsWithStatuses(models.StatusNew, models.StatusAssigned, models.StatusHandling)), nil)

	require.NoError(t, v.Refresh(context.Background()))

	state := v.Snapshot()
	require.Len(t, state.Incidents, 2)
	assert.Equal(t, "2", state.Incidents[0].ID)
	assert.Equal(t, "3", state.Incidents[1].ID)
	assert.Equal(t, "2", state.SelectedID())
}

func TestView_DiscardsStaleResponse(t *testing.T) {
	older := []models.Incident{{ID: "old"}}
	newer := []models.Incident{{ID: "new"}}
	release := make(chan struct{})
	var calls atomic.Int32
	api := &fakeAPI{list: func(context.Context) ([]models.Incident, error) {
		if calls.Add(1) == 1 {
			<-release
			return older, nil
		}
		return newer, nil
	}}
	v := newTestView(t, models.RoleAdmin, api, nil)

	done := make(chan error, 1)
	go func() { done <- v.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, v.Refresh(context.Background()))
	close(release)
	require.NoError(t, <-done)

	state := v.Snapshot()
	require.Len(t, state.Incidents, 1)
	assert.Equal(t, "new", state.Incidents[0].ID)
}

func TestView_DiscardsResponseAfterClose(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{list: func(context.Context) ([]models.Incident, error) {
		close(started)
		<-release
		return []models.Incident{{ID: "1"}}, nil
	}}
	v := newTestView(t, models.RoleAdmin, api, nil)

	done := make(chan error, 1)
	go func() { done <- v.Refresh(context.Background()) }()
	<-started
	v.Close()
	close(release)

	require.NoError(t, <-done)
	assert.Empty(t, v.Snapshot().Incidents)
}

func TestView_ErrorKeepsPreviousList(t *testing.T) {
	var fail atomic.Bool
	api := &fakeAPI{list: func(context.Context) ([]models.Incident, error) {
		if fail.Load() {
			return nil, &models.Error{Kind: models.KindNetwork, Op: "test", Message: "Network error. Please check your connection"}
		}
		return []models.Incident{{ID: "1"}}, nil
	}}
	v := newTestView(t, models.RoleAdmin, api, nil)
	require.NoError(t, v.Refresh(context.Background()))

	fail.Store(true)
	err := v.Refresh(context.Background())

	require.Error(t, err)
	state := v.Snapshot()
	assert.Equal(t, "Network error. Please check your connection", state.LastError)
	require.Len(t, state.Incidents, 1)
	assert.Equal(t, "1", state.SelectedID())

	fail.Store(false)
	require.NoError(t, v.Refresh(context.Background()))
	assert.Empty(t, v.Snapshot().LastError)
}

func TestView_AnalysisUpdateDoesNotFlyAgain(t *testing.T) {
	var withAnalysis atomic.Bool
	api := &fakeAPI{list: func(context.Context) ([]models.Incident, error) {
		incident := models.Incident{ID: "1", Status: models.StatusNew}
		if withAnalysis.Load() {
			incident.Status = models.StatusAnalyzing
			incident.Analysis = &models.Analysis{OperatorInstructions: []string{"Dispatch boats"}}
		}
		return []models.Incident{incident}, nil
	}}
	v := newTestView(t, models.RoleAdmin, api, nil)
	flights, cancel := v.Subscribe()
	defer cancel()

	require.NoError(t, v.Refresh(context.Background()))
	withAnalysis.Store(true)
	require.NoError(t, v.Refresh(context.Background()))

	state := v.Snapshot()
	assert.Equal(t, "1", state.SelectedID())
	assert.Equal(t, []string{"Dispatch boats"}, state.Selected.Instructions())

	first := <-flights
	assert.Equal(t, "1", first.IncidentID)
	select {
	case extra := <-flights:
		t.Fatalf("unexpected fly transition: %+v", extra)
	default:
	}
}

func TestView_VanishedSelectionReselects(t *testing.T) {
	var second atomic.Bool
	api := &fakeAPI{list: func(context.Context) ([]models.Incident, error) {
		if second.Load() {
			return []models.Incident{{ID: "2"}}, nil
		}
		return []models.Incident{{ID: "1"}, {ID: "2"}}, nil
	}}
	v := newTestView(t, models.RoleAdmin, api, nil)
	require.NoError(t, v.Refresh(context.Background()))
	require.Equal(t, "1", v.Snapshot().SelectedID())

	second.Store(true)
	require.NoError(t, v.Refresh(context.Background()))

	assert.Equal(t, "2", v.Snapshot().SelectedID())
}

func TestView_SelectUnknownIncident(t *testing.T) {
	v := newTestView(t, models.RoleAdmin, staticList([]models.Incident{{ID: "1"}}), nil)
	require.NoError(t, v.Refresh(context.Background()))

	_, err := v.Select("42")

	assert.ErrorIs(t, err, models.ErrIncidentNotFound)
	assert.Equal(t, "1", v.Snapshot().SelectedID())
}

func TestView_ResolvesAddresses(t *testing.T) {
	geocoder := geocoderFunc(func(_ context.Context, loc models.Location) string {
		if loc.Latitude == 19.07 {
			return "Mumbai, Maharashtra"
		}
		return geocode.Placeholder
	})
	api := staticList([]models.Incident{
		{ID: "1", Location: models.Location{Latitude: 19.07, Longitude: 72.87}},
		{ID: "2", Location: models.Location{Latitude: 1, Longitude: 1}},
		{ID: "3", LocationName: "Chennai"},
	})
	v := newTestView(t, models.RoleAdmin, api, geocoder)

	require.NoError(t, v.Refresh(context.Background()))

	assert.Eventually(t, func() bool {
		addresses := v.Snapshot().Addresses
		return addresses["1"] == "Mumbai, Maharashtra" && addresses["2"] == geocode.Placeholder
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Chennai", v.Snapshot().Addresses["3"])
}

func TestView_SubscribeAfterCloseIsClosed(t *testing.T) {
	v := newTestView(t, models.RoleAdmin, staticList(nil), nil)
	v.Close()

	flights, cancel := v.Subscribe()
	defer cancel()

	_, ok := <-flights
	assert.False(t, ok)
}

func TestView_CloseClosesSubscribers(t *testing.T) {
	v := newTestView(t, models.RoleAdmin, staticList(nil), nil)
	flights, cancel := v.Subscribe()

	v.Close()
	cancel()

	_, ok := <-flights
	assert.False(t, ok)
}

func TestView_ErrorDoesNotHideEarlierSuccess(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	api := &fakeAPI{list: func(context.Context) ([]models.Incident, error) {
		if calls.Add(1) == 1 {
			<-release
			return []models.Incident{{ID: "1"}}, nil
		}
		return nil, &models.Error{Kind: models.KindServer, Op: "test", StatusCode: 500, Message: "Failed to load incidents"}
	}}
	v := newTestView(t, models.RoleAdmin, api, nil)

	done := make(chan error, 1)
	go func() { done <- v.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	// второй запрос завершается ошибкой раньше первого
	require.Error(t, v.Refresh(context.Background()))
	close(release)
	require.NoError(t, <-done)

	state := v.Snapshot()
	require.Len(t, state.Incidents, 1)
	assert.Equal(t, "1", state.SelectedID())
	assert.Empty(t, state.LastError)
}

func TestView_WorkerErrorMessage(t *testing.T) {
	var kind atomic.Value
	kind.Store(models.KindServer)
	api := &fakeAPI{list: func(context.Context) ([]models.Incident, error) {
		k := kind.Load().(models.ErrorKind)
		return nil, &models.Error{Kind: k, Op: "test", Message: "Network error. Please check your connection"}
	}}
	v := newTestView(t, models.RoleWorker, api, nil)

	require.Error(t, v.Refresh(context.Background()))
	assert.Equal(t, "Failed to load assignments", v.Snapshot().LastError)

	kind.Store(models.KindNetwork)
	require.Error(t, v.Refresh(context.Background()))
	assert.Equal(t, "Network error. Please check your connection", v.Snapshot().LastError)
}

func TestView_OpenStreamKeepsViewActive(t *testing.T) {
	v := newTestView(t, models.RoleAdmin, staticList(nil), nil)
	_, cancel := v.Subscribe()
	before := time.Now()

	time.Sleep(5 * time.Millisecond)
	assert.False(t, v.IdleSince().Before(before))

	cancel()
	idle := v.IdleSince()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, idle, v.IdleSince())
}
