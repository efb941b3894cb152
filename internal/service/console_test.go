package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/dispatch_console/internal/geocode"
	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/shenikar/dispatch_console/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestConsoleService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestConsoleService(t *testing.T) (*consoleService, *mocks.MockIncidentAPI, *mocks.MockGeocoder, *mocks.MockActionJournal) {
	ctrl := gomock.NewController(t)
	apiMock := mocks.NewMockIncidentAPI(ctrl)
	geocoderMock := mocks.NewMockGeocoder(ctrl)
	journalMock := mocks.NewMockActionJournal(ctrl)

	opts := Options{
		PollInterval: func(models.Role) time.Duration { return time.Hour },
		MapFallback:  testFallback,
	}

	service := NewConsoleService(apiMock, geocoderMock, journalMock, nil, newTestLogger(), opts)
	t.Cleanup(service.Close)
	return service.(*consoleService), apiMock, geocoderMock, journalMock
}

// mountLoaded монтирует представление и ждет первого ответа опроса
func mountLoaded(t *testing.T, service *consoleService, role models.Role) string {
	t.Helper()
	state, err := service.MountView(context.Background(), role)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		current, err := service.GetView(context.Background(), state.ID)
		return err == nil && !current.Loading
	}, time.Second, 5*time.Millisecond)
	return state.ID
}

func TestMountView_Success(t *testing.T) {
	// Подготовка
	service, apiMock, geocoderMock, _ := newTestConsoleService(t)
	apiMock.EXPECT().
		ListIncidents(gomock.Any()).
		Return([]models.Incident{{ID: "1", LocationName: "Pune"}, {ID: "2", LocationName: "Surat"}}, nil).
		AnyTimes()
	geocoderMock.EXPECT().DisplayName(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	viewID := mountLoaded(t, service, models.RoleAdmin)

	// Проверки
	state, err := service.GetView(context.Background(), viewID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, state.Role)
	assert.Len(t, state.Incidents, 2)
	assert.Equal(t, "1", state.SelectedID())
	assert.Equal(t, time.Hour, state.PollInterval)
}

func TestMountView_UnknownRole(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().ListIncidents(gomock.Any()).Times(0)

	state, err := service.MountView(context.Background(), models.Role("guest"))

	assert.Nil(t, state)
	assert.True(t, models.IsKind(err, models.KindValidation))
}

func TestGetView_NotFound(t *testing.T) {
	service, _, _, _ := newTestConsoleService(t)

	state, err := service.GetView(context.Background(), "missing")

	assert.Nil(t, state)
	assert.ErrorIs(t, err, models.ErrViewNotFound)
}

func TestUnmountView(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().ListIncidents(gomock.Any()).Return([]models.Incident{}, nil).AnyTimes()
	viewID := mountLoaded(t, service, models.RolePublic)

	require.NoError(t, service.UnmountView(context.Background(), viewID))

	_, err := service.GetView(context.Background(), viewID)
	assert.ErrorIs(t, err, models.ErrViewNotFound)
	assert.ErrorIs(t, service.UnmountView(context.Background(), viewID), models.ErrViewNotFound)
}

func TestSelectIncident(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().
		ListIncidents(gomock.Any()).
		Return([]models.Incident{{ID: "1", LocationName: "a"}, {ID: "2", LocationName: "b"}}, nil).
		AnyTimes()
	viewID := mountLoaded(t, service, models.RoleAdmin)

	state, err := service.SelectIncident(context.Background(), viewID, "2")
	require.NoError(t, err)
	assert.Equal(t, "2", state.SelectedID())

	_, err = service.SelectIncident(context.Background(), viewID, "99")
	assert.ErrorIs(t, err, models.ErrIncidentNotFound)
}

func TestRefreshView_ServerError(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	serverErr := &models.Error{Kind: models.KindServer, Op: "apiclient.ListIncidents", StatusCode: 500, Message: "Failed to load incidents"}
	gomock.InOrder(
		apiMock.EXPECT().ListIncidents(gomock.Any()).Return([]models.Incident{}, nil),
		apiMock.EXPECT().ListIncidents(gomock.Any()).Return(nil, serverErr),
	)
	viewID := mountLoaded(t, service, models.RoleAdmin)

	state, err := service.RefreshView(context.Background(), viewID)

	assert.Nil(t, state)
	assert.True(t, models.IsKind(err, models.KindServer))
	current, err := service.GetView(context.Background(), viewID)
	require.NoError(t, err)
	assert.Equal(t, "Failed to load incidents", current.LastError)
}

func TestRecenter(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().ListIncidents(gomock.Any()).Return([]models.Incident{}, nil).AnyTimes()
	viewID := mountLoaded(t, service, models.RoleWorker)
	flights, cancel, err := service.SubscribeFlights(context.Background(), viewID)
	require.NoError(t, err)
	defer cancel()

	device := models.Location{Latitude: 28.61, Longitude: 77.20}
	fly, err := service.Recenter(context.Background(), viewID, models.DeviceFix{Location: &device})

	require.NoError(t, err)
	assert.Equal(t, models.FlyReasonDevice, fly.Reason)
	assert.Equal(t, 13, fly.Zoom)
	assert.Equal(t, *fly, <-flights)
}

func TestRecenter_GeolocationDenied(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().ListIncidents(gomock.Any()).Return([]models.Incident{}, nil).AnyTimes()
	viewID := mountLoaded(t, service, models.RoleAdmin)

	fly, err := service.Recenter(context.Background(), viewID, models.DeviceFix{Error: "User denied Geolocation"})

	assert.Nil(t, fly)
	assert.True(t, models.IsKind(err, models.KindGeolocation))
}

func TestSubscribeFlights_ReceivesSelection(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().
		ListIncidents(gomock.Any()).
		Return([]models.Incident{{ID: "1", LocationName: "a"}, {ID: "2", LocationName: "b", Location: models.Location{Latitude: 9, Longitude: 76}}}, nil).
		AnyTimes()
	viewID := mountLoaded(t, service, models.RoleAdmin)
	flights, cancel, err := service.SubscribeFlights(context.Background(), viewID)
	require.NoError(t, err)
	defer cancel()

	_, err = service.SelectIncident(context.Background(), viewID, "2")
	require.NoError(t, err)

	fly := <-flights
	assert.Equal(t, "2", fly.IncidentID)
	assert.Equal(t, models.Location{Latitude: 9, Longitude: 76}, fly.Center)
}

func TestSubmitReport_WithoutLocation(t *testing.T) {
	// Подготовка
	service, apiMock, geocoderMock, journalMock := newTestConsoleService(t)
	report := &models.Report{DisasterType: models.DisasterFlood, Description: "Water rising"}

	// Ожидания: ни одного сетевого вызова
	apiMock.EXPECT().ReportIncident(gomock.Any(), gomock.Any()).Times(0)
	geocoderMock.EXPECT().DisplayName(gomock.Any(), gomock.Any()).Times(0)
	journalMock.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := service.SubmitReport(context.Background(), report)

	// Проверки
	assert.Nil(t, result)
	assert.True(t, models.IsKind(err, models.KindValidation))
	assert.Equal(t, "Please select a location on the map", models.UserMessage(err))
}

func TestSubmitReport_Success(t *testing.T) {
	service, apiMock, geocoderMock, journalMock := newTestConsoleService(t)
	loc := &models.Location{Latitude: 19.07, Longitude: 72.87}
	report := &models.Report{DisasterType: models.DisasterFlood, Description: "Water rising", Location: loc}
	expected := &models.ReportResult{ImmediateInstructions: []string{"Move to higher ground"}}

	geocoderMock.EXPECT().DisplayName(gomock.Any(), *loc).Return("Mumbai, Maharashtra").Times(1)
	apiMock.EXPECT().
		ReportIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Report) (*models.ReportResult, error) {
			assert.Equal(t, "Mumbai, Maharashtra", r.LocationName)
			return expected, nil
		}).Times(1)
	journalMock.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *models.ActionRecord) error {
			assert.Equal(t, models.ActionReportSubmitted, rec.Action)
			assert.Equal(t, "Flood", rec.DisasterType)
			require.NotNil(t, rec.Latitude)
			assert.Equal(t, 19.07, *rec.Latitude)
			return nil
		}).Times(1)

	result, err := service.SubmitReport(context.Background(), report)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestSubmitReport_PlaceholderAddressNotSent(t *testing.T) {
	service, apiMock, geocoderMock, journalMock := newTestConsoleService(t)
	report := &models.Report{DisasterType: models.DisasterFire, Location: &models.Location{Latitude: 1, Longitude: 2}}

	geocoderMock.EXPECT().DisplayName(gomock.Any(), gomock.Any()).Return(geocode.Placeholder)
	apiMock.EXPECT().
		ReportIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Report) (*models.ReportResult, error) {
			assert.Empty(t, r.LocationName)
			return &models.ReportResult{}, nil
		})
	journalMock.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	_, err := service.SubmitReport(context.Background(), report)

	require.NoError(t, err)
}

func TestSubmitReport_ServerError(t *testing.T) {
	service, apiMock, geocoderMock, journalMock := newTestConsoleService(t)
	report := &models.Report{DisasterType: models.DisasterFire, Location: &models.Location{Latitude: 1, Longitude: 2}, LocationName: "Known"}
	serverErr := &models.Error{Kind: models.KindServer, Op: "apiclient.ReportIncident", StatusCode: 500, Message: "Failed to submit report"}

	geocoderMock.EXPECT().DisplayName(gomock.Any(), gomock.Any()).Times(0)
	apiMock.EXPECT().ReportIncident(gomock.Any(), report).Return(nil, serverErr)
	journalMock.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	result, err := service.SubmitReport(context.Background(), report)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, serverErr)
	assert.Equal(t, "Failed to submit report", models.UserMessage(err))
}

func TestUpdateWorkerStatus_Success(t *testing.T) {
	service, apiMock, _, journalMock := newTestConsoleService(t)

	apiMock.EXPECT().
		PatchWorkerStatus(gomock.Any(), "inc-1", models.StatusPatch{WorkerType: "fire_brigade", Status: "enroute"}).
		Return(nil).Times(1)
	journalMock.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *models.ActionRecord) error {
			assert.Equal(t, models.ActionWorkerStatusUpdated, rec.Action)
			assert.Equal(t, "inc-1", rec.IncidentID)
			assert.Equal(t, "fire_brigade", rec.WorkerType)
			assert.Equal(t, "enroute", rec.Status)
			return nil
		})

	err := service.UpdateWorkerStatus(context.Background(), "inc-1", "fire_brigade", models.WorkerEnroute)

	require.NoError(t, err)
}

func TestUpdateWorkerStatus_InvalidStatus(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().PatchWorkerStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := service.UpdateWorkerStatus(context.Background(), "inc-1", "police", models.WorkerStatus("sleeping"))

	assert.True(t, models.IsKind(err, models.KindValidation))
}

func TestUpdateWorkerStatus_MissingWorkerType(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().PatchWorkerStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := service.UpdateWorkerStatus(context.Background(), "inc-1", " ", models.WorkerOnsite)

	assert.True(t, models.IsKind(err, models.KindValidation))
}

func TestAssignWorkers_JournalFailureIgnored(t *testing.T) {
	service, apiMock, _, journalMock := newTestConsoleService(t)

	apiMock.EXPECT().
		PatchWorkerStatus(gomock.Any(), "inc-7", models.StatusPatch{Status: "assigned"}).
		Return(nil)
	journalMock.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("db is down"))

	err := service.AssignWorkers(context.Background(), "inc-7")

	require.NoError(t, err)
}

func TestAssignWorkers_NetworkError(t *testing.T) {
	service, apiMock, _, journalMock := newTestConsoleService(t)
	netErr := &models.Error{Kind: models.KindNetwork, Op: "apiclient.PatchWorkerStatus", Message: "Network error. Please check your connection"}

	apiMock.EXPECT().PatchWorkerStatus(gomock.Any(), "inc-7", gomock.Any()).Return(netErr)
	journalMock.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	err := service.AssignWorkers(context.Background(), "inc-7")

	assert.True(t, models.IsKind(err, models.KindNetwork))
}

func TestRecentActions_ClampsLimit(t *testing.T) {
	service, _, _, journalMock := newTestConsoleService(t)
	records := []*models.ActionRecord{{ID: 1, Action: models.ActionWorkersAssigned}}

	journalMock.EXPECT().ListRecent(gomock.Any(), 20).Return(records, nil).Times(2)
	journalMock.EXPECT().ListRecent(gomock.Any(), 50).Return(records, nil).Times(1)

	for _, limit := range []int{0, 500, 50} {
		got, err := service.RecentActions(context.Background(), limit)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	}
}

func TestResolveAddress(t *testing.T) {
	service, _, geocoderMock, _ := newTestConsoleService(t)
	loc := models.Location{Latitude: 12.97, Longitude: 77.59}
	geocoderMock.EXPECT().DisplayName(gomock.Any(), loc).Return("Bengaluru")

	assert.Equal(t, "Bengaluru", service.ResolveAddress(context.Background(), loc))
}

func TestReapIdle_UnmountsStaleViews(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().ListIncidents(gomock.Any()).Return([]models.Incident{}, nil).AnyTimes()
	viewID := mountLoaded(t, service, models.RoleAdmin)

	service.opts.IdleTimeout = time.Millisecond
	time.Sleep(5 * time.Millisecond)
	service.reapIdle(context.Background())

	_, err := service.GetView(context.Background(), viewID)
	assert.ErrorIs(t, err, models.ErrViewNotFound)
}

func TestReapIdle_KeepsViewsWithOpenStream(t *testing.T) {
	service, apiMock, _, _ := newTestConsoleService(t)
	apiMock.EXPECT().ListIncidents(gomock.Any()).Return([]models.Incident{}, nil).AnyTimes()
	viewID := mountLoaded(t, service, models.RoleAdmin)
	flights, cancel, err := service.SubscribeFlights(context.Background(), viewID)
	require.NoError(t, err)
	defer cancel()

	service.opts.IdleTimeout = time.Millisecond
	time.Sleep(5 * time.Millisecond)
	service.reapIdle(context.Background())

	_, err = service.GetView(context.Background(), viewID)
	require.NoError(t, err)
	select {
	case _, ok := <-flights:
		assert.True(t, ok, "event stream closed by reaper")
	default:
	}
}

func TestNewConsoleService_NilJournal(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewConsoleService(mocks.NewMockIncidentAPI(ctrl), nil, nil, nil, newTestLogger(), Options{})
	defer service.Close()

	records, err := service.RecentActions(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, geocode.Placeholder, service.ResolveAddress(context.Background(), models.Location{}))
}
