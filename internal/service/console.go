package service

//go:generate mockgen -source=console.go -destination=mocks/mock_console.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/dispatch_console/internal/geocode"
	"github.com/shenikar/dispatch_console/internal/metrics"
	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/sirupsen/logrus"
)

// IncidentAPI определяет контракт внешнего API инцидентов
type IncidentAPI interface {
	ListIncidents(ctx context.Context) ([]models.Incident, error)
	ReportIncident(ctx context.Context, report *models.Report) (*models.ReportResult, error)
	PatchWorkerStatus(ctx context.Context, incidentID string, patch models.StatusPatch) error
}

// Geocoder возвращает адрес точки; при неудаче - заглушку
type Geocoder interface {
	DisplayName(ctx context.Context, loc models.Location) string
}

// ActionJournal определяет контракт журнала действий консоли
type ActionJournal interface {
	Record(ctx context.Context, record *models.ActionRecord) error
	ListRecent(ctx context.Context, limit int) ([]*models.ActionRecord, error)
}

// ConsoleService определяет контракт для работы представлений консоли
type ConsoleService interface {
	MountView(ctx context.Context, role models.Role) (*models.ViewState, error)
	UnmountView(ctx context.Context, viewID string) error
	GetView(ctx context.Context, viewID string) (*models.ViewState, error)
	RefreshView(ctx context.Context, viewID string) (*models.ViewState, error)
	SelectIncident(ctx context.Context, viewID, incidentID string) (*models.ViewState, error)
	Recenter(ctx context.Context, viewID string, fix models.DeviceFix) (*models.FlyTransition, error)
	SubscribeFlights(ctx context.Context, viewID string) (<-chan models.FlyTransition, func(), error)
	SubmitReport(ctx context.Context, report *models.Report) (*models.ReportResult, error)
	UpdateWorkerStatus(ctx context.Context, incidentID, workerType string, status models.WorkerStatus) error
	AssignWorkers(ctx context.Context, incidentID string) error
	ResolveAddress(ctx context.Context, loc models.Location) string
	RecentActions(ctx context.Context, limit int) ([]*models.ActionRecord, error)
	Close()
}

// Options - настройки представлений
type Options struct {
	PollInterval func(role models.Role) time.Duration
	IdleTimeout  time.Duration
	MapFallback  models.Location
}

type consoleService struct {
	api      IncidentAPI
	geocoder Geocoder
	journal  ActionJournal
	metrics  *metrics.Collector
	logger   *logrus.Logger
	opts     Options

	baseCtx context.Context
	cancel  context.CancelFunc
	reaper  *Poller

	mu    sync.RWMutex
	views map[string]*View
}

// NewConsoleService создает сервис. geocoder, journal и collector могут быть nil.
func NewConsoleService(api IncidentAPI, geocoder Geocoder, journal ActionJournal, collector *metrics.Collector, logger *logrus.Logger, opts Options) ConsoleService {
	if journal == nil {
		journal = nopJournal{}
	}
	if opts.PollInterval == nil {
		opts.PollInterval = func(role models.Role) time.Duration {
			if role == models.RoleWorker {
				return 5 * time.Second
			}
			return 30 * time.Second
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &consoleService{
		api:      api,
		geocoder: geocoder,
		journal:  journal,
		metrics:  collector,
		logger:   logger,
		opts:     opts,
		baseCtx:  ctx,
		cancel:   cancel,
		views:    map[string]*View{},
	}

	if opts.IdleTimeout > 0 {
		s.reaper = NewPoller("view-reaper", reaperInterval(opts.IdleTimeout), s.reapIdle, logger)
		s.reaper.Start(ctx)
	}
	return s
}

func reaperInterval(idle time.Duration) time.Duration {
	interval := idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// MountView создает представление роли и запускает его опрос
func (s *consoleService) MountView(ctx context.Context, role models.Role) (*models.ViewState, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "console",
		"method":  "MountView",
		"role":    role,
	})

	if !role.Valid() {
		log.Warn("Attempted to mount a view with unknown role")
		return nil, models.NewValidationError("service.MountView", fmt.Sprintf("unknown role %q", role))
	}

	id := uuid.NewString()
	interval := s.opts.PollInterval(role)
	view := newView(s.baseCtx, id, role, interval, DefaultMapConfig(role, s.opts.MapFallback), viewDeps{
		api:      s.api,
		geocoder: s.geocoder,
		metrics:  s.metrics,
		logger:   s.logger,
	})

	s.mu.Lock()
	s.views[id] = view
	s.mu.Unlock()

	view.Start()
	s.metrics.ViewMounted(string(role))

	log.WithFields(logrus.Fields{"view_id": id, "interval": interval.String()}).Info("View mounted")
	return view.Snapshot(), nil
}

// UnmountView останавливает опрос представления и удаляет его
func (s *consoleService) UnmountView(ctx context.Context, viewID string) error {
	s.mu.Lock()
	view, ok := s.views[viewID]
	if ok {
		delete(s.views, viewID)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("service: could not unmount view %s: %w", viewID, models.ErrViewNotFound)
	}

	view.Close()
	s.metrics.ViewUnmounted(string(view.role))
	s.logger.WithFields(logrus.Fields{
		"service": "console",
		"method":  "UnmountView",
		"view_id": viewID,
	}).Info("View unmounted")
	return nil
}

func (s *consoleService) view(viewID string) (*View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view, ok := s.views[viewID]
	if !ok {
		return nil, models.ErrViewNotFound
	}
	return view, nil
}

// GetView возвращает текущее состояние представления
func (s *consoleService) GetView(ctx context.Context, viewID string) (*models.ViewState, error) {
	view, err := s.view(viewID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get view: %w", err)
	}
	return view.Snapshot(), nil
}

// RefreshView - ручное обновление (кнопка "обновить")
func (s *consoleService) RefreshView(ctx context.Context, viewID string) (*models.ViewState, error) {
	view, err := s.view(viewID)
	if err != nil {
		return nil, fmt.Errorf("service: could not refresh view: %w", err)
	}
	if err := view.Refresh(ctx); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "console",
			"method":  "RefreshView",
			"view_id": viewID,
		}).WithError(err).Warn("Manual refresh failed")
		return nil, fmt.Errorf("service: could not refresh view: %w", err)
	}
	return view.Snapshot(), nil
}

// SelectIncident применяет выбор пользователя
func (s *consoleService) SelectIncident(ctx context.Context, viewID, incidentID string) (*models.ViewState, error) {
	view, err := s.view(viewID)
	if err != nil {
		return nil, fmt.Errorf("service: could not select incident: %w", err)
	}
	state, err := view.Select(incidentID)
	if err != nil {
		return nil, fmt.Errorf("service: could not select incident %s: %w", incidentID, err)
	}
	return state, nil
}

// Recenter центрирует карту представления на позиции устройства
func (s *consoleService) Recenter(ctx context.Context, viewID string, fix models.DeviceFix) (*models.FlyTransition, error) {
	view, err := s.view(viewID)
	if err != nil {
		return nil, fmt.Errorf("service: could not recenter view: %w", err)
	}
	if fix.Error != "" || fix.Location == nil {
		s.logger.WithFields(logrus.Fields{
			"service":      "console",
			"method":       "Recenter",
			"view_id":      viewID,
			"device_error": fix.Error,
		}).Warn("Device location unavailable")
		return nil, models.NewGeolocationError("service.Recenter", "Unable to get your current location")
	}
	fly := view.Recenter(*fix.Location)
	return &fly, nil
}

// SubscribeFlights подписывает на перелеты карты представления
func (s *consoleService) SubscribeFlights(ctx context.Context, viewID string) (<-chan models.FlyTransition, func(), error) {
	view, err := s.view(viewID)
	if err != nil {
		return nil, nil, fmt.Errorf("service: could not subscribe: %w", err)
	}
	ch, cancel := view.Subscribe()
	return ch, cancel, nil
}

// SubmitReport отправляет заявку от публичного интерфейса
func (s *consoleService) SubmitReport(ctx context.Context, report *models.Report) (*models.ReportResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "console",
		"method":  "SubmitReport",
	})

	if report == nil || report.Location == nil {
		log.Warn("Report submitted without location")
		return nil, models.NewValidationError("service.SubmitReport", "Please select a location on the map")
	}
	log = log.WithField("disaster_type", report.DisasterType)
	log.Info("Attempting to submit a new report")

	if report.LocationName == "" && s.geocoder != nil {
		if name := s.geocoder.DisplayName(ctx, *report.Location); name != geocode.Placeholder {
			report.LocationName = name
		}
	}

	result, err := s.api.ReportIncident(ctx, report)
	if err != nil {
		log.WithError(err).Warn("Failed to submit report")
		return nil, fmt.Errorf("service: could not submit report: %w", err)
	}

	lat, lon := report.Location.Latitude, report.Location.Longitude
	s.record(ctx, &models.ActionRecord{
		Action:       models.ActionReportSubmitted,
		DisasterType: string(report.DisasterType),
		Latitude:     &lat,
		Longitude:    &lon,
	})
	log.WithField("instructions", len(result.ImmediateInstructions)).Info("Report submitted successfully")
	return result, nil
}

// UpdateWorkerStatus меняет статус выездной группы
func (s *consoleService) UpdateWorkerStatus(ctx context.Context, incidentID, workerType string, status models.WorkerStatus) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "console",
		"method":      "UpdateWorkerStatus",
		"incident_id": incidentID,
		"worker_type": workerType,
		"status":      status,
	})

	if strings.TrimSpace(workerType) == "" {
		return models.NewValidationError("service.UpdateWorkerStatus", "worker type is required")
	}
	if !status.Valid() {
		return models.NewValidationError("service.UpdateWorkerStatus", fmt.Sprintf("unknown worker status %q", status))
	}

	if err := s.api.PatchWorkerStatus(ctx, incidentID, models.StatusPatch{WorkerType: workerType, Status: string(status)}); err != nil {
		log.WithError(err).Error("Failed to update worker status")
		return fmt.Errorf("service: could not update worker status: %w", err)
	}

	s.record(ctx, &models.ActionRecord{
		Action:     models.ActionWorkerStatusUpdated,
		IncidentID: incidentID,
		WorkerType: workerType,
		Status:     string(status),
	})
	log.Info("Worker status updated")
	s.refreshAll()
	return nil
}

// AssignWorkers переводит инцидент в статус assigned
func (s *consoleService) AssignWorkers(ctx context.Context, incidentID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "console",
		"method":      "AssignWorkers",
		"incident_id": incidentID,
	})

	if err := s.api.PatchWorkerStatus(ctx, incidentID, models.StatusPatch{Status: string(models.StatusAssigned)}); err != nil {
		log.WithError(err).Error("Failed to assign workers")
		return fmt.Errorf("service: could not assign workers: %w", err)
	}

	s.record(ctx, &models.ActionRecord{
		Action:     models.ActionWorkersAssigned,
		IncidentID: incidentID,
		Status:     string(models.StatusAssigned),
	})
	log.Info("Workers assigned")
	s.refreshAll()
	return nil
}

// ResolveAddress возвращает адрес точки или заглушку
func (s *consoleService) ResolveAddress(ctx context.Context, loc models.Location) string {
	if s.geocoder == nil {
		return geocode.Placeholder
	}
	return s.geocoder.DisplayName(ctx, loc)
}

// RecentActions возвращает последние записи журнала
func (s *consoleService) RecentActions(ctx context.Context, limit int) ([]*models.ActionRecord, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	records, err := s.journal.ListRecent(ctx, limit)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "console",
			"method":  "RecentActions",
		}).WithError(err).Error("Failed to list journal")
		return nil, fmt.Errorf("service: could not list actions: %w", err)
	}
	return records, nil
}

// Close размонтирует все представления
func (s *consoleService) Close() {
	if s.reaper != nil {
		s.reaper.Stop()
	}

	s.mu.Lock()
	views := s.views
	s.views = map[string]*View{}
	s.mu.Unlock()

	for _, view := range views {
		view.Close()
		s.metrics.ViewUnmounted(string(view.role))
	}
	s.cancel()
	s.logger.WithField("views", len(views)).Info("Console service stopped")
}

// record пишет действие в журнал; ошибка журнала не влияет на результат
func (s *consoleService) record(ctx context.Context, record *models.ActionRecord) {
	if err := s.journal.Record(ctx, record); err != nil {
		s.logger.WithError(err).WithField("action", record.Action).Warn("Failed to record action")
	}
}

// refreshAll обновляет все представления после изменения данных
func (s *consoleService) refreshAll() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, view := range s.views {
		view.TriggerRefresh()
	}
}

// reapIdle размонтирует представления, к которым давно не обращались
func (s *consoleService) reapIdle(ctx context.Context) {
	cutoff := time.Now().Add(-s.opts.IdleTimeout)

	s.mu.RLock()
	var idle []string
	for id, view := range s.views {
		if view.IdleSince().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range idle {
		if err := s.UnmountView(ctx, id); err == nil {
			s.logger.WithField("view_id", id).Info("Idle view unmounted")
		}
	}
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, *models.ActionRecord) error { return nil }

func (nopJournal) ListRecent(context.Context, int) ([]*models.ActionRecord, error) {
	return []*models.ActionRecord{}, nil
}
