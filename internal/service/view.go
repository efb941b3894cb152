package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shenikar/dispatch_console/internal/geocode"
	"github.com/shenikar/dispatch_console/internal/metrics"
	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 8

// View - смонтированное представление одной роли: свой опрос,
// свой выбор и своя карта. Общего изменяемого состояния с другими
// представлениями нет.
type View struct {
	id       string
	role     models.Role
	interval time.Duration
	api      IncidentAPI
	geocoder Geocoder
	metrics  *metrics.Collector
	logger   *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
	poller *Poller

	// номер последнего выданного запроса
	issued atomic.Uint64

	mu          sync.Mutex
	applied     uint64
	incidents   []models.Incident
	selection   Selection
	mapSync     *MapSync
	addresses   map[string]string
	resolving   map[string]bool
	lastError   string
	loading     bool
	refreshedAt time.Time
	lastSeen    time.Time
	closed      bool
	subscribers map[int]chan models.FlyTransition
	nextSub     int
}

type viewDeps struct {
	api      IncidentAPI
	geocoder Geocoder
	metrics  *metrics.Collector
	logger   *logrus.Logger
}

func newView(parent context.Context, id string, role models.Role, interval time.Duration, mapCfg MapConfig, deps viewDeps) *View {
	ctx, cancel := context.WithCancel(parent)
	v := &View{
		id:          id,
		role:        role,
		interval:    interval,
		api:         deps.api,
		geocoder:    deps.geocoder,
		metrics:     deps.metrics,
		logger:      deps.logger,
		ctx:         ctx,
		cancel:      cancel,
		mapSync:     NewMapSync(mapCfg),
		addresses:   map[string]string{},
		resolving:   map[string]bool{},
		loading:     true,
		lastSeen:    time.Now(),
		subscribers: map[int]chan models.FlyTransition{},
	}
	v.poller = NewPoller("view-"+string(role)+"-"+id, interval, v.poll, deps.logger)
	return v
}

func (v *View) log() *logrus.Entry {
	return v.logger.WithFields(logrus.Fields{
		"service": "view",
		"view_id": v.id,
		"role":    v.role,
	})
}

// Start запускает опрос
func (v *View) Start() {
	v.poller.Start(v.ctx)
}

// poll - тик планировщика; ошибки только логируются
func (v *View) poll(ctx context.Context) {
	if err := v.Refresh(ctx); err != nil {
		v.log().WithError(err).Warn("Incident refresh failed")
	}
}

// TriggerRefresh запускает внеочередное обновление в фоне
func (v *View) TriggerRefresh() {
	go v.poll(v.ctx)
}

// Refresh загружает список инцидентов и применяет его, если ответ
// не устарел. Ответ, пришедший после более нового, отбрасывается.
func (v *View) Refresh(ctx context.Context) error {
	seq := v.issued.Add(1)
	start := time.Now()
	incidents, err := v.api.ListIncidents(ctx)
	elapsed := time.Since(start)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		// представление уже размонтировано, результат никому не нужен
		return nil
	}
	if seq <= v.applied {
		v.metrics.IncStale(string(v.role))
		v.log().WithFields(logrus.Fields{"seq": seq, "applied": v.applied}).Debug("Discarding stale refresh response")
		return nil
	}
	v.loading = false

	if err != nil {
		// applied не сдвигается: более ранний успешный ответ еще может быть применен
		v.lastError = refreshErrorMessage(v.role, err)
		v.metrics.ObservePoll(string(v.role), "error", elapsed)
		return err
	}
	v.applied = seq
	v.metrics.ObservePoll(string(v.role), "ok", elapsed)

	v.applyLocked(ProjectForRole(incidents, v.role))
	return nil
}

// refreshErrorMessage возвращает текст ошибки загрузки для роли.
// Сетевая ошибка показывается как есть.
func refreshErrorMessage(role models.Role, err error) string {
	if role == models.RoleWorker && !models.IsKind(err, models.KindNetwork) {
		return "Failed to load assignments"
	}
	return models.UserMessage(err)
}

func (v *View) applyLocked(projected []models.Incident) {
	v.incidents = projected
	v.lastError = ""
	v.refreshedAt = time.Now()

	v.selection.Reconcile(projected)
	if fly := v.mapSync.Observe(v.selection.Incident()); fly != nil {
		v.publishLocked(*fly)
	}
	v.syncAddressesLocked(projected)
}

// syncAddressesLocked забывает адреса исчезнувших инцидентов
// и запускает разрешение недостающих
func (v *View) syncAddressesLocked(projected []models.Incident) {
	present := make(map[string]bool, len(projected))
	for _, incident := range projected {
		present[incident.ID] = true
		if incident.LocationName != "" {
			v.addresses[incident.ID] = incident.LocationName
			continue
		}
		if v.geocoder == nil || v.resolving[incident.ID] {
			continue
		}
		if name, ok := v.addresses[incident.ID]; ok && name != geocode.Placeholder {
			continue
		}
		v.resolving[incident.ID] = true
		go v.resolveAddress(incident.ID, incident.Location)
	}
	for id := range v.addresses {
		if !present[id] {
			delete(v.addresses, id)
		}
	}
}

func (v *View) resolveAddress(id string, loc models.Location) {
	name := v.geocoder.DisplayName(v.ctx, loc)

	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.resolving, id)
	if v.closed {
		return
	}
	if _, ok := findIncident(v.incidents, id); ok {
		v.addresses[id] = name
	}
}

// Select - явный выбор пользователя
func (v *View) Select(id string) (*models.ViewState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = time.Now()

	if err := v.selection.Select(v.incidents, id); err != nil {
		return nil, err
	}
	if fly := v.mapSync.Observe(v.selection.Incident()); fly != nil {
		v.publishLocked(*fly)
	}
	return v.snapshotLocked(), nil
}

// Recenter центрирует карту на позиции устройства
func (v *View) Recenter(loc models.Location) models.FlyTransition {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = time.Now()

	fly := v.mapSync.Recenter(loc)
	v.publishLocked(fly)
	return fly
}

// Snapshot возвращает копию состояния для отрисовки
func (v *View) Snapshot() *models.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = time.Now()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() *models.ViewState {
	incidents := make([]models.Incident, len(v.incidents))
	copy(incidents, v.incidents)
	addresses := make(map[string]string, len(v.addresses))
	for id, name := range v.addresses {
		addresses[id] = name
	}
	selected := v.selection.Incident()

	return &models.ViewState{
		ID:              v.id,
		Role:            v.role,
		Incidents:       incidents,
		Selected:        selected,
		Viewport:        v.mapSync.Viewport(incidents, selected),
		Addresses:       addresses,
		LastError:       v.lastError,
		Loading:         v.loading,
		LastRefreshedAt: v.refreshedAt,
		PollInterval:    v.interval,
	}
}

// Subscribe подписывает на перелеты карты. Канал закрывается при
// размонтировании или вызове cancel.
func (v *View) Subscribe() (<-chan models.FlyTransition, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan models.FlyTransition, subscriberBuffer)
	if v.closed {
		close(ch)
		return ch, func() {}
	}
	key := v.nextSub
	v.nextSub++
	v.subscribers[key] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if sub, ok := v.subscribers[key]; ok {
				delete(v.subscribers, key)
				close(sub)
			}
		})
	}
	return ch, cancel
}

func (v *View) publishLocked(fly models.FlyTransition) {
	v.metrics.IncFlight(string(v.role), fly.Reason)
	for key, ch := range v.subscribers {
		select {
		case ch <- fly:
		default:
			v.log().WithField("subscriber", key).Debug("Fly subscriber is slow, dropping transition")
		}
	}
}

// IdleSince возвращает время последнего обращения к представлению.
// Пока открыт хотя бы один поток событий, представление считается активным.
func (v *View) IdleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.subscribers) > 0 {
		return time.Now()
	}
	return v.lastSeen
}

// Close останавливает опрос и прерывает запросы в полете.
// Результаты, пришедшие позже, отбрасываются.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	for key, ch := range v.subscribers {
		delete(v.subscribers, key)
		close(ch)
	}
	v.mu.Unlock()

	v.poller.Stop()
	v.cancel()
}
