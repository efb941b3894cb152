package service

import (
	"time"

	"github.com/golang/geo/s2"
	"github.com/shenikar/dispatch_console/internal/models"
)

// MapConfig - параметры карты для представления
type MapConfig struct {
	Fallback         models.Location
	FocusedZoom      int
	OverviewZoom     int
	FlyDuration      time.Duration
	RecenterDuration time.Duration
	EaseLinearity    float64
}

// DefaultMapConfig возвращает настройки карты для роли.
// Консоль выездной группы приближает слабее: на экране нужен район, а не здание.
func DefaultMapConfig(role models.Role, fallback models.Location) MapConfig {
	cfg := MapConfig{
		Fallback:         fallback,
		FocusedZoom:      16,
		OverviewZoom:     5,
		FlyDuration:      1500 * time.Millisecond,
		RecenterDuration: 2 * time.Second,
		EaseLinearity:    0.25,
	}
	if role == models.RoleWorker {
		cfg.FocusedZoom = 13
	}
	return cfg
}

// MapSync вычисляет viewport и решает, когда карте нужно "перелететь".
// Перелет выдается один раз на смену id выбранного инцидента.
type MapSync struct {
	cfg          MapConfig
	flownID      string
	deviceCenter *models.Location
}

func NewMapSync(cfg MapConfig) *MapSync {
	return &MapSync{cfg: cfg}
}

// Viewport вычисляет центр, масштаб и границы маркеров
func (m *MapSync) Viewport(incidents []models.Incident, selected *models.Incident) models.Viewport {
	vp := models.Viewport{
		Center: m.cfg.Fallback,
		Zoom:   m.cfg.OverviewZoom,
		Bounds: markerBounds(incidents),
	}

	switch {
	case m.deviceCenter != nil:
		vp.Center = *m.deviceCenter
		vp.Zoom = m.cfg.FocusedZoom
	case selected != nil:
		vp.Center = selected.Location
		vp.Zoom = m.cfg.FocusedZoom
	case len(incidents) > 0:
		vp.Center = incidents[0].Location
	}
	return vp
}

// Observe сообщает MapSync текущий выбор. Возвращает перелет, если id
// изменился на непустой, иначе nil.
func (m *MapSync) Observe(selected *models.Incident) *models.FlyTransition {
	id := ""
	if selected != nil {
		id = selected.ID
	}
	if id == m.flownID {
		return nil
	}
	m.flownID = id
	if selected == nil {
		return nil
	}

	m.deviceCenter = nil
	return &models.FlyTransition{
		Center:        selected.Location,
		Zoom:          m.cfg.FocusedZoom,
		Duration:      m.cfg.FlyDuration,
		EaseLinearity: m.cfg.EaseLinearity,
		IncidentID:    selected.ID,
		Reason:        models.FlyReasonSelection,
	}
}

// Recenter центрирует карту на позиции устройства, не трогая выбор.
// Центр устройства держится до следующей смены выбранного инцидента.
func (m *MapSync) Recenter(loc models.Location) models.FlyTransition {
	center := loc
	m.deviceCenter = &center
	return models.FlyTransition{
		Center:        loc,
		Zoom:          m.cfg.FocusedZoom,
		Duration:      m.cfg.RecenterDuration,
		EaseLinearity: m.cfg.EaseLinearity,
		Reason:        models.FlyReasonDevice,
	}
}

// markerBounds строит прямоугольник, покрывающий все маркеры
func markerBounds(incidents []models.Incident) *models.Bounds {
	if len(incidents) == 0 {
		return nil
	}
	rect := s2.EmptyRect()
	for _, incident := range incidents {
		rect = rect.AddPoint(s2.LatLngFromDegrees(incident.Location.Latitude, incident.Location.Longitude))
	}
	lo, hi := rect.Lo(), rect.Hi()
	return &models.Bounds{
		SouthWest: models.Location{Latitude: lo.Lat.Degrees(), Longitude: lo.Lng.Degrees()},
		NorthEast: models.Location{Latitude: hi.Lat.Degrees(), Longitude: hi.Lng.Degrees()},
	}
}
