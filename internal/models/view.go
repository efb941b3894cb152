package models

import (
	"time"
)

// Role определяет, какой интерфейс обслуживает представление
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
	RolePublic Role = "public"
)

// Valid сообщает, известна ли роль
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWorker, RolePublic:
		return true
	}
	return false
}

// Bounds - прямоугольник, охватывающий все маркеры
type Bounds struct {
	SouthWest Location `json:"south_west"`
	NorthEast Location `json:"north_east"`
}

// Viewport - центр и масштаб карты
type Viewport struct {
	Center Location `json:"center"`
	Zoom   int      `json:"zoom"`
	Bounds *Bounds  `json:"bounds,omitempty"`
}

const (
	FlyReasonSelection = "selection"
	FlyReasonDevice    = "device"
)

// FlyTransition - команда плавного перелета карты
type FlyTransition struct {
	Center        Location      `json:"center"`
	Zoom          int           `json:"zoom"`
	Duration      time.Duration `json:"duration"`
	EaseLinearity float64       `json:"ease_linearity"`
	IncidentID    string        `json:"incident_id,omitempty"`
	Reason        string        `json:"reason"`
}

// ViewState - снимок состояния представления для отрисовки
type ViewState struct {
	ID              string
	Role            Role
	Incidents       []Incident
	Selected        *Incident
	Viewport        Viewport
	Addresses       map[string]string
	LastError       string
	Loading         bool
	LastRefreshedAt time.Time
	PollInterval    time.Duration
}

// SelectedID возвращает id выбранного инцидента или пустую строку
func (s *ViewState) SelectedID() string {
	if s.Selected == nil {
		return ""
	}
	return s.Selected.ID
}

// DeviceFix - результат запроса геопозиции устройства.
// Error заполняется, когда позиция недоступна или доступ запрещен.
type DeviceFix struct {
	Location *Location
	Error    string
}
