package v1

import (
	"time"
)

// MountViewRequest DTO для монтирования представления
// @Description DTO для монтирования представления
type MountViewRequest struct {
	Role string `json:"role" validate:"required,oneof=admin worker public"`
}

// SelectIncidentRequest DTO для выбора инцидента
// @Description DTO для выбора инцидента
type SelectIncidentRequest struct {
	IncidentID string `json:"incident_id" validate:"required"`
}

// RecenterRequest DTO с позицией устройства.
// Если браузер не смог определить позицию, передается geolocation_error.
// @Description DTO с позицией устройства
type RecenterRequest struct {
	Latitude         *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude        *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	GeolocationError string   `json:"geolocation_error,omitempty" validate:"max=255"`
}

// ReportRequest DTO для подачи заявки
// @Description DTO для подачи заявки
type ReportRequest struct {
	DisasterType string   `json:"disaster_type" validate:"required,oneof=Flood Earthquake Fire Cyclone Landslide"`
	Description  string   `json:"description" validate:"required,max=2000"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	LocationName string   `json:"location_name,omitempty" validate:"max=500"`
}

// ReportResponse DTO ответа на заявку
// @Description DTO ответа на заявку
type ReportResponse struct {
	ImmediateInstructions []string `json:"immediate_instructions"`
}

// WorkerStatusRequest DTO для смены статуса группы
// @Description DTO для смены статуса группы
type WorkerStatusRequest struct {
	WorkerType string `json:"worker_type" validate:"required,max=64"`
	Status     string `json:"status" validate:"required,oneof=pending enroute onsite completed"`
}

// ReverseGeocodeQuery параметры обратного геокодирования
type ReverseGeocodeQuery struct {
	Lat *float64 `form:"lat" validate:"required,latitude"`
	Lon *float64 `form:"lon" validate:"required,longitude"`
}

// ReverseGeocodeResponse DTO с адресом точки
// @Description DTO с адресом точки
type ReverseGeocodeResponse struct {
	DisplayName string `json:"display_name"`
}

// LocationResponse координаты
type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WorkerResponse назначенная группа
type WorkerResponse struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// IncidentResponse DTO инцидента в представлении
// @Description DTO инцидента в представлении
type IncidentResponse struct {
	ID                   string           `json:"id"`
	DisasterType         string           `json:"disaster_type"`
	Description          string           `json:"description"`
	Location             LocationResponse `json:"location"`
	Address              string           `json:"address,omitempty"`
	Timestamp            time.Time        `json:"timestamp"`
	Status               string           `json:"status"`
	OperatorInstructions []string         `json:"operator_instructions"`
	AssignedWorkers      []WorkerResponse `json:"assigned_workers"`
}

// BoundsResponse прямоугольник маркеров
type BoundsResponse struct {
	SouthWest LocationResponse `json:"south_west"`
	NorthEast LocationResponse `json:"north_east"`
}

// ViewportResponse центр и масштаб карты
type ViewportResponse struct {
	Center LocationResponse `json:"center"`
	Zoom   int              `json:"zoom"`
	Bounds *BoundsResponse  `json:"bounds,omitempty"`
}

// ViewResponse DTO состояния представления
// @Description DTO состояния представления
type ViewResponse struct {
	ID                  string              `json:"id"`
	Role                string              `json:"role"`
	Incidents           []*IncidentResponse `json:"incidents"`
	SelectedID          string              `json:"selected_id,omitempty"`
	Selected            *IncidentResponse   `json:"selected,omitempty"`
	Viewport            ViewportResponse    `json:"viewport"`
	LastError           string              `json:"last_error,omitempty"`
	Loading             bool                `json:"loading"`
	LastRefreshedAt     *time.Time          `json:"last_refreshed_at,omitempty"`
	PollIntervalSeconds int                 `json:"poll_interval_seconds"`
}

// FlyResponse DTO команды перелета карты
// @Description DTO команды перелета карты
type FlyResponse struct {
	Center        LocationResponse `json:"center"`
	Zoom          int              `json:"zoom"`
	DurationMs    int64            `json:"duration_ms"`
	EaseLinearity float64          `json:"ease_linearity"`
	IncidentID    string           `json:"incident_id,omitempty"`
	Reason        string           `json:"reason"`
}

// ActionResponse DTO записи журнала
// @Description DTO записи журнала
type ActionResponse struct {
	ID           int64     `json:"id"`
	Action       string    `json:"action"`
	IncidentID   string    `json:"incident_id,omitempty"`
	WorkerType   string    `json:"worker_type,omitempty"`
	Status       string    `json:"status,omitempty"`
	DisasterType string    `json:"disaster_type,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
