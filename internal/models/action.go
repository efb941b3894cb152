package models

import (
	"time"
)

const (
	ActionReportSubmitted     = "report_submitted"
	ActionWorkerStatusUpdated = "worker_status_updated"
	ActionWorkersAssigned     = "workers_assigned"
)

// ActionRecord представляет запись журнала действий консоли
type ActionRecord struct {
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
