package models

import (
	"time"
)

// DisasterType - тип происшествия, выбранный заявителем
type DisasterType string

const (
	DisasterFlood      DisasterType = "Flood"
	DisasterEarthquake DisasterType = "Earthquake"
	DisasterFire       DisasterType = "Fire"
	DisasterCyclone    DisasterType = "Cyclone"
	DisasterLandslide  DisasterType = "Landslide"
)

// IncidentStatus - стадия обработки инцидента на стороне сервера
type IncidentStatus string

const (
	StatusNew       IncidentStatus = "new"
	StatusAnalyzing IncidentStatus = "analyzing"
	StatusAssigned  IncidentStatus = "assigned"
	StatusHandling  IncidentStatus = "handling"
	StatusHandled   IncidentStatus = "handled"
)

// WorkerStatus - прогресс выездной группы
type WorkerStatus string

const (
	WorkerPending   WorkerStatus = "pending"
	WorkerEnroute   WorkerStatus = "enroute"
	WorkerOnsite    WorkerStatus = "onsite"
	WorkerCompleted WorkerStatus = "completed"
)

// Valid сообщает, входит ли статус в допустимый набор
func (s WorkerStatus) Valid() bool {
	switch s {
	case WorkerPending, WorkerEnroute, WorkerOnsite, WorkerCompleted:
		return true
	}
	return false
}

// Location - координаты в градусах
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WorkerAssignment - назначенная на инцидент группа и её статус
type WorkerAssignment struct {
	Type   string       `json:"type"`
	Status WorkerStatus `json:"status"`
}

// Analysis - результат серверного анализа инцидента
type Analysis struct {
	OperatorInstructions []string           `json:"operatorInstructions,omitempty"`
	AssignedWorkers      []WorkerAssignment `json:"assignedWorkers,omitempty"`
}

// Incident - запись об инциденте в том виде, в каком её отдает API.
// Analysis отсутствует, пока сервер не обработал инцидент.
type Incident struct {
	ID           string         `json:"_id"`
	DisasterType DisasterType   `json:"disasterType"`
	Description  string         `json:"description"`
	Location     Location       `json:"location"`
	LocationName string         `json:"locationName,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Status       IncidentStatus `json:"status"`
	Analysis     *Analysis      `json:"analysis,omitempty"`
}

// Instructions возвращает инструкции оператора или пустой список
func (i *Incident) Instructions() []string {
	if i.Analysis == nil || i.Analysis.OperatorInstructions == nil {
		return []string{}
	}
	return i.Analysis.OperatorInstructions
}

// Workers возвращает назначенные группы или пустой список
func (i *Incident) Workers() []WorkerAssignment {
	if i.Analysis == nil || i.Analysis.AssignedWorkers == nil {
		return []WorkerAssignment{}
	}
	return i.Analysis.AssignedWorkers
}

// Report - заявка о происшествии от публичного интерфейса
type Report struct {
	DisasterType DisasterType
	Description  string
	Location     *Location
	LocationName string
}

// ReportResult - ответ API на заявку
type ReportResult struct {
	ImmediateInstructions []string `json:"immediateInstructions,omitempty"`
}

// StatusPatch - тело запроса на смену статуса.
// Без WorkerType меняется общий статус инцидента.
type StatusPatch struct {
	WorkerType string `json:"workerType,omitempty"`
	Status     string `json:"status"`
}
