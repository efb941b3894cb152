package v1

import "github.com/shenikar/dispatch_console/internal/models"

// DTOToReportModel преобразует DTO заявки в доменную модель.
// Без обеих координат местоположение считается не выбранным.
func DTOToReportModel(dto ReportRequest) *models.Report {
	report := &models.Report{
		DisasterType: models.DisasterType(dto.DisasterType),
		Description:  dto.Description,
		LocationName: dto.LocationName,
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		report.Location = &models.Location{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	}
	return report
}

// DTOToDeviceFix преобразует DTO позиции устройства
func DTOToDeviceFix(dto RecenterRequest) models.DeviceFix {
	fix := models.DeviceFix{Error: dto.GeolocationError}
	if dto.Latitude != nil && dto.Longitude != nil {
		fix.Location = &models.Location{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	}
	return fix
}

func toLocationResponse(loc models.Location) LocationResponse {
	return LocationResponse{Latitude: loc.Latitude, Longitude: loc.Longitude}
}

// ModelToIncidentResponse преобразует инцидент в DTO; address берется из
// разрешенных адресов представления
func ModelToIncidentResponse(model *models.Incident, address string) *IncidentResponse {
	workers := model.Workers()
	assigned := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		assigned[i] = WorkerResponse{Type: w.Type, Status: string(w.Status)}
	}
	if address == "" {
		address = model.LocationName
	}
	return &IncidentResponse{
		ID:                   model.ID,
		DisasterType:         string(model.DisasterType),
		Description:          model.Description,
		Location:             toLocationResponse(model.Location),
		Address:              address,
		Timestamp:            model.Timestamp,
		Status:               string(model.Status),
		OperatorInstructions: model.Instructions(),
		AssignedWorkers:      assigned,
	}
}

// ModelToViewResponse преобразует снимок представления в DTO
func ModelToViewResponse(state *models.ViewState) *ViewResponse {
	incidents := make([]*IncidentResponse, len(state.Incidents))
	for i := range state.Incidents {
		incidents[i] = ModelToIncidentResponse(&state.Incidents[i], state.Addresses[state.Incidents[i].ID])
	}

	resp := &ViewResponse{
		ID:        state.ID,
		Role:      string(state.Role),
		Incidents: incidents,
		Viewport: ViewportResponse{
			Center: toLocationResponse(state.Viewport.Center),
			Zoom:   state.Viewport.Zoom,
		},
		LastError:           state.LastError,
		Loading:             state.Loading,
		PollIntervalSeconds: int(state.PollInterval.Seconds()),
	}
	if b := state.Viewport.Bounds; b != nil {
		resp.Viewport.Bounds = &BoundsResponse{
			SouthWest: toLocationResponse(b.SouthWest),
			NorthEast: toLocationResponse(b.NorthEast),
		}
	}
	if state.Selected != nil {
		resp.SelectedID = state.Selected.ID
		resp.Selected = ModelToIncidentResponse(state.Selected, state.Addresses[state.Selected.ID])
	}
	if !state.LastRefreshedAt.IsZero() {
		refreshed := state.LastRefreshedAt
		resp.LastRefreshedAt = &refreshed
	}
	return resp
}

// ModelToFlyResponse преобразует команду перелета в DTO
func ModelToFlyResponse(fly *models.FlyTransition) *FlyResponse {
	return &FlyResponse{
		Center:        toLocationResponse(fly.Center),
		Zoom:          fly.Zoom,
		DurationMs:    fly.Duration.Milliseconds(),
		EaseLinearity: fly.EaseLinearity,
		IncidentID:    fly.IncidentID,
		Reason:        fly.Reason,
	}
}

// ModelsToActionResponses преобразует записи журнала в DTO
func ModelsToActionResponses(records []*models.ActionRecord) []*ActionResponse {
	responses := make([]*ActionResponse, len(records))
	for i, r := range records {
		responses[i] = &ActionResponse{
			ID:           r.ID,
			Action:       r.Action,
			IncidentID:   r.IncidentID,
			WorkerType:   r.WorkerType,
			Status:       r.Status,
			DisasterType: r.DisasterType,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			CreatedAt:    r.CreatedAt,
		}
	}
	return responses
}
