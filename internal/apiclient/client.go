package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	listPath         = "/api/incidents/all"
	reportPath       = "/api/incidents/report"
	workerStatusPath = "/api/incidents/worker-status/"

	// ответы API небольшие, ограничение защищает от мусора
	maxBodyBytes = 8 << 20

	defaultReportError = "Failed to submit report"
)

// Client - клиент внешнего REST API инцидентов. Ничего не кеширует.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient создает клиента для API по адресу baseURL
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// reportRequest - тело POST /api/incidents/report
type reportRequest struct {
	Latitude     float64             `json:"latitude"`
	Longitude    float64             `json:"longitude"`
	DisasterType models.DisasterType `json:"disasterType"`
	Description  string              `json:"description"`
	LocationName string              `json:"locationName"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListIncidents возвращает полный список инцидентов в порядке сервера
func (c *Client) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	const op = "apiclient.ListIncidents"

	body, status, err := c.do(ctx, op, http.MethodGet, listPath, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, &models.Error{
			Kind:       models.KindServer,
			Op:         op,
			StatusCode: status,
			Message:    serverMessage(body, "Failed to load incidents"),
		}
	}

	var incidents []models.Incident
	if err := json.Unmarshal(body, &incidents); err != nil {
		return nil, &models.Error{Kind: models.KindDecode, Op: op, Message: "malformed incident list", Err: err}
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}
	return incidents, nil
}

// ReportIncident отправляет новую заявку. Без координат запрос не выполняется.
func (c *Client) ReportIncident(ctx context.Context, report *models.Report) (*models.ReportResult, error) {
	const op = "apiclient.ReportIncident"

	if report == nil || report.Location == nil {
		return nil, models.NewValidationError(op, "Please select a location on the map")
	}

	payload, err := json.Marshal(reportRequest{
		Latitude:     report.Location.Latitude,
		Longitude:    report.Location.Longitude,
		DisasterType: report.DisasterType,
		Description:  report.Description,
		LocationName: report.LocationName,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal report: %w", op, err)
	}

	body, status, err := c.do(ctx, op, http.MethodPost, reportPath, payload)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, &models.Error{
			Kind:       models.KindServer,
			Op:         op,
			StatusCode: status,
			Message:    serverMessage(body, defaultReportError),
		}
	}

	result := &models.ReportResult{}
	if len(bytes.TrimSpace(body)) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, &models.Error{Kind: models.KindDecode, Op: op, Message: "malformed report response", Err: err}
	}
	return result, nil
}

// PatchWorkerStatus меняет статус группы или, без WorkerType, статус инцидента
func (c *Client) PatchWorkerStatus(ctx context.Context, incidentID string, patch models.StatusPatch) error {
	const op = "apiclient.PatchWorkerStatus"

	if strings.TrimSpace(incidentID) == "" {
		return models.NewValidationError(op, "incident id is required")
	}

	payload, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal patch: %w", op, err)
	}

	body, status, err := c.do(ctx, op, http.MethodPatch, workerStatusPath+url.PathEscape(incidentID), payload)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return &models.Error{
			Kind:       models.KindServer,
			Op:         op,
			StatusCode: status,
			Message:    serverMessage(body, "Failed to update status"),
		}
	}
	return nil
}

// do выполняет запрос и читает тело ответа. Ошибка транспорта - NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, int, error) {
	reqURL := c.baseURL + path
	log := c.logger.WithFields(logrus.Fields{
		"component": "apiclient",
		"method":    method,
		"url":       reqURL,
	})

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("Incident API request failed")
		return nil, 0, &models.Error{Kind: models.KindNetwork, Op: op, Message: "Network error. Please check your connection", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, resp.StatusCode, &models.Error{Kind: models.KindNetwork, Op: op, Message: "request aborted", Err: err}
		}
		return nil, resp.StatusCode, &models.Error{Kind: models.KindNetwork, Op: op, Message: "failed to read response body", Err: err}
	}

	log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Incident API request completed")
	return body, resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// serverMessage достает поле error из тела ответа, если оно есть
func serverMessage(body []byte, fallback string) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && strings.TrimSpace(resp.Error) != "" {
		return resp.Error
	}
	return fallback
}
