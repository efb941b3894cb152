package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultBaseURL - публичный сервер Nominatim
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// политика Nominatim: не чаще одного запроса в секунду
	minRequestInterval = time.Second
)

// Client выполняет обратное геокодирование через Nominatim
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	minInterval time.Duration

	rateLimitLock sync.Mutex
	lastRequest   time.Time
}

// NewClient создает клиента Nominatim
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		httpClient:  &http.Client{Timeout: timeout},
		minInterval: minRequestInterval,
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// waitTurn выдерживает паузу между запросами к серверу
func (c *Client) waitTurn(ctx context.Context) error {
	c.rateLimitLock.Lock()
	defer c.rateLimitLock.Unlock()

	if wait := c.minInterval - time.Since(c.lastRequest); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	c.lastRequest = time.Now()
	return nil
}

// Reverse возвращает display_name для координат
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	if err := c.waitTurn(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read geocode response: %w", err)
	}

	var data reverseResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if data.Error != "" {
		return "", fmt.Errorf("geocoder error: %s", data.Error)
	}
	if strings.TrimSpace(data.DisplayName) == "" {
		return "", fmt.Errorf("geocoder returned empty display_name")
	}
	return data.DisplayName, nil
}
