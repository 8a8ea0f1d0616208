package spaceservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// Client клиент для работы с SpaceService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SpaceService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetArea получает описание зоны
func (c *Client) GetArea(ctx context.Context, areaID int64) (*Area, error) {
	url := fmt.Sprintf("%s/internal/areas/%d", c.baseURL, areaID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid area ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrAreaNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: status code %d", ErrServiceUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var area Area
	if err := json.NewDecoder(resp.Body).Decode(&area); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &area, nil
}

// GetAreaConfig получает конфигурацию вместимости зоны
func (c *Client) GetAreaConfig(ctx context.Context, areaID int64) (*domain.AreaConfig, error) {
	area, err := c.GetArea(ctx, areaID)
	if err != nil {
		if errors.Is(err, ErrAreaNotFound) {
			c.log.Info("Area not found in SpaceService: area_id=%d", areaID)
			return nil, err
		}
		c.log.Error("Failed to fetch area config: area_id=%d: %v", areaID, err)
		return nil, err
	}

	return area.ToDomain()
}
