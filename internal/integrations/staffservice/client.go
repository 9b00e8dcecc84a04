package staffservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со StaffService (справочник сотрудников)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetEmployee получает сотрудника филиала по ID
// Используется для проверки, что назначаемый мастер существует и работает в филиале
func (c *Client) GetEmployee(ctx context.Context, branchID, employeeID int64) (*Employee, error) {
	url := fmt.Sprintf("%s/internal/branches/%d/employees/%d", c.baseURL, branchID, employeeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid employee ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrEmployeeNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var employee Employee
	if err := json.NewDecoder(resp.Body).Decode(&employee); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &employee, nil
}

// GetEmployeeWithGracefulDegradation получает сотрудника с graceful degradation
// При недоступности StaffService возвращает ErrServiceDegraded: вызывающая сторона
// решает, отклонить операцию или пропустить проверку принадлежности мастера филиалу
func (c *Client) GetEmployeeWithGracefulDegradation(ctx context.Context, branchID, employeeID int64) (*Employee, error) {
	employee, err := c.GetEmployee(ctx, branchID, employeeID)
	if err != nil {
		// Критичная бизнес-ошибка пробрасывается как есть
		if errors.Is(err, ErrEmployeeNotFound) {
			c.log.Info("No employee id=%d found in branch=%d", employeeID, branchID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("StaffService unavailable, applying graceful degradation for employee=%d branch=%d: %v",
			employeeID, branchID, err)
		return nil, fmt.Errorf("%w: employee=%d, branch=%d, error=%v", ErrServiceDegraded, employeeID, branchID, err)
	}

	return employee, nil
}
