package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/GLee998/church-database-bot/pkg/api"
)

// Error ответ сервера с ошибкой
type Error struct {
	Code       string
	Message    string
	StatusCode int
	Retriable  bool
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Client представляет HTTP клиент для взаимодействия с сервером реестра
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент. token передается как Bearer в каждом запросе.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// Schema получает схему и словари групп и статусов
func (c *Client) Schema(ctx context.Context) (*api.SchemaResponse, error) {
	var resp api.SchemaResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/schema", nil, &resp); err != nil {
		return nil, fmt.Errorf("schema request failed: %w", err)
	}
	return &resp, nil
}

// Search ищет людей по префиксу имени
func (c *Client) Search(ctx context.Context, prefix string, limit int) (*api.SearchResponse, error) {
	q := url.Values{}
	q.Set("q", prefix)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp api.SearchResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/search?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	return &resp, nil
}

// GetRecord получает запись по id
func (c *Client) GetRecord(ctx context.Context, id string) (*api.RecordResponse, error) {
	var resp api.RecordResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/records/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get record request failed: %w", err)
	}
	return &resp, nil
}

// CreateRecord добавляет человека в реестр
func (c *Client) CreateRecord(ctx context.Context, fields map[string]string) (*api.WriteResponse, error) {
	var resp api.WriteResponse
	req := api.CreateRecordRequest{Fields: fields}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/records", req, &resp); err != nil {
		return nil, fmt.Errorf("create record request failed: %w", err)
	}
	return &resp, nil
}

// UpdateRecord изменяет поля записи, увиденной в ревизии revision
func (c *Client) UpdateRecord(ctx context.Context, id string, revision int64, fields map[string]string) (*api.WriteResponse, error) {
	var resp api.WriteResponse
	req := api.UpdateRecordRequest{Fields: fields, Revision: revision}
	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/records/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, fmt.Errorf("update record request failed: %w", err)
	}
	return &resp, nil
}

// Ask задает вопрос на естественном языке
func (c *Client) Ask(ctx context.Context, question string) (*api.AskResponse, error) {
	var resp api.AskResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/ask", api.AskRequest{Question: question}, &resp); err != nil {
		return nil, fmt.Errorf("ask request failed: %w", err)
	}
	return &resp, nil
}

// Letters получает первые буквы имен
func (c *Client) Letters(ctx context.Context) (*api.LettersResponse, error) {
	var resp api.LettersResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/letters", nil, &resp); err != nil {
		return nil, fmt.Errorf("letters request failed: %w", err)
	}
	return &resp, nil
}

// ByLetter получает людей, чье имя начинается с letter
func (c *Client) ByLetter(ctx context.Context, letter string) (*api.EntriesResponse, error) {
	var resp api.EntriesResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/letters/"+url.PathEscape(letter), nil, &resp); err != nil {
		return nil, fmt.Errorf("letter request failed: %w", err)
	}
	return &resp, nil
}

// Groups получает домашние группы с участниками
func (c *Client) Groups(ctx context.Context) (*api.GroupsResponse, error) {
	var resp api.GroupsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/groups", nil, &resp); err != nil {
		return nil, fmt.Errorf("groups request failed: %w", err)
	}
	return &resp, nil
}

// Birthdays получает дни рождения месяца (0 - текущий месяц сервера)
func (c *Client) Birthdays(ctx context.Context, month int) (*api.EntriesResponse, error) {
	path := "/api/v1/birthdays"
	if month > 0 {
		path += "?month=" + strconv.Itoa(month)
	}

	var resp api.EntriesResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("birthdays request failed: %w", err)
	}
	return &resp, nil
}

// Status получает состояние зеркала
func (c *Client) Status(ctx context.Context) (*api.StatusResponse, error) {
	var resp api.StatusResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/status", nil, &resp); err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return &resp, nil
}

// Sync запускает внеочередную синхронизацию (только администраторы)
func (c *Client) Sync(ctx context.Context) (*api.StatusResponse, error) {
	var resp api.StatusResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sync", nil, &resp); err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &Error{
				StatusCode: resp.StatusCode,
				Code:       errResp.Code,
				Message:    errResp.Message,
				Retriable:  errResp.Retriable,
			}
		}
		return &Error{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(respBody))}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
