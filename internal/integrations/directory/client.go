package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса учетных записей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAccount получает учетную запись и ее роль
func (c *Client) GetAccount(ctx context.Context, accountID int64) (*Account, error) {
	url := fmt.Sprintf("%s/internal/accounts/%d", c.baseURL, accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrAccountNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if account.ID != accountID {
		return nil, fmt.Errorf("%w: asked for account %d, got %d", ErrInvalidResponse, accountID, account.ID)
	}
	if !domain.Role(account.Role).IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidResponse, account.Role)
	}

	return &account, nil
}

// ResolveActor возвращает пару (accountId, role) вызывающего
func (c *Client) ResolveActor(ctx context.Context, accountID int64) (domain.Actor, error) {
	account, err := c.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			c.log.Warn("Directory: account id=%d not found", accountID)
		} else {
			c.log.Error("Directory: failed to resolve account id=%d: %v", accountID, err)
		}
		return domain.Actor{}, err
	}
	return domain.Actor{AccountID: account.ID, Role: domain.Role(account.Role)}, nil
}
