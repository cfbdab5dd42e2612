// Package payservice клиент платежного шлюза.
// Сервис бронирования не двигает деньги сам: расчет возврата - чистая
// функция домена, а фактический возврат выполняет платежный провайдер
package payservice

import (
	"bytes"
	"context"
	"encoding/json"
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

// RefundRequest запрос на возврат средств
type RefundRequest struct {
	Amount    int64  `json:"amount"` // в минорных единицах
	ChargeRef string `json:"charge_ref"`
	Reason    string `json:"reason,omitempty"`
}

// Refund результат возврата от платежного провайдера
type Refund struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	ChargeRef string    `json:"charge_ref"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Client клиент для работы с платежным шлюзом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateRefund создает возврат по исходному платежу.
// Ошибка возврата должна прерывать отмену бронирования у вызывающего:
// отмена не считается завершенной, пока возврат не принят провайдером
func (c *Client) CreateRefund(ctx context.Context, reqBody RefundRequest) (*Refund, error) {
	url := fmt.Sprintf("%s/internal/refunds", c.baseURL)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
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
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrChargeNotFound
	case http.StatusUnprocessableEntity:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrRefundRejected, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var refund Refund
	if err := json.NewDecoder(resp.Body).Decode(&refund); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CreateRefund: refund %s created for charge %s, amount=%d", refund.ID, reqBody.ChargeRef, refund.Amount)
	return &refund, nil
}
