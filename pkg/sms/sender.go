// Package sms отправляет одноразовые коды подтверждения на телефон.
// Протокол конкретного SMS-провайдера не фиксируется: шлюз принимает
// POST с JSON-телом, адрес и ключ задаются конфигурацией.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Sender отправляет одноразовый код на номер телефона
type Sender interface {
	SendCode(ctx context.Context, phoneNumber, code string) error
}

// LogSender пишет код в лог вместо отправки. Используется в разработке
// и в тестовых окружениях без SMS-шлюза.
type LogSender struct{}

func (s *LogSender) SendCode(ctx context.Context, phoneNumber, code string) error {
	log.Printf("[SMS] dev send code to=%s code=%s", phoneNumber, code)
	return nil
}

// GatewaySender отправляет SMS через HTTP-шлюз провайдера
type GatewaySender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewGatewaySender создает отправителя для HTTP SMS-шлюза
func NewGatewaySender(endpoint, apiKey string) (*GatewaySender, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("sms gateway endpoint is required")
	}
	return &GatewaySender{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type gatewayRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

func (s *GatewaySender) SendCode(ctx context.Context, phoneNumber, code string) error {
	body, err := json.Marshal(gatewayRequest{
		To:   phoneNumber,
		Text: fmt.Sprintf("Ihr Quiz-Code: %s", code),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// Тело ответа шлюза попадает в лог, но не к клиенту
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[SMS] gateway error status=%d body=%s", resp.StatusCode, payload)
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}
