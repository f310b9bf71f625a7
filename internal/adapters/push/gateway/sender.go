// Package gateway envía notificaciones multicast a un gateway HTTP de push (estilo FCM).
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"guidedog-records/internal/platform/httpclient"
	"guidedog-records/internal/ports/push"
)

const sendPath = "/v1/messages:multicast"

var ErrNotConfigured = errors.New("push gateway not configured")

type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration

	// Transport para tests.
	Transport http.RoundTripper
}

type Sender struct {
	client *httpclient.Client
}

func New(cfg Config) (*Sender, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	key := strings.TrimSpace(cfg.APIKey)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = "X-Api-Key"
	}

	c, err := httpclient.New(httpclient.Options{
		BaseURL:   base,
		Timeout:   cfg.Timeout,
		Headers:   map[string]string{header: key},
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("push gateway: %w", err)
	}
	return &Sender{client: c}, nil
}

type sendResponse struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
	Results      []struct {
		Token     string `json:"token"`
		Success   bool   `json:"success"`
		ErrorCode string `json:"error_code"`
		Error     string `json:"error"`
	} `json:"results"`
}

func (s *Sender) SendMulticast(ctx context.Context, msg push.Message) (push.BatchResult, error) {
	if len(msg.Tokens) == 0 {
		return push.BatchResult{}, nil
	}

	var out sendResponse
	if err := s.client.DoJSON(ctx, http.MethodPost, sendPath, msg, &out); err != nil {
		return push.BatchResult{}, fmt.Errorf("push gateway: %w", err)
	}

	res := push.BatchResult{
		SuccessCount: out.SuccessCount,
		FailureCount: out.FailureCount,
		Results:      make([]push.SendResult, 0, len(out.Results)),
	}
	for i, r := range out.Results {
		token := r.Token
		// algunos gateways devuelven los resultados en orden sin repetir el token
		if token == "" && i < len(msg.Tokens) {
			token = msg.Tokens[i]
		}
		res.Results = append(res.Results, push.SendResult{
			Token:     token,
			Success:   r.Success,
			ErrorCode: r.ErrorCode,
			Error:     r.Error,
		})
	}
	return res, nil
}
