package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

func (s *implSender) Send(ctx context.Context, req Request) (Result, error) {
	if req.URL == "" {
		return Result{}, errURLRequired
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", s.config.UserAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		s.l.Warnf(ctx, "pkg.webhook.Send: read response body: %v", err)
		body = nil
	}

	return Result{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Success:    resp.StatusCode >= 200 && resp.StatusCode < 300,
	}, nil
}

func (s *implSender) Close() error {
	if s.client != nil {
		s.client.CloseIdleConnections()
	}
	return nil
}
