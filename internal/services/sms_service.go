package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkglogger "github.com/abhisekadhikari/burningsawals/pkg/logger"
)

// SMSSender is the external delivery capability consumed by the OTP issuer.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

const fast2smsEndpoint = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMSService delivers messages through the Fast2SMS bulk API
type Fast2SMSService struct {
	apiKey string
	route  string
	client *http.Client
	logger *slog.Logger
}

func NewFast2SMSService(apiKey, route string, logger *slog.Logger) *Fast2SMSService {
	return &Fast2SMSService{
		apiKey: apiKey,
		route:  route,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type fast2smsResponse struct {
	Return  bool   `json:"return"`
	Message any    `json:"message"`
	Request string `json:"request_id"`
}

func (s *Fast2SMSService) Send(ctx context.Context, phoneNumber, message string) error {
	form := url.Values{}
	form.Set("route", s.route)
	form.Set("numbers", phoneNumber)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fast2smsEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	var body fast2smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode sms response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !body.Return {
		s.logger.Error("sms delivery rejected",
			slog.String("phone", pkglogger.SanitizedPhone(phoneNumber)),
			slog.Int("status", resp.StatusCode))
		return fmt.Errorf("sms provider rejected delivery (status %d)", resp.StatusCode)
	}

	s.logger.Info("sms dispatched",
		slog.String("phone", pkglogger.SanitizedPhone(phoneNumber)),
		slog.String("request_id", body.Request))

	return nil
}

// ConsoleSMSService logs messages instead of delivering them. Used when no
// provider key is configured so the OTP flow stays testable; it always
// reports success.
type ConsoleSMSService struct {
	logger *slog.Logger
}

func NewConsoleSMSService(logger *slog.Logger) *ConsoleSMSService {
	return &ConsoleSMSService{logger: logger}
}

func (s *ConsoleSMSService) Send(ctx context.Context, phoneNumber, message string) error {
	s.logger.Info("sms fallback (no provider configured)",
		slog.String("phone", pkglogger.SanitizedPhone(phoneNumber)),
		slog.String("message", message))
	return nil
}
