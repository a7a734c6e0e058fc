package Whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Sender delivers a plain-text WhatsApp message to a phone number.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

type textBody struct {
	Body string `json:"body"`
}

type cloudMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type cloudError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// CloudClient talks to the WhatsApp Cloud API (graph.facebook.com/<version>/<phone-id>/messages).
type CloudClient struct {
	httpClient *resty.Client
	phoneID    string
	logger     *zap.Logger
}

func NewCloudClient(baseURL, token, phoneID string, logger *zap.Logger) *CloudClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &CloudClient{
		httpClient: client,
		phoneID:    phoneID,
		logger:     logger,
	}
}

func (c *CloudClient) SendText(ctx context.Context, to, body string) error {
	recipient := Digits(to)
	if recipient == "" {
		return errors.New("whatsapp: empty recipient")
	}

	apiErr := &cloudError{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(cloudMessage{
			MessagingProduct: "whatsapp",
			To:               recipient,
			Type:             "text",
			Text:             textBody{Body: body},
		}).
		SetError(apiErr).
		Post("/" + c.phoneID + "/messages")
	if err != nil {
		return fmt.Errorf("whatsapp cloud api request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("whatsapp cloud api: status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}

	c.logger.Debug("WhatsApp message sent",
		zap.String("to", recipient),
		zap.Int("status", resp.StatusCode()),
	)
	return nil
}
