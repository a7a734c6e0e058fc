package Services

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"IranElaj/Whatsapp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu    sync.Mutex
	err   error
	calls []sentMessage
}

type sentMessage struct {
	to   string
	body string
}

func (f *fakeSender) SendText(_ context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sentMessage{to: to, body: body})
	return f.err
}

func samplePayload() Whatsapp.Payload {
	return Whatsapp.Payload{
		Name:      "Sara",
		WhatsApp:  "+989120000001",
		Specialty: "Cardiology",
		Condition: "chest pain",
	}
}

func TestNotify_NotConfigured(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		phoneID string
	}{
		{name: "missing token", phoneID: "123"},
		{name: "missing phone id", token: "real-token"},
		{name: "placeholder token", token: "your-whatsapp-api-token", phoneID: "123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.MessagingAPIToken = tt.token
			cfg.MessagingPhoneID = tt.phoneID
			sender := &fakeSender{}

			result := NewNotifier(cfg, sender, zap.NewNop()).Notify(context.Background(), samplePayload())

			assert.False(t, result.Delivered)
			assert.NotEmpty(t, result.FallbackLink)
			assert.Empty(t, sender.calls, "no send is attempted")
		})
	}
}

func TestNotify_Delivered(t *testing.T) {
	cfg := testConfig()
	cfg.MessagingAPIToken = "real-token"
	cfg.MessagingPhoneID = "123"
	sender := &fakeSender{}

	result := NewNotifier(cfg, sender, zap.NewNop()).Notify(context.Background(), samplePayload())

	assert.True(t, result.Delivered)
	require.Len(t, sender.calls, 1)
	assert.Equal(t, "+989120995507", sender.calls[0].to)
	assert.Equal(t, Whatsapp.AdminNotificationMessage(samplePayload()), sender.calls[0].body)
}

func TestNotify_SendFailureKeepsFallback(t *testing.T) {
	cfg := testConfig()
	cfg.MessagingAPIToken = "real-token"
	cfg.MessagingPhoneID = "123"
	sender := &fakeSender{err: errors.New("status 500")}

	result := NewNotifier(cfg, sender, zap.NewNop()).Notify(context.Background(), samplePayload())

	assert.False(t, result.Delivered)
	require.Len(t, sender.calls, 1)

	link, err := url.Parse(result.FallbackLink)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", link.Host)
	assert.Equal(t, "/989120995507", link.Path)
	assert.Equal(t, Whatsapp.AdminNotificationMessage(samplePayload()), link.Query().Get("text"))
}

func TestNotify_NilSender(t *testing.T) {
	cfg := testConfig()
	cfg.MessagingAPIToken = "real-token"
	cfg.MessagingPhoneID = "123"

	result := NewNotifier(cfg, nil, zap.NewNop()).Notify(context.Background(), samplePayload())

	assert.False(t, result.Delivered)
	assert.NotEmpty(t, result.FallbackLink)
}
