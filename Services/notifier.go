package Services

import (
	"context"

	"IranElaj/Config"
	"IranElaj/Whatsapp"

	"go.uber.org/zap"
)

type NotifyResult struct {
	Delivered    bool   `json:"delivered"`
	FallbackLink string `json:"whatsappLink"`
}

// Notifier tells the admin about new requests. Delivery is best effort; the
// fallback link is always produced.
type Notifier struct {
	cfg    *Config.Config
	sender Whatsapp.Sender
	logger *zap.Logger
}

func NewNotifier(cfg *Config.Config, sender Whatsapp.Sender, logger *zap.Logger) *Notifier {
	return &Notifier{cfg: cfg, sender: sender, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, payload Whatsapp.Payload) NotifyResult {
	message := Whatsapp.AdminNotificationMessage(payload)
	result := NotifyResult{FallbackLink: Whatsapp.BuildLink(n.cfg.AdminWhatsAppNumber, message)}

	if n.sender == nil || !n.cfg.MessagingConfigured() {
		n.logger.Debug("Messaging API not configured, returning link only")
		return result
	}

	if err := n.sender.SendText(ctx, n.cfg.AdminWhatsAppNumber, message); err != nil {
		n.logger.Warn("Admin notification not delivered", zap.Error(err))
		return result
	}
	result.Delivered = true
	return result
}
