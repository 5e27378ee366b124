package controllers

import (
	"context"

	"github.com/esihle/storefront-backend/pkg/config"
	"github.com/esihle/storefront-backend/pkg/logger"
	"github.com/esihle/storefront-backend/pkg/whatsapp"
)

// linkSink turns a handoff message into a click-to-chat link for the
// current response. Link failures are logged and leave the URL empty.
type linkSink struct {
	cfg  config.WhatsAppConfig
	logg *logger.Logger
	url  string
}

func newLinkSink(cfg config.WhatsAppConfig, logg *logger.Logger) *linkSink {
	return &linkSink{cfg: cfg, logg: logg}
}

func (s *linkSink) SendCheckoutMessage(ctx context.Context, text string) {
	s.record(ctx, text)
}

func (s *linkSink) SendInquiryMessage(ctx context.Context, text string) {
	s.record(ctx, text)
}

func (s *linkSink) record(ctx context.Context, text string) {
	link, err := whatsapp.Link(s.cfg.BaseURL, s.cfg.PhoneNumber, text)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "whatsapp.link_failed", err)
		}
		return
	}
	s.url = link
}
