// Package noop provides an EmailSender that only logs what it would have sent.
package noop

import (
	"context"

	"go.uber.org/zap"

	"onebill/internal/logger"
	"onebill/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender for local development.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	logger.FromContext(ctx).Info("noop email: invoice",
		zap.String("to", msg.ToEmail),
		zap.String("invoice_number", msg.InvoiceNumber),
		zap.String("amount", msg.Amount),
		zap.String("view_url", msg.ViewURL),
	)
	return nil
}
