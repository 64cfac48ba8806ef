package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sweet-solutions/backend/internal/domain"
)

func (h *Handler) publishMail(msg domain.MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		},
	)
}

// notifyByMail publishes best-effort: notification mail must never fail the
// business operation that triggered it.
func (h *Handler) notifyByMail(msg domain.MailMessage) {
	if err := h.publishMail(msg); err != nil {
		slog.Warn("failed to queue notification mail", "type", msg.Type, "to", msg.To, "error", err)
	}
}
