package crm

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"rackcity/config"
	"rackcity/infras/kafka"
	"rackcity/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer drains the CRM topic and mirrors each event to the external
// marketing webhook. Delivery is best effort: failures are logged and the
// message is not redelivered.
type Consumer struct {
	kafka      kafka.Client
	cfg        *config.Config
	httpClient *http.Client
}

func NewConsumer(kafkaClient kafka.Client, cfg *config.Config) *Consumer {
	return &Consumer{
		kafka: kafkaClient,
		cfg:   cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.External.CRM.TimeoutSeconds) * time.Second,
		},
	}
}

func (c *Consumer) Run(ctx context.Context) {
	log.Info().Str("topic", c.cfg.Kafka.CRMTopic).Msg("Starting CRM event consumer")

	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.CRMTopic, c.handle)
}

func (c *Consumer) handle(msg kafkaGo.Message) {
	decoded, err := kafka.DecodeKafkaMessage[Event](msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode CRM event")

		return
	}

	event, _ := decoded.Value.(Event)

	if err := c.deliver(context.Background(), event, msg.Value); err != nil {
		log.Error().
			Err(err).
			Str("type", string(event.Type)).
			Str("id", event.ID).
			Msg("failed to deliver CRM event")

		return
	}

	log.Info().Str("type", string(event.Type)).Str("id", event.ID).Msg("CRM event delivered")
}

func (c *Consumer) deliver(ctx context.Context, event Event, body []byte) error {
	webhookURL := c.cfg.External.CRM.WebhookURL
	if webhookURL == "" {
		log.Warn().Msg("no CRM webhook configured, dropping event")

		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &deliveryError{status: resp.StatusCode}
	}

	return nil
}

type deliveryError struct {
	status int
}

func (e *deliveryError) Error() string {
	return http.StatusText(e.status)
}
